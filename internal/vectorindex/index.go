// Package vectorindex builds and searches in-memory vector indexes over
// document chunks, memoized per chunk-set and credential.
package vectorindex

import (
	"math"
	"sort"

	"github.com/samruddhip/pdfchat/internal/domain"
)

// Index is an immutable nearest-neighbor index over embedded chunks.
// Searches are safe to run concurrently.
type Index struct {
	model   string
	chunks  []domain.Chunk
	vectors [][]float32
}

// Model returns the embedding model the index was built with. Query
// vectors from a different model live in an incomparable vector space.
func (ix *Index) Model() string { return ix.model }

// Len returns the number of indexed chunks.
func (ix *Index) Len() int { return len(ix.chunks) }

// Search returns the k chunks most similar to the query vector, most
// relevant first. k is clamped to the number of indexed chunks.
func (ix *Index) Search(query []float32, k int) []domain.Source {
	if k <= 0 || len(ix.chunks) == 0 {
		return nil
	}
	if k > len(ix.chunks) {
		k = len(ix.chunks)
	}

	scored := make([]domain.Source, len(ix.chunks))
	for i, c := range ix.chunks {
		scored[i] = domain.Source{
			Index:   c.Index,
			Content: c.Content,
			Score:   cosineSimilarity(query, ix.vectors[i]),
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored[:k]
}

func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
