package vectorindex

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/samruddhip/pdfchat/internal/domain"
)

const embedConcurrency = 8

// Embedder is the opaque embedding capability the builder depends on.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Model() string
}

// Builder turns chunk sequences into searchable indexes, memoizing the
// result per (chunk-set, credential) key for a bounded time. Concurrent
// builds for the same key may race; the operation is idempotent and the
// newest completion overwrites the entry.
type Builder struct {
	embedder   Embedder
	credential string
	ttl        time.Duration

	mu    sync.RWMutex
	cache map[uint64]cacheEntry

	now func() time.Time
}

type cacheEntry struct {
	index   *Index
	builtAt time.Time
}

// NewBuilder creates a builder. The credential participates in the cache
// key so entries built under a different key never leak across.
func NewBuilder(embedder Embedder, credential string, ttl time.Duration) *Builder {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Builder{
		embedder:   embedder,
		credential: credential,
		ttl:        ttl,
		cache:      make(map[uint64]cacheEntry),
		now:        time.Now,
	}
}

// Build returns an index over the chunks, reusing a cached one when the
// same chunk sequence was indexed under the same credential within the
// TTL. On a miss it requests one embedding per chunk, fanned out but
// reassembled in chunk order. An embedding failure is ErrEmbedding and
// leaves the cache untouched; there is no automatic retry.
func (b *Builder) Build(ctx context.Context, chunks []domain.Chunk) (*Index, error) {
	key := b.cacheKey(chunks)

	b.mu.RLock()
	entry, ok := b.cache[key]
	b.mu.RUnlock()
	if ok && b.now().Sub(entry.builtAt) < b.ttl {
		return entry.index, nil
	}

	vectors := make([][]float32, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(embedConcurrency)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			v, err := b.embedder.Embed(gctx, chunk.Content)
			if err != nil {
				return fmt.Errorf("%w: chunk %d: %v", domain.ErrEmbedding, i, err)
			}
			vectors[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ix := &Index{model: b.embedder.Model(), chunks: chunks, vectors: vectors}

	b.mu.Lock()
	b.cache[key] = cacheEntry{index: ix, builtAt: b.now()}
	b.mu.Unlock()
	return ix, nil
}

// cacheKey hashes the ordered chunk contents together with the
// credential. Collision avoidance is all that matters here, so a fast
// non-cryptographic hash is used.
func (b *Builder) cacheKey(chunks []domain.Chunk) uint64 {
	h := xxhash.New()
	for _, c := range chunks {
		h.WriteString(c.Content)
		h.Write([]byte{0})
	}
	h.WriteString(b.credential)
	return h.Sum64()
}
