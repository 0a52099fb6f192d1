package domain

import "time"

// Chunk is a bounded contiguous segment of a document's extracted text,
// the unit of retrieval.
type Chunk struct {
	Index   int    `json:"index"`
	Content string `json:"content"`
}

// Source is a retrieved chunk with its similarity score, returned
// alongside an answer for attribution.
type Source struct {
	Index   int     `json:"index"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// DocumentInfo describes an ingested document. The raw bytes and the
// extracted text are not retained once the index is built.
type DocumentInfo struct {
	Filename   string    `json:"filename"`
	CharCount  int       `json:"char_count"`
	ChunkCount int       `json:"chunk_count"`
	IndexedAt  time.Time `json:"indexed_at"`
}
