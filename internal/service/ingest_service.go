package service

import (
	"context"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/samruddhip/pdfchat/internal/chunker"
	"github.com/samruddhip/pdfchat/internal/config"
	"github.com/samruddhip/pdfchat/internal/domain"
	"github.com/samruddhip/pdfchat/internal/ingest"
	"github.com/samruddhip/pdfchat/internal/vectorindex"
)

// IngestService runs the upload pipeline: extract text, split into
// chunks, build the retrieval index, and bind it to the session. One
// document is held per session at a time; uploading replaces it.
type IngestService struct {
	cfg     *config.Config
	builder *vectorindex.Builder
	logger  *zap.Logger

	// extract is swappable in tests; production uses the PDF extractor.
	extract func(r io.ReaderAt, size int64) (string, error)

	mu      sync.RWMutex
	indexes map[string]*vectorindex.Index
	docs    map[string]*domain.DocumentInfo
}

// NewIngestService creates a new ingest service.
func NewIngestService(cfg *config.Config, builder *vectorindex.Builder, logger *zap.Logger) *IngestService {
	return &IngestService{
		cfg:     cfg,
		builder: builder,
		logger:  logger,
		extract: ingest.ExtractText,
		indexes: make(map[string]*vectorindex.Index),
		docs:    make(map[string]*domain.DocumentInfo),
	}
}

// IngestDocument processes an uploaded PDF for the session. The raw
// bytes and extracted text are discarded once the index is built.
func (s *IngestService) IngestDocument(ctx context.Context, sessionID, filename string, r io.ReaderAt, size int64) (*domain.DocumentInfo, error) {
	text, err := s.extract(r, size)
	if err != nil {
		return nil, err
	}

	pieces := chunker.Split(text, s.cfg.Chunk.Size, s.cfg.Chunk.Overlap, s.cfg.Chunk.Separators)
	if len(pieces) == 0 {
		return nil, domain.ErrEmptyDocument
	}
	chunks := make([]domain.Chunk, len(pieces))
	for i, p := range pieces {
		chunks[i] = domain.Chunk{Index: i, Content: p}
	}

	index, err := s.builder.Build(ctx, chunks)
	if err != nil {
		return nil, err
	}

	info := &domain.DocumentInfo{
		Filename:   filename,
		CharCount:  len(text),
		ChunkCount: len(chunks),
		IndexedAt:  time.Now(),
	}

	s.mu.Lock()
	s.indexes[sessionID] = index
	s.docs[sessionID] = info
	s.mu.Unlock()

	s.logger.Info("document indexed",
		zap.String("session_id", sessionID),
		zap.String("filename", filename),
		zap.Int("chars", info.CharCount),
		zap.Int("chunks", info.ChunkCount),
	)
	return info, nil
}

// Index returns the session's retrieval index, if a document was ingested.
func (s *IngestService) Index(sessionID string) (*vectorindex.Index, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ix, ok := s.indexes[sessionID]
	return ix, ok
}

// Document returns the session's ingested document info, if any.
func (s *IngestService) Document(sessionID string) (*domain.DocumentInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[sessionID]
	return doc, ok
}

// Forget drops the session's index and document info. Called on logout.
func (s *IngestService) Forget(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.indexes, sessionID)
	delete(s.docs, sessionID)
}
