package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/samruddhip/pdfchat/internal/config"
	"github.com/samruddhip/pdfchat/internal/domain"
	"github.com/samruddhip/pdfchat/internal/vectorindex"
)

func newTestIngestService(t *testing.T, text string, extractErr error) *IngestService {
	t.Helper()
	cfg := &config.Config{
		Chunk: config.ChunkConfig{Size: 20, Overlap: 0, Separators: []string{"\n", " "}},
	}
	builder := vectorindex.NewBuilder(&stubEmbedder{model: "m"}, "cred", time.Hour)
	svc := NewIngestService(cfg, builder, zap.NewNop())
	svc.extract = func(io.ReaderAt, int64) (string, error) {
		return text, extractErr
	}
	return svc
}

func TestIngestDocument(t *testing.T) {
	text := "First line of the document.\nSecond line with more words in it."
	svc := newTestIngestService(t, text, nil)

	info, err := svc.IngestDocument(context.Background(), "s1", "report.pdf", strings.NewReader(""), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if info.Filename != "report.pdf" {
		t.Errorf("Filename = %q", info.Filename)
	}
	if info.CharCount != len(text) {
		t.Errorf("CharCount = %d, want %d", info.CharCount, len(text))
	}
	if info.ChunkCount < 2 {
		t.Errorf("ChunkCount = %d, want at least 2", info.ChunkCount)
	}

	ix, ok := svc.Index("s1")
	if !ok {
		t.Fatal("index not bound to session")
	}
	if ix.Len() != info.ChunkCount {
		t.Errorf("index Len() = %d, want %d", ix.Len(), info.ChunkCount)
	}
	if doc, ok := svc.Document("s1"); !ok || doc.Filename != "report.pdf" {
		t.Errorf("Document() = %+v, %v", doc, ok)
	}
}

func TestIngestDocumentExtractionFailure(t *testing.T) {
	svc := newTestIngestService(t, "", domain.ErrExtraction)

	_, err := svc.IngestDocument(context.Background(), "s1", "broken.pdf", strings.NewReader(""), 0)
	if !errors.Is(err, domain.ErrExtraction) {
		t.Errorf("expected ErrExtraction, got %v", err)
	}
	if _, ok := svc.Index("s1"); ok {
		t.Error("failed ingest must not bind an index")
	}
}

func TestIngestDocumentEmptyText(t *testing.T) {
	svc := newTestIngestService(t, "", nil)

	_, err := svc.IngestDocument(context.Background(), "s1", "empty.pdf", strings.NewReader(""), 0)
	if !errors.Is(err, domain.ErrEmptyDocument) {
		t.Errorf("expected ErrEmptyDocument, got %v", err)
	}
}

func TestIngestDocumentReplacesPrevious(t *testing.T) {
	svc := newTestIngestService(t, "some document text", nil)

	if _, err := svc.IngestDocument(context.Background(), "s1", "first.pdf", strings.NewReader(""), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.IngestDocument(context.Background(), "s1", "second.pdf", strings.NewReader(""), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc, ok := svc.Document("s1")
	if !ok || doc.Filename != "second.pdf" {
		t.Errorf("expected the replacement document, got %+v", doc)
	}
}

func TestForget(t *testing.T) {
	svc := newTestIngestService(t, "some document text", nil)

	if _, err := svc.IngestDocument(context.Background(), "s1", "doc.pdf", strings.NewReader(""), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc.Forget("s1")

	if _, ok := svc.Index("s1"); ok {
		t.Error("index survived Forget")
	}
	if _, ok := svc.Document("s1"); ok {
		t.Error("document info survived Forget")
	}
}

func TestIngestSessionsAreIsolated(t *testing.T) {
	svc := newTestIngestService(t, "shared text body", nil)

	if _, err := svc.IngestDocument(context.Background(), "s1", "doc.pdf", strings.NewReader(""), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := svc.Index("s2"); ok {
		t.Error("index leaked into another session")
	}
}
