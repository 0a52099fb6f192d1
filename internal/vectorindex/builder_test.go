package vectorindex

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/samruddhip/pdfchat/internal/domain"
)

type fakeEmbedder struct {
	mu    sync.Mutex
	calls int
	fail  map[string]error
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if err, ok := f.fail[text]; ok {
		return nil, err
	}
	// Vector encodes the text length so ordering is observable.
	return []float32{float32(len(text)), 1}, nil
}

func (f *fakeEmbedder) Model() string { return "fake-model" }

func (f *fakeEmbedder) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testChunks(contents ...string) []domain.Chunk {
	chunks := make([]domain.Chunk, len(contents))
	for i, c := range contents {
		chunks[i] = domain.Chunk{Index: i, Content: c}
	}
	return chunks
}

func TestBuildEmbedsEveryChunkInOrder(t *testing.T) {
	emb := &fakeEmbedder{}
	b := NewBuilder(emb, "cred", time.Hour)

	chunks := testChunks("a", "bb", "ccc")
	ix, err := b.Build(context.Background(), chunks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ix.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", ix.Len())
	}
	if ix.Model() != "fake-model" {
		t.Errorf("Model() = %q", ix.Model())
	}
	for i, chunk := range chunks {
		if got := ix.vectors[i][0]; got != float32(len(chunk.Content)) {
			t.Errorf("vector %d does not match chunk %q: %v", i, chunk.Content, got)
		}
	}
	if emb.callCount() != 3 {
		t.Errorf("embed calls = %d, want 3", emb.callCount())
	}
}

func TestBuildMemoizesWithinTTL(t *testing.T) {
	emb := &fakeEmbedder{}
	b := NewBuilder(emb, "cred", time.Hour)

	chunks := testChunks("a", "bb")
	first, err := b.Build(context.Background(), chunks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := b.Build(context.Background(), chunks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Error("expected the cached index on the second build")
	}
	if emb.callCount() != 2 {
		t.Errorf("embed calls = %d, want 2", emb.callCount())
	}
}

func TestBuildRebuildsAfterTTL(t *testing.T) {
	emb := &fakeEmbedder{}
	b := NewBuilder(emb, "cred", time.Hour)

	clock := time.Now()
	b.now = func() time.Time { return clock }

	chunks := testChunks("a", "bb")
	if _, err := b.Build(context.Background(), chunks); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clock = clock.Add(time.Hour + time.Second)
	if _, err := b.Build(context.Background(), chunks); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if emb.callCount() != 4 {
		t.Errorf("embed calls = %d, want 4 after expiry", emb.callCount())
	}
}

func TestBuildDifferentInputsMiss(t *testing.T) {
	emb := &fakeEmbedder{}
	b := NewBuilder(emb, "cred", time.Hour)

	if _, err := b.Build(context.Background(), testChunks("a", "bb")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := b.Build(context.Background(), testChunks("a", "cc")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if emb.callCount() != 4 {
		t.Errorf("embed calls = %d, want 4 for distinct chunk sets", emb.callCount())
	}
}

func TestBuildCredentialPartOfKey(t *testing.T) {
	emb := &fakeEmbedder{}
	chunks := testChunks("a")

	b1 := NewBuilder(emb, "cred-one", time.Hour)
	b2 := NewBuilder(emb, "cred-two", time.Hour)
	if b1.cacheKey(chunks) == b2.cacheKey(chunks) {
		t.Error("cache keys should differ across credentials")
	}
}

func TestBuildErrorLeavesCacheCold(t *testing.T) {
	boom := errors.New("boom")
	emb := &fakeEmbedder{fail: map[string]error{"bb": boom}}
	b := NewBuilder(emb, "cred", time.Hour)

	chunks := testChunks("a", "bb")
	_, err := b.Build(context.Background(), chunks)
	if !errors.Is(err, domain.ErrEmbedding) {
		t.Fatalf("expected ErrEmbedding, got %v", err)
	}

	// A later successful build must re-embed everything.
	emb.mu.Lock()
	delete(emb.fail, "bb")
	before := emb.calls
	emb.mu.Unlock()

	if _, err := b.Build(context.Background(), chunks); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := emb.callCount() - before; got != 2 {
		t.Errorf("embed calls after failure = %d, want 2", got)
	}
}
