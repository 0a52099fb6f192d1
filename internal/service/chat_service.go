package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/samruddhip/pdfchat/internal/config"
	"github.com/samruddhip/pdfchat/internal/domain"
	"github.com/samruddhip/pdfchat/internal/vectorindex"
)

// NoRelevantContent is the answer returned when retrieval finds nothing;
// the generation service is not called in that case.
const NoRelevantContent = "No relevant content was found in the uploaded document."

// Generator is the opaque completion capability.
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// IndexProvider hands out the retrieval index bound to a session.
type IndexProvider interface {
	Index(sessionID string) (*vectorindex.Index, bool)
}

// HistoryStore persists chat turns.
type HistoryStore interface {
	CreateMessage(message *domain.Message) error
	GetMessages(sessionID string) ([]*domain.Message, error)
}

// ChatService answers questions against a session's indexed document.
type ChatService struct {
	cfg       *config.Config
	indexes   IndexProvider
	embedder  vectorindex.Embedder
	generator Generator
	history   HistoryStore
	logger    *zap.Logger
}

// NewChatService creates a new chat service.
func NewChatService(
	cfg *config.Config,
	indexes IndexProvider,
	embedder vectorindex.Embedder,
	generator Generator,
	history HistoryStore,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		cfg:       cfg,
		indexes:   indexes,
		embedder:  embedder,
		generator: generator,
		history:   history,
		logger:    logger,
	}
}

// Ask runs the retrieval-augmented pipeline for one question: embed the
// question, retrieve the top-K chunks, assemble a prompt and generate an
// answer. A generation failure leaves the index intact so the same
// question can simply be asked again.
func (s *ChatService) Ask(ctx context.Context, sessionID, question string) (*domain.Answer, error) {
	index, ok := s.indexes.Index(sessionID)
	if !ok {
		return nil, domain.ErrNoDocument
	}

	// The query must be embedded in the same vector space as the index.
	if index.Model() != s.embedder.Model() {
		return nil, &domain.ConfigError{
			Key:   "OPENAI_EMBEDDING_MODEL",
			Want:  fmt.Sprintf("model %q the index was built with", index.Model()),
			Value: s.embedder.Model(),
		}
	}

	queryVec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbedding, err)
	}

	k := s.cfg.Retrieval.TopK
	if k > index.Len() {
		k = index.Len()
	}
	sources := index.Search(queryVec, k)

	answer := &domain.Answer{}
	if len(sources) == 0 {
		answer.Text = NoRelevantContent
	} else {
		text, err := s.generator.Complete(ctx, buildPrompt(question, sources))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrGeneration, err)
		}
		answer.Text = text
		answer.Sources = sources
	}

	// History is written only once the answer exists, so a failed
	// generation leaves no half-recorded turn behind.
	s.record(sessionID, question, answer)

	s.logger.Info("question answered",
		zap.String("session_id", sessionID),
		zap.Int("sources", len(answer.Sources)),
	)
	return answer, nil
}

// History returns the session's chat turns in chronological order.
func (s *ChatService) History(sessionID string) ([]*domain.Message, error) {
	return s.history.GetMessages(sessionID)
}

func (s *ChatService) record(sessionID, question string, answer *domain.Answer) {
	userMsg := &domain.Message{SessionID: sessionID, Role: "user", Content: question}
	if err := s.history.CreateMessage(userMsg); err != nil {
		s.logger.Warn("failed to record question", zap.Error(err))
		return
	}
	assistantMsg := &domain.Message{
		SessionID: sessionID,
		Role:      "assistant",
		Content:   answer.Text,
		Sources:   answer.Sources,
	}
	if err := s.history.CreateMessage(assistantMsg); err != nil {
		s.logger.Warn("failed to record answer", zap.Error(err))
	}
}

func buildPrompt(question string, sources []domain.Source) string {
	var sb strings.Builder
	sb.WriteString("You are a helpful assistant. Answer the question using only the provided context from the uploaded document.\n\n")
	sb.WriteString("Context:\n")
	for _, src := range sources {
		sb.WriteString(src.Content)
		sb.WriteString("\n\n")
	}
	sb.WriteString("Question: ")
	sb.WriteString(question)
	sb.WriteString("\n\nAnswer:")
	return sb.String()
}
