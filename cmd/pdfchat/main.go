package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/samruddhip/pdfchat/internal/api"
	"github.com/samruddhip/pdfchat/internal/api/handler"
	"github.com/samruddhip/pdfchat/internal/auth"
	"github.com/samruddhip/pdfchat/internal/config"
	"github.com/samruddhip/pdfchat/internal/embedding"
	"github.com/samruddhip/pdfchat/internal/llm"
	"github.com/samruddhip/pdfchat/internal/repository"
	"github.com/samruddhip/pdfchat/internal/service"
	"github.com/samruddhip/pdfchat/internal/vectorindex"
)

var (
	secretsPath = flag.String("secrets", "", "Path to secrets file")
)

func main() {
	flag.Parse()

	// Configuration is resolved once; a missing API key or malformed
	// value halts startup before any document can be processed.
	cfg, err := config.Load(*secretsPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	db, err := repository.NewDB(cfg.Database.Path)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	sessionRepo := repository.NewSessionRepository(db)

	embedder, err := embedding.NewClient(embedding.Config{
		BaseURL: cfg.OpenAI.BaseURL,
		APIKey:  cfg.OpenAI.APIKey,
		Model:   cfg.OpenAI.EmbeddingModel,
		Timeout: cfg.OpenAI.Timeout,
	})
	if err != nil {
		logger.Fatal("Failed to create embedding client", zap.Error(err))
	}

	generator, err := llm.NewClient(llm.Config{
		BaseURL:     cfg.OpenAI.BaseURL,
		APIKey:      cfg.OpenAI.APIKey,
		Model:       cfg.OpenAI.Model,
		Temperature: cfg.OpenAI.Temperature,
		MaxTokens:   cfg.OpenAI.MaxTokens,
		Timeout:     cfg.OpenAI.Timeout,
	})
	if err != nil {
		logger.Fatal("Failed to create completion client", zap.Error(err))
	}

	builder := vectorindex.NewBuilder(embedder, cfg.OpenAI.APIKey, cfg.Retrieval.CacheTTL)
	gate := auth.NewGate(cfg.Auth.Username, cfg.Auth.PasswordHash)

	ingestService := service.NewIngestService(cfg, builder, logger)
	chatService := service.NewChatService(cfg, ingestService, embedder, generator, sessionRepo, logger)

	h := handler.NewHandler(cfg, gate, sessionRepo, ingestService, chatService, logger)
	router := api.SetupRouter(h, sessionRepo, api.RouterConfig{
		AllowOrigins: []string{"*"},
	})

	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("Starting pdfchat server",
			zap.String("address", cfg.Address()),
			zap.String("model", cfg.OpenAI.Model),
			zap.String("embedding_model", cfg.OpenAI.EmbeddingModel),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
