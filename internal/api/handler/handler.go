// Package handler exposes the web API: login/logout, PDF upload and
// question answering.
package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/samruddhip/pdfchat/internal/api/middleware"
	"github.com/samruddhip/pdfchat/internal/auth"
	"github.com/samruddhip/pdfchat/internal/config"
	"github.com/samruddhip/pdfchat/internal/domain"
	"github.com/samruddhip/pdfchat/internal/repository"
	"github.com/samruddhip/pdfchat/internal/service"
)

// Handler handles API requests.
type Handler struct {
	cfg      *config.Config
	gate     *auth.Gate
	sessions *repository.SessionRepository
	ingest   *service.IngestService
	chat     *service.ChatService
	logger   *zap.Logger
}

// NewHandler creates a new handler.
func NewHandler(
	cfg *config.Config,
	gate *auth.Gate,
	sessions *repository.SessionRepository,
	ingest *service.IngestService,
	chat *service.ChatService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		cfg:      cfg,
		gate:     gate,
		sessions: sessions,
		ingest:   ingest,
		chat:     chat,
		logger:   logger,
	}
}

// RegisterPublicRoutes registers routes reachable without a session.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/auth/login", h.Login)
}

// RegisterProtectedRoutes registers routes behind the session gate.
func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.POST("/auth/logout", h.Logout)
	r.POST("/documents", h.UploadDocument)
	r.GET("/documents", h.GetDocument)
	r.POST("/chat", h.Ask)
	r.GET("/chat/history", h.History)
	r.GET("/config", h.UIConfig)
}

// Login validates credentials and opens an authenticated session.
func (h *Handler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ok, err := h.gate.Check(req.Username, req.Password)
	if err != nil {
		// Credentials are not configured; fail closed and tell the
		// operator-facing log, not the client, what is wrong.
		h.logger.Error("credential check failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "authentication is not configured"})
		return
	}
	if !ok {
		// Uniform response: never reveal which field was wrong.
		c.JSON(http.StatusUnauthorized, gin.H{"error": domain.ErrInvalidCredentials.Error()})
		return
	}

	session := &domain.Session{Username: req.Username}
	if err := h.sessions.Create(session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	c.SetCookie(middleware.SessionCookie, session.ID, 0, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"username": session.Username})
}

// Logout destroys the session and its in-memory index.
func (h *Handler) Logout(c *gin.Context) {
	session := middleware.CurrentSession(c)
	if session != nil {
		h.ingest.Forget(session.ID)
		if err := h.sessions.Delete(session.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete session"})
			return
		}
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// UploadDocument ingests an uploaded PDF and binds its index to the session.
func (h *Handler) UploadDocument(c *gin.Context) {
	session := middleware.CurrentSession(c)

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only PDF files are supported"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open uploaded file"})
		return
	}
	defer src.Close()

	info, err := h.ingest.IngestDocument(c.Request.Context(), session.ID, file.Filename, src, file.Size)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, info)
}

// GetDocument returns the session's currently indexed document, if any.
func (h *Handler) GetDocument(c *gin.Context) {
	session := middleware.CurrentSession(c)
	info, ok := h.ingest.Document(session.ID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrNoDocument.Error()})
		return
	}
	c.JSON(http.StatusOK, info)
}

// Ask answers a question against the session's indexed document.
func (h *Handler) Ask(c *gin.Context) {
	session := middleware.CurrentSession(c)

	var req domain.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.chat.Ask(c.Request.Context(), session.ID, req.Question)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, answer)
}

// History returns the session's chat history.
func (h *Handler) History(c *gin.Context) {
	session := middleware.CurrentSession(c)
	messages, err := h.chat.History(session.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// UIConfig returns the configured UI label strings.
func (h *Handler) UIConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"title":               h.cfg.UI.Title,
		"sidebar_title":       h.cfg.UI.SidebarTitle,
		"file_uploader_text":  h.cfg.UI.FileUploaderText,
		"question_input_text": h.cfg.UI.QuestionInputText,
	})
}

// writeError maps pipeline errors onto HTTP statuses with user-readable
// messages. Externally caused failures stay recoverable responses, never
// unhandled faults.
func (h *Handler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrNoDocument):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrEmptyDocument), errors.Is(err, domain.ErrExtraction):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrEmbedding), errors.Is(err, domain.ErrGeneration):
		status = http.StatusBadGateway
	}
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
