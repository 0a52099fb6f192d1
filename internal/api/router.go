package api

import (
	"github.com/gin-gonic/gin"

	"github.com/samruddhip/pdfchat/internal/api/handler"
	"github.com/samruddhip/pdfchat/internal/api/middleware"
	"github.com/samruddhip/pdfchat/internal/repository"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	AllowOrigins []string
}

// SetupRouter sets up the Gin router: a public auth surface and the
// session-gated document/question endpoints.
func SetupRouter(h *handler.Handler, sessions *repository.SessionRepository, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.AllowOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/api")
	h.RegisterPublicRoutes(public)

	protected := r.Group("/api")
	protected.Use(middleware.SessionAuth(sessions))
	h.RegisterProtectedRoutes(protected)

	return r
}
