package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/samruddhip/pdfchat/internal/domain"
	"github.com/samruddhip/pdfchat/internal/repository"
)

// SessionCookie is the name of the session cookie.
const SessionCookie = "pdfchat_session"

const contextSessionKey = "session"

// SessionAuth rejects requests that do not carry a valid session cookie.
// Document and question endpoints must sit behind this middleware.
func SessionAuth(sessions *repository.SessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err != nil || id == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthorized.Error()})
			c.Abort()
			return
		}

		session, err := sessions.Get(id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load session"})
			c.Abort()
			return
		}
		if session == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthorized.Error()})
			c.Abort()
			return
		}

		_ = sessions.Touch(id)
		c.Set(contextSessionKey, session)
		c.Next()
	}
}

// CurrentSession returns the authenticated session set by SessionAuth.
func CurrentSession(c *gin.Context) *domain.Session {
	if v, ok := c.Get(contextSessionKey); ok {
		if s, ok := v.(*domain.Session); ok {
			return s
		}
	}
	return nil
}
