package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/opendoorexp/wildex-frontend/internal/models"
	"github.com/opendoorexp/wildex-frontend/internal/session"
)

// SessionContextKey is the gin context key holding the resolved session
const SessionContextKey = "session"

// SessionCookieOptions controls how the session cookie is written
type SessionCookieOptions struct {
	Name   string
	MaxAge int
	Secure bool
}

// SessionMiddleware resolves the browser session from its cookie.
// A missing or invalid cookie establishes a fresh anonymous session
// and sets a new cookie, so every request downstream always has one.
func SessionMiddleware(store *session.Store, opts SessionCookieOptions, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(opts.Name); err == nil && token != "" {
			if sess, err := store.Resolve(token); err == nil {
				c.Set(SessionContextKey, sess)
				c.Next()
				return
			} else {
				logger.WithError(err).Debug("Session cookie rejected, establishing a new session")
			}
		}

		sess, token, err := store.Establish(c.Request.UserAgent())
		if err != nil {
			logger.WithError(err).Error("Failed to establish session")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":   "session_error",
				"message": "Failed to establish session",
			})
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(opts.Name, token, opts.MaxAge, "/", "", opts.Secure, true)
		c.Set(SessionContextKey, sess)
		c.Next()
	}
}

// CurrentSession returns the session resolved by SessionMiddleware.
// Handlers behind the middleware can rely on it being present.
func CurrentSession(c *gin.Context) *models.Session {
	value, exists := c.Get(SessionContextKey)
	if !exists {
		return nil
	}
	sess, ok := value.(*models.Session)
	if !ok {
		return nil
	}
	return sess
}
