// README: Session middleware issuing a cookie-backed session id.
package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"motofrete/internal/types"
)

const (
	SessionCookie = "motofrete_session"
	sessionIDKey  = "session_id"
)

type SessionOptions struct {
	MaxAge time.Duration
	Secure bool
}

// Session reuses the caller's session cookie when it holds a valid uuid and
// issues a fresh one otherwise.
func Session(opts SessionOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   int(opts.MaxAge.Seconds()),
				HttpOnly: true,
				Secure:   opts.Secure,
				SameSite: http.SameSiteLaxMode,
			})
		}
		c.Set(sessionIDKey, id)
		c.Next()
	}
}

// SessionID returns the session id set by Session, or "" when absent.
func SessionID(c *gin.Context) types.ID {
	return types.ID(c.GetString(sessionIDKey))
}
