// internal/interfaces/http/middleware/session.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/your-org/pharmacy-storefront/internal/config"
	"github.com/your-org/pharmacy-storefront/internal/pkg/auth"
)

const (
	sessionIDKey   = "session_id"
	authSessionKey = "auth_session"
)

// Session guarantees every request carries a device session id cookie.
// The cart is keyed by this id; it identifies the device, not the user,
// so it survives login and logout.
func Session(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cfg.Session.CookieName)
		if err != nil || sessionID == "" {
			sessionID = uuid.New().String()
			c.SetCookie(cfg.Session.CookieName, sessionID, int(cfg.Session.MaxAge.Seconds()), "/", "", false, true)
		}

		c.Set(sessionIDKey, sessionID)
		c.Next()
	}
}

// GetSessionID returns the device session id set by Session.
func GetSessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}

// AuthSession derives the request's authentication state from the
// Authorization header. It never rejects: anonymous requests pass
// through with an unauthenticated session and the guards downstream
// decide what that means.
func AuthSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
		c.Set(authSessionKey, auth.NewSession(token))
		c.Next()
	}
}

// GetAuthSession returns the auth session set by AuthSession.
func GetAuthSession(c *gin.Context) auth.Session {
	if v, ok := c.Get(authSessionKey); ok {
		if s, ok := v.(auth.Session); ok {
			return s
		}
	}
	return auth.Session{}
}
