package jwtmw

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// ContextUserID is the gin context key holding the authenticated user's id (uint).
	ContextUserID = "userID"
	// ContextEmail is the gin context key holding the authenticated user's email.
	ContextEmail = "email"
)

// TokenValidator validates a bearer token and returns its claims.
type TokenValidator interface {
	Validate(tokenStr string) (*Claims, error)
}

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated users only.
// Missing, malformed and expired tokens all get the same 401 body.
func AuthRequired(v TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		tokenStr, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || strings.TrimSpace(tokenStr) == "" {
			abortUnauthorized(c)
			return
		}

		// 2. Parse and verify JWT signature and expiry
		claims, err := v.Validate(strings.TrimSpace(tokenStr))
		if err != nil {
			slog.Debug("token rejected", "error", err, "remote_addr", c.ClientIP())
			abortUnauthorized(c)
			return
		}

		// 3. Expose identity to downstream handlers
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}

// UserID returns the authenticated user's id set by AuthRequired.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidToken.Error()})
}
