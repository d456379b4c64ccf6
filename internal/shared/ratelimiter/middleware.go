package ratelimiter

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"journal_backend/internal/api"

	"github.com/gin-gonic/gin"
)

const tooManyAttempts = "Too many attempts, please try again later"

// Middleware rejects requests over the limit with 429 and a Retry-After header.
// The key is prefix plus the client IP. Limiter errors fail open.
func Middleware(l Limiter, prefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := prefix + ":" + c.ClientIP()

		ok, retryAfter, err := l.Allow(c.Request.Context(), key)
		if err != nil {
			slog.Warn("rate limiter unavailable", "error", err, "remote_addr", c.ClientIP())
			c.Next()
			return
		}
		if !ok {
			secs := int(math.Ceil(retryAfter.Seconds()))
			if secs < 1 {
				secs = 1
			}
			c.Header("Retry-After", strconv.Itoa(secs))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, api.ErrorResponse{Error: tooManyAttempts})
			return
		}
		c.Next()
	}
}
