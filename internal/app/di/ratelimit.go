package di

import (
	"time"

	"journal_backend/internal/shared/ratelimiter"

	"github.com/redis/go-redis/v9"
)

// NewAuthLimiter creates the limiter guarding register and login.
// If Redis is available, it returns a Redis-backed limiter shared across instances.
// Otherwise, it falls back to an in-process limiter.
func NewAuthLimiter(rdb *redis.Client, limit int, window time.Duration) ratelimiter.Limiter {
	if rdb != nil {
		return ratelimiter.NewRedisLimiter(rdb, limit, window, "ratelimit")
	}
	return ratelimiter.NewRateLimiter(limit, window)
}
