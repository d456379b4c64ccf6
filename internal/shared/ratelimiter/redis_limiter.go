package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var _ Limiter = (*RedisLimiter)(nil)

// RedisLimiter は Redis の INCR と PTTL で固定窓を共有するリミッターです。
// 複数インスタンスで同じカウンタを参照できます。
type RedisLimiter struct {
	rdb      *redis.Client
	limit    int
	interval time.Duration
	prefix   string
}

// NewRedisLimiter creates a limiter whose keys are "<prefix>:<key>".
func NewRedisLimiter(rdb *redis.Client, limit int, interval time.Duration, prefix string) *RedisLimiter {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &RedisLimiter{
		rdb:      rdb,
		limit:    limit,
		interval: interval,
		prefix:   prefix,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	k := fmt.Sprintf("%s:%s", l.prefix, key)

	var incr *redis.IntCmd
	var pttl *redis.DurationCmd
	_, err := l.rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, k)
		pttl = p.PTTL(ctx, k)
		return nil
	})
	if err != nil {
		return false, 0, fmt.Errorf("rate limit counter: %w", err)
	}

	ttl := pttl.Val()
	// 初回 INCR ではキーに期限がない (-1)
	if ttl < 0 {
		if err := l.rdb.PExpire(ctx, k, l.interval).Err(); err != nil {
			return false, 0, fmt.Errorf("rate limit expire: %w", err)
		}
		ttl = l.interval
	}

	if incr.Val() > int64(l.limit) {
		return false, ttl, nil
	}
	return true, 0, nil
}
