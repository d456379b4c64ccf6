package ratelimiter

import (
	"context"
	"sync"
	"time"
)

// Limiter は、キーごとに一定時間内の試行回数を制限するインターフェースです。
// Allow は許可可否と、拒否時に次の窓が開くまでの残り時間を返します。
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

var _ Limiter = (*RateLimiter)(nil)

type window struct {
	count   int
	resetAt time.Time
}

// RateLimiter はプロセス内メモリで動く固定窓のリミッターです。
// Redis が使えない環境でのフォールバックとして使います。
type RateLimiter struct {
	limit    int           // 窓あたりの上限
	interval time.Duration // どの単位でリセットするか

	mu        sync.Mutex
	windows   map[string]*window
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter は新しい RateLimiter のインスタンスを生成します。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		windows:   make(map[string]*window),
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// Allow は key の試行を1回数え、上限を超えていれば false を返します。
func (rl *RateLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	w, ok := rl.windows[key]
	// interval を過ぎたらカウントリセット
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(rl.interval)}
		rl.windows[key] = w
	}

	w.count++
	if w.count > rl.limit {
		return false, w.resetAt.Sub(now), nil
	}
	return true, 0, nil
}

// sweep drops expired windows at most once per interval.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.interval {
		return
	}
	for k, w := range rl.windows {
		if !now.Before(w.resetAt) {
			delete(rl.windows, k)
		}
	}
	rl.lastSweep = now
}
