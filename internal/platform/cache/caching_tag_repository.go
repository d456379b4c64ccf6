// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"journal_backend/internal/feature/tags/domain/entity"
	"journal_backend/internal/feature/tags/usecase"
)

// CachingTagRepository decorates a TagRepository with Redis caching.
// Each user's aggregate is stored under a key that embeds a per-user version
// (ns:user:<id>:v<n>). Invalidate bumps the version instead of deleting, so a
// read that fetched from the database before a write can only repopulate a
// version that no later read looks at.
type CachingTagRepository struct {
	inner     usecase.TagRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.TagRepository = (*CachingTagRepository)(nil)

// NewCachingTagRepository decorates a TagRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "tags".
func NewCachingTagRepository(rdb *redis.Client, ttl time.Duration, inner usecase.TagRepository, namespace string) *CachingTagRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "tags"
	}
	return &CachingTagRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// CountByUser retrieves tag counts, checking cache first then falling back to the database.
func (c *CachingTagRepository) CountByUser(ctx context.Context, userID uint) ([]entity.TagCount, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.CountByUser(ctx, userID)
	}

	// DB を読む前にバージョンを確定させる
	ver, err := c.rdb.Get(ctx, c.versionKey(userID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return c.inner.CountByUser(ctx, userID)
	}
	key := c.cacheKey(userID, ver)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.TagCount
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Invalidate retires the cached aggregate for one user by bumping its version.
// The old entry is left to expire with its TTL.
func (c *CachingTagRepository) Invalidate(ctx context.Context, userID uint) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Incr(ctx, c.versionKey(userID)).Err()
}

// InvalidateAll drops every cached aggregate and version counter in the namespace
// and returns how many keys were removed.
func (c *CachingTagRepository) InvalidateAll(ctx context.Context) (int, error) {
	if c.rdb == nil {
		return 0, nil
	}
	return c.deleteByPattern(ctx, c.namespace+":user:*")
}

// versionKey holds the current cache version for one user. It has no TTL.
func (c *CachingTagRepository) versionKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d:ver", c.namespace, userID)
}

// cacheKey generates the cache key for one user's aggregate at a version.
func (c *CachingTagRepository) cacheKey(userID uint, ver int64) string {
	return fmt.Sprintf("%s:user:%d:v%d", c.namespace, userID, ver)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingTagRepository) deleteByPattern(ctx context.Context, pattern string) (int, error) {
	var (
		cursor  uint64
		removed int
	)
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return removed, err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return removed, err
			}
			removed += len(keys)
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return removed, nil
}
