// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	tagadapters "journal_backend/internal/feature/tags/adapters"
	"journal_backend/internal/platform/cache"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// NewTagRepository creates the tag summary repository.
// If Redis is available, summaries are cached there; otherwise every call
// goes straight to the database.
func NewTagRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) *cache.CachingTagRepository {
	return cache.NewCachingTagRepository(rdb, ttl, tagadapters.NewTagRepository(db), "tags")
}
