package di

import (
	"github.com/redis/go-redis/v9"

	"market_backend/internal/platform/cache"
)

// NewStore creates the cache Store.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to the in-process MemoryStore.
func NewStore(rdb *redis.Client) cache.Store {
	if rdb != nil {
		return cache.NewRedisStore(rdb, "market")
	}
	return cache.NewMemoryStore(nil)
}
