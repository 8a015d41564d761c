package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/mo"
)

// RedisStore is a Store backed by Redis so several server instances share one cache.
// Expiry is delegated to Redis key TTLs.
type RedisStore struct {
	rdb       *redis.Client
	namespace string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore wraps a Redis client. If namespace is empty, it uses "market".
func NewRedisStore(rdb *redis.Client, namespace string) *RedisStore {
	if namespace == "" {
		namespace = "market"
	}
	return &RedisStore{rdb: rdb, namespace: namespace}
}

// Get reads key from Redis. redis.Nil and empty values are reported as None.
func (r *RedisStore) Get(ctx context.Context, key string) (mo.Option[[]byte], error) {
	b, err := r.rdb.Get(ctx, r.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return mo.None[[]byte](), nil
	}
	if err != nil {
		return mo.None[[]byte](), err
	}
	if len(b) == 0 {
		return mo.None[[]byte](), nil
	}
	return mo.Some(b), nil
}

// Set writes key with the given TTL. A non-positive TTL stores nothing,
// because Redis would otherwise keep the key forever.
func (r *RedisStore) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.rdb.Set(ctx, r.redisKey(key), val, ttl).Err()
}

// redisKey prefixes key with the store namespace.
func (r *RedisStore) redisKey(key string) string {
	return r.namespace + ":" + key
}
