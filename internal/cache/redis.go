package cache

import (
	"context"
	"time"

	"github.com/ycwu/twquant/pkg/redis"
)

// RedisStore backs the result cache with Redis, sharing entries across
// processes. TTL handling is delegated to Redis key expiry. When the
// Redis client is disabled every Get is a miss and Put is a no-op, so
// callers just refetch.
type RedisStore struct {
	cache *redis.Cache
}

// NewRedisStore creates a Redis-backed store
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		cache: redis.NewCache(client, "twquant"),
	}
}

// Get reads an entry into dest
func (s *RedisStore) Get(ctx context.Context, kind Kind, key string, dest interface{}) (bool, error) {
	return s.cache.Get(ctx, entryKey(kind, key), dest)
}

// Put stores an entry with TTL
func (s *RedisStore) Put(ctx context.Context, kind Kind, key string, value interface{}, ttl time.Duration) error {
	return s.cache.Set(ctx, entryKey(kind, key), value, ttl)
}
