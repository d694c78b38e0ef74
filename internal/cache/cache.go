package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Kind tags a cache entry with the data kind it holds, so the same
// symbol can cache price, flow and news payloads independently.
type Kind string

const (
	KindPrice Kind = "price"
	KindFlow  Kind = "flow"
	KindNews  Kind = "news"
)

// Store is the time-bounded memoization backend. Get treats an expired
// entry as absent; Put overwrites unconditionally. Expiry is purely
// time-based, there is no external invalidation.
type Store interface {
	Get(ctx context.Context, kind Kind, key string, dest interface{}) (bool, error)
	Put(ctx context.Context, kind Kind, key string, value interface{}, ttl time.Duration) error
}

// Cache wraps a Store with a per-key fill guard: concurrent misses for
// the same key perform exactly one fetch, the rest wait and read the
// filled entry.
type Cache struct {
	store Store

	mu       sync.Mutex
	inflight map[string]*sync.Mutex
}

// New creates a cache over the given store
func New(store Store) *Cache {
	return &Cache{
		store:    store,
		inflight: make(map[string]*sync.Mutex),
	}
}

// Store returns the underlying store
func (c *Cache) Store() Store {
	return c.store
}

// GetOrFill reads the entry into dest, calling fill on miss or expiry
// and storing its result with the given TTL. fill errors are returned
// untouched and nothing is cached for them.
func (c *Cache) GetOrFill(ctx context.Context, kind Kind, key string, dest interface{}, ttl time.Duration, fill func() (interface{}, error)) error {
	lock := c.keyLock(kind, key)
	lock.Lock()
	defer lock.Unlock()

	found, err := c.store.Get(ctx, kind, key, dest)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	value, err := fill()
	if err != nil {
		return err
	}

	if err := c.store.Put(ctx, kind, key, value, ttl); err != nil {
		// A failed write only costs a refetch next time
		return readBack(value, dest)
	}

	// Read back through the store so dest is populated the same way a
	// cache hit would populate it.
	if found, err := c.store.Get(ctx, kind, key, dest); err == nil && found {
		return nil
	}
	return readBack(value, dest)
}

// keyLock returns the fill mutex for one (kind, key) pair
func (c *Cache) keyLock(kind Kind, key string) *sync.Mutex {
	full := entryKey(kind, key)

	c.mu.Lock()
	defer c.mu.Unlock()

	lock, ok := c.inflight[full]
	if !ok {
		lock = &sync.Mutex{}
		c.inflight[full] = lock
	}
	return lock
}

// entryKey builds the store key for a (kind, key) pair
func entryKey(kind Kind, key string) string {
	return fmt.Sprintf("%s:%s", kind, key)
}

// readBack copies value into dest through a JSON round trip, matching
// how the stores populate dest on a hit
func readBack(value, dest interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}
	return json.Unmarshal(data, dest)
}
