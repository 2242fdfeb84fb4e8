package cache

import (
	"context"
	"time"
)

// MemoryCache implements the Cache interface on top of a Memory store,
// used when no Redis is configured
type MemoryCache struct {
	store Typed[[]byte]
}

// NewMemoryCache creates a Cache sharing the given store
func NewMemoryCache(store *Memory) *MemoryCache {
	return &MemoryCache{store: NewTyped[[]byte](store)}
}

// Get retrieves a value from the store
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	val, ok := c.store.Get(key)

	if !ok {
		return nil, ErrCacheMiss
	}

	return val, nil
}

// Set stores a value with the specified TTL
// If ttl is 0, the value will not be cached
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		return nil
	}

	return c.store.Set(key, value, ttl)
}

// Delete removes a value from the store
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.store.Delete(key)
	return nil
}

// Close is a no-op, the underlying store is owned by the caller
func (c *MemoryCache) Close() error {
	return nil
}
