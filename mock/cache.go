package mock

import (
	"context"
	"sync"
	"time"

	"bookhound"
)

var _ bookhound.Cache = (*Cache)(nil)

// Cache is a mock implementation of bookhound.Cache.
type Cache struct {
	GetFn func(ctx context.Context, key string) ([]byte, bool, error)
	SetFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.GetFn(ctx, key)
}

func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.SetFn(ctx, key, value, ttl)
}

var _ bookhound.Cache = (*MapCache)(nil)

// MapCache is a working in-memory bookhound.Cache for tests that need
// real memoization behavior (TTL is recorded but not enforced).
type MapCache struct {
	mu      sync.Mutex
	entries map[string][]byte

	// LastTTL records the TTL passed to the most recent Set.
	LastTTL time.Duration
}

func NewMapCache() *MapCache {
	return &MapCache{entries: make(map[string][]byte)}
}

func (c *MapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok, nil
}

func (c *MapCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	c.LastTTL = ttl
	return nil
}
