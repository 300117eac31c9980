// Package memcache provides an in-process bookhound.Cache backed by
// patrickmn/go-cache. It is the default backend when no remote cache is
// configured; entries live only for the process lifetime.
package memcache

import (
	"context"
	"time"

	"bookhound"

	gocache "github.com/patrickmn/go-cache"
)

// Ensure Cache implements bookhound.Cache at compile time.
var _ bookhound.Cache = (*Cache)(nil)

// Cache is an in-memory TTL cache.
type Cache struct {
	c *gocache.Cache
}

// New creates an empty in-memory cache. Expired entries are purged
// opportunistically on a background sweep.
func New() *Cache {
	return &Cache{
		c: gocache.New(gocache.NoExpiration, 10*time.Minute),
	}
}

// Get returns the value for key and whether it was present and unexpired.
func (m *Cache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, false, bookhound.Errorf(bookhound.EINTERNAL, "cache entry for %q is not bytes", key)
	}
	return b, true, nil
}

// Set stores value under key for the given TTL. A zero TTL stores the
// value without expiry.
func (m *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	m.c.Set(key, value, ttl)
	return nil
}
