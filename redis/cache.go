// Package redis provides a bookhound.Cache backed by a Redis server, for
// deployments where multiple resolver processes should share one library
// directory cache.
package redis

import (
	"context"
	"time"

	"bookhound"

	"github.com/go-redis/redis/v8"
)

// Ensure Cache implements bookhound.Cache at compile time.
var _ bookhound.Cache = (*Cache)(nil)

// Cache stores entries in Redis under a fixed key prefix.
type Cache struct {
	client *redis.Client
	prefix string
}

// New creates a Cache talking to the given address (host:port).
func New(addr string) *Cache {
	return &Cache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		prefix: "bookhound:",
	}
}

// Get returns the value for key and whether it was present and unexpired.
// Expiry is enforced by Redis itself.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, bookhound.Errorf(bookhound.EUNAVAILABLE, "redis get %q: %v", key, err)
	}
	return b, true, nil
}

// Set stores value under key for the given TTL. A zero TTL stores the
// value without expiry.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return bookhound.Errorf(bookhound.EUNAVAILABLE, "redis set %q: %v", key, err)
	}
	return nil
}

// Close releases the underlying client.
func (c *Cache) Close() error {
	return c.client.Close()
}
