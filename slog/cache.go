package slog

import (
	"context"
	"log/slog"
	"time"

	"bookhound"
)

// Ensure LoggingCache implements bookhound.Cache.
var _ bookhound.Cache = (*LoggingCache)(nil)

// LoggingCache wraps a Cache with operation logging.
type LoggingCache struct {
	next   bookhound.Cache
	logger *slog.Logger
}

// NewLoggingCache creates a new LoggingCache.
func NewLoggingCache(next bookhound.Cache, logger *slog.Logger) *LoggingCache {
	return &LoggingCache{next: next, logger: logger}
}

// Get delegates to the wrapped cache and logs the hit/miss outcome.
func (c *LoggingCache) Get(ctx context.Context, key string) (value []byte, ok bool, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("cache get",
			"key", key,
			"hit", ok,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Get(ctx, key)
}

// Set delegates to the wrapped cache and logs the operation.
func (c *LoggingCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) (err error) {
	defer func(begin time.Time) {
		c.logger.Debug("cache set",
			"key", key,
			"bytes", len(value),
			"ttl", ttl,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Set(ctx, key, value, ttl)
}
