package bookhound

import (
	"context"
	"time"
)

// Cache is a TTL key/value store used to memoize library directories.
// Implementations may be in-process or remote; the engine must not depend
// on which.
type Cache interface {
	// Get returns the value for key and whether it was present and
	// unexpired.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set stores value under key for the given TTL. A zero TTL stores the
	// value without expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
