package cache

import (
	"context"
	"time"
)

// Cache is the contract for the caching layer so implementations can be
// swapped (Redis in production, in-memory in tests).
type Cache interface {
	// Get reads a key and unmarshals it into dest. found is false on a
	// cache miss, in which case dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern.
	DeletePattern(ctx context.Context, pattern string) error

	// Ping checks the connection.
	Ping(ctx context.Context) error
}
