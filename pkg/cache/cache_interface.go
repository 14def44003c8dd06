package cache

import (
	"context"
	"time"
)

// Cache defines the contract for the process-wide cache service.
// Allows swapping implementation (in-memory by default, Redis when
// configured) without touching the consumers.
type Cache interface {
	// Get reads data from cache and unmarshals it into dest.
	// Returns: (found bool, error)
	// - found = true: cache hit, data unmarshaled into dest
	// - found = false: cache miss, dest untouched
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores data in the cache with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}
