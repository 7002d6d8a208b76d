// Package cache provides the response cache used when fetching station
// identifiers from the transit authority API.
//
// Three backends are available: a file cache for CLI usage, a Redis cache
// for shared environments, and a null cache that disables caching.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface for cached API responses.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a time-to-live. A non-positive ttl stores
	// the value without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
