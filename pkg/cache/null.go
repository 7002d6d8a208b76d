package cache

import (
	"context"
	"time"
)

// nopCache discards every write and misses every read. It backs the
// --no-cache flag and tests that must always reach the network.
type nopCache struct{}

// NewNullCache creates a cache that stores nothing.
func NewNullCache() Cache { return nopCache{} }

func (nopCache) Get(ctx context.Context, key string) ([]byte, bool, error) { return nil, false, nil }

func (nopCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

func (nopCache) Delete(ctx context.Context, key string) error { return nil }

func (nopCache) Close() error { return nil }
