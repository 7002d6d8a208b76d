package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores API responses on disk, one file per key, sharded into
// subdirectories by key hash. This is the default backend for CLI runs:
// stop-point data changes rarely, so a response fetched once serves every
// later generate/fetch invocation until its TTL lapses.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-backed cache rooted at dir, creating the
// directory if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// response is the on-disk form of one cached API response.
type response struct {
	Body      []byte    `json:"body"`
	FetchedAt time.Time `json:"fetchedAt"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

// expired reports whether the response's TTL has lapsed. A zero ExpiresAt
// means the response never expires.
func (r response) expired() bool {
	return !r.ExpiresAt.IsZero() && time.Now().After(r.ExpiresAt)
}

// Get retrieves a cached response. Expired and unreadable entries are
// removed and reported as misses, so a corrupted cache heals itself on the
// next fetch.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var resp response
	if err := json.Unmarshal(data, &resp); err != nil || resp.expired() {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return resp.Body, true, nil
}

// Set stores a response with the given time-to-live. A non-positive ttl
// stores it without expiration.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	resp := response{Body: data, FetchedAt: time.Now()}
	if ttl > 0 {
		resp.ExpiresAt = resp.FetchedAt.Add(ttl)
	}

	encoded, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, encoded, 0644)
}

// Delete removes a cached response. Deleting a missing key is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Close is a no-op; the file cache holds no open handles between calls.
func (c *FileCache) Close() error { return nil }

// path maps a key to its file, using the first two hash characters as a
// shard directory so one flat directory never accumulates every response.
func (c *FileCache) path(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(c.dir, hash[:2], hash[2:]+".json")
}

var _ Cache = (*FileCache)(nil)
