package cache

import (
	"context"
	"time"
)

// NullCache discards every write and reports every read as a miss, so
// each dominating set is recomputed from the graph. It backs the "none"
// backend and one-shot runs where a warm cache has no value.
type NullCache struct{}

// NewNullCache returns the disabled cache backend.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get always misses.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the entry.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete is a no-op.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close is a no-op.
func (c *NullCache) Close() error {
	return nil
}

var _ Cache = (*NullCache)(nil)
