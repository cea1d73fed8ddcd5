// Package cache stores computed dominating sets across analysis runs.
//
// Dominating sets depend only on graph content, so they are keyed by a
// content hash of the graph's nodes and edges. The cache is owned by the
// boundary layers: the analysis core never reads or writes it directly.
//
// Backends:
//   - file: per-user cache directory for CLI usage
//   - redis: shared cache for multi-instance deployments
//   - null: disabled caching for tests and one-shot runs
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by typed helpers when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Cache is the interface all backends implement. Get reports presence
// explicitly so callers can distinguish a miss from an empty value.
type Cache interface {
	// Get retrieves a value, reporting whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// DefaultTTL is how long cached dominating sets stay valid. Graph content
// hashing already invalidates stale entries; the TTL just bounds disk and
// Redis growth.
const DefaultTTL = 30 * 24 * time.Hour
