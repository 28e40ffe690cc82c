// Package cache provides pluggable result caching for pipeline runs.
//
// Rankings are cheap to store and expensive to recompute (each one costs a
// full index download), so the pipeline memoizes them under a key derived
// from the locator and requested N. Entries always carry a TTL; the cache
// is an expiring optimization, not a durable store, and every code path
// works with caching disabled via [NullCache].
//
// Backends:
//   - [FileCache]: JSON files under ~/.cache/debtop, for CLI usage
//   - [RedisCache]: shared cache for multi-instance `debtop serve`
//   - [NullCache]: no-op, for tests and --no-cache
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// DefaultTTL is how long a cached ranking stays fresh. Stable-release
// Contents indices change on the order of days.
const DefaultTTL = 24 * time.Hour

// Cache stores opaque byte values under string keys with expiration.
// Implementations must treat expired entries as absent.
type Cache interface {
	// Get retrieves a value. The bool reports whether a fresh entry exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of zero means the
	// backend default.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// DefaultDir returns the standard CLI cache directory (~/.cache/debtop).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "debtop"), nil
}
