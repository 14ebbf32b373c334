// Package cache stores generated runs and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory, used by the CLI
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: disables caching
//
// # Keys
//
// Generation is deterministic, so a result is fully identified by the
// normalized config and the seed. [Keyer] turns those into cache keys;
// [ScopedKeyer] prefixes them for isolation between tenants or environments.
package cache

import (
	"context"
	"time"
)

// Default TTLs for cache entries.
const (
	ResultTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss is reported as hit=false with a
	// nil error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
