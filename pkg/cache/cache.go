// Package cache stores generated tilings and rendered artifacts.
//
// Tiling generation is deterministic: the same configuration always yields
// the same rectangles. Results can therefore be cached by a hash of the
// configuration and reused across CLI runs, HTTP requests and server
// instances.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: entries as JSON files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// Keys are built by a [Keyer]. [ScopedKeyer] prefixes every key so that
// several deployments can share one Redis database.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get returns (nil, false, nil) on a miss. Errors are reserved for backend
// failures; callers treat them as misses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default entry lifetimes.
const (
	// TTLTiling applies to generated tilings. Tilings never change for a
	// given configuration, so the limit only bounds disk use.
	TTLTiling = 7 * 24 * time.Hour

	// TTLArtifact applies to rendered SVG, PNG, GIF and JSON outputs.
	TTLArtifact = 24 * time.Hour
)
