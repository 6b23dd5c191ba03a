// Package cache provides byte-oriented caches for registry responses.
//
// The installer looks up the same package names and tag lists repeatedly:
// once per run, and often several times in one run when sibling
// dependencies share children. Every backend implements [Cache]:
//
//   - [FileCache]: JSON entries under ~/.cache/vendorjs (CLI default)
//   - [NullCache]: never stores anything (--no-cache)
//   - [MemoryCache]: in-process LRU, used as the front tier
//   - [RedisCache] and [MongoCache]: shared caches for CI fleets
//
// [Open] picks a backend from a URL and wraps it in a [TieredCache] with a
// memory front.
package cache

import (
	"context"
	"time"
)

// Default TTLs for cached registry data.
const (
	// TTLLookup applies to package name → repository lookups, which rarely change.
	TTLLookup = 24 * time.Hour

	// TTLTags applies to GitHub tag lists, which change on every release.
	TTLTags = time.Hour
)

// Cache stores opaque byte values under string keys.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// HTTPKey returns the key for a cached HTTP response in namespace.
	HTTPKey(namespace, key string) string
}

// DefaultKeyer formats keys as "http:<namespace>:<key>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// HTTPKey generates a key for HTTP response caching.
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}
