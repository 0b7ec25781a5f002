// Package cache provides pluggable caching for registry lookups and advisory feeds.
//
// Three backends are available:
//   - file: JSON entries under a local directory, for CLI usage
//   - redis: shared cache for CI or multi-instance deployments
//   - null: no-op cache for tests and --no-cache runs
//
// Keys are produced by a [Keyer] so that callers never concatenate raw
// strings: HTTP responses, per-package dependency lookups, and vulnerability
// feeds each get their own namespace and TTL.
package cache

import (
	"context"
	"time"
)

// Default TTLs per cached data category.
const (
	// TTLHTTP is how long raw registry API responses are kept.
	TTLHTTP = 24 * time.Hour

	// TTLLookup is how long resolved per-package dependency lists are kept.
	TTLLookup = 24 * time.Hour

	// TTLAdvisory is how long vulnerability feeds are kept. Shorter than
	// the rest because advisories change more often than package metadata.
	TTLAdvisory = 6 * time.Hour
)

// Cache is the storage interface shared by all backends.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every value in the backend.
	Clear(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// LookupKeyOpts captures the options that affect a dependency lookup result.
// Different options must produce different cache keys.
type LookupKeyOpts struct {
	Channel string // conda channel consulted (e.g., "conda-forge")
	Deep    bool   // whether transitive specs were requested
}

// Keyer generates cache keys for the different cached data categories.
type Keyer interface {
	// HTTPKey generates a key for a raw HTTP response.
	HTTPKey(namespace, key string) string

	// LookupKey generates a key for a per-package dependency lookup result.
	LookupKey(pkg string, opts LookupKeyOpts) string

	// AdvisoryKey generates a key for a vulnerability feed snapshot.
	AdvisoryKey(source string) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching.
// The key is kept readable (no hashing) so cache contents can be inspected.
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// LookupKey generates a key for dependency lookup caching.
func (DefaultKeyer) LookupKey(pkg string, opts LookupKeyOpts) string {
	return hashKey("lookup", pkg, opts)
}

// AdvisoryKey generates a key for advisory feed caching.
func (DefaultKeyer) AdvisoryKey(source string) string {
	return hashKey("advisory", source)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
