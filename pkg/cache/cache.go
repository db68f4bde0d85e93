// Package cache provides layout memoization backends.
//
// The engine itself is stateless: sanitize and layout are recomputed on
// every refresh. Caching is purely an optimization, keyed by the content
// hash of the sanitized graph plus the layout options, and correctness
// never depends on it - a broken or cold cache only costs recomputation.
//
// Backends:
//   - FileCache: per-user directory cache for CLI usage
//   - RedisCache: shared cache for server deployments
//   - NullCache: caching disabled
package cache

import (
	"context"
	"time"
)

// DefaultTTL is the default lifetime of cached layouts. Process graphs
// change when the backend re-parses a regulation, so entries do not need to
// live long.
const DefaultTTL = 24 * time.Hour

// Cache is a byte-oriented key-value store with TTL support.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found;
	// a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// LayoutKeyOpts captures every layout option that affects the cached
// result. Two calls with the same graph hash and the same opts are
// guaranteed to produce identical layouts.
type LayoutKeyOpts struct {
	Direction  string
	NodeWidth  float64
	NodeHeight float64
	RankSep    float64
	NodeSep    float64
	Margin     float64
}

// Keyer generates cache keys for the pipeline's stages.
type Keyer interface {
	// LayoutKey generates a key for a computed layout.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer generates sha-256 based keys with type prefixes.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation, e.g.
// separating cache entries per deployment environment.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(graphHash, opts)
}
