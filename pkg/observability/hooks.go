// Package observability provides hooks for metrics, tracing, and logging.
//
// The core engine packages (graph, layout, annotate) are pure functions that
// silently correct structural anomalies: dropped nodes, truncated input,
// out-of-range citation markers. Operators still want to see those events,
// so the engine emits them through hook interfaces registered here.
//
// The package uses a simple hooks pattern:
//   - hook interfaces per event category
//   - no-op default implementations
//   - a global registry populated once at startup
//
// This keeps the engine free of hard dependencies on any observability
// backend while letting main wire in whatever it wants (a structured logger,
// Prometheus counters, OTLP, ...).
//
// # Usage
//
//	func main() {
//	    observability.SetEngineHooks(&logHooks{logger: logger})
//	    // ... run application
//	}
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Engine Hooks
// =============================================================================

// EngineHooks receives structural-anomaly events from the sanitizer, the
// layout engine, and the annotator. Implementations must be safe for
// concurrent use; the engine may be called from multiple goroutines.
type EngineHooks interface {
	// OnNodeDropped records a node removed during sanitization.
	// Reason is a short phrase such as "invalid id" or "duplicate id".
	OnNodeDropped(id, reason string)

	// OnEdgeDropped records an edge removed during sanitization.
	OnEdgeDropped(source, target, reason string)

	// OnTruncate records cap-driven truncation of an input collection.
	// Kind is "nodes" or "edges"; kept/total give the truncation extent.
	OnTruncate(kind string, kept, total int)

	// OnCycleEdge records an edge excluded from rank computation because it
	// would close a cycle.
	OnCycleEdge(source, target string)

	// OnMarkerLimit records that citation scanning stopped after the marker
	// cap was reached, with the number of markers resolved.
	OnMarkerLimit(resolved int)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the API server.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEngineHooks is a no-op implementation of EngineHooks.
type NoopEngineHooks struct{}

func (NoopEngineHooks) OnNodeDropped(string, string)         {}
func (NoopEngineHooks) OnEdgeDropped(string, string, string) {}
func (NoopEngineHooks) OnTruncate(string, int, int)          {}
func (NoopEngineHooks) OnCycleEdge(string, string)           {}
func (NoopEngineHooks) OnMarkerLimit(int)                    {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	engineHooks EngineHooks = NoopEngineHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
	hooksMu     sync.RWMutex
)

// SetEngineHooks registers custom engine hooks.
// Call once at application startup before any engine operations.
func SetEngineHooks(h EngineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		engineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Engine returns the registered engine hooks.
func Engine() EngineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return engineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	engineHooks = NoopEngineHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
