package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/procmap/procmap/pkg/annotate"
	"github.com/procmap/procmap/pkg/cache"
	"github.com/procmap/procmap/pkg/graph"
	"github.com/procmap/procmap/pkg/layout"
	"github.com/procmap/procmap/pkg/observability"
)

// Runner executes the sanitize → layout pipeline with layout memoization.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (memoization disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute sanitizes a raw graph and computes its layout.
// Malformed input degrades inside the engine; the only errors surfacing
// here are option contract violations and (swallowed, logged) cache faults.
func (r *Runner) Execute(ctx context.Context, raw graph.Graph, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}
	result.Stats.RawNodes = len(raw.Nodes)
	result.Stats.RawEdges = len(raw.Edges)

	start := time.Now()
	result.Graph = graph.Sanitize(raw.Nodes, raw.Edges, opts.Limits)
	result.Stats.SanitizeTime = time.Since(start)
	result.GraphHash = graph.Hash(result.Graph)
	result.Stats.NodeCount = len(result.Graph.Nodes)
	result.Stats.EdgeCount = len(result.Graph.Edges)
	result.Stats.DroppedNodes = clampNonNegative(result.Stats.RawNodes - result.Stats.NodeCount)
	result.Stats.DroppedEdges = clampNonNegative(result.Stats.RawEdges - result.Stats.EdgeCount)

	r.Logger.Debug("sanitized graph",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"dropped_nodes", result.Stats.DroppedNodes,
		"dropped_edges", result.Stats.DroppedEdges)

	start = time.Now()
	positioned, hit := r.layoutWithCache(ctx, result.Graph, result.GraphHash, opts)
	result.Layout = positioned
	result.Stats.LayoutHit = hit
	result.Stats.LayoutTime = time.Since(start)

	r.Logger.Debug("computed layout",
		"nodes", len(positioned.Nodes),
		"cached", hit)

	return result, nil
}

// Annotate splits message text into literal and citation segments.
// It exists on the Runner so CLI and API share defaulting behavior; the
// underlying function is pure.
func (r *Runner) Annotate(text string, citations []annotate.Citation, opts Options) []annotate.Segment {
	maxMarkers := opts.MaxMarkers
	if maxMarkers <= 0 {
		maxMarkers = annotate.DefaultMaxMarkers
	}
	return annotate.AnnotateWithLimit(text, citations, maxMarkers)
}

// layoutWithCache returns the memoized layout when available, computing
// and storing it otherwise. Cache failures are logged and ignored: the
// engine never depends on the cache for correctness.
func (r *Runner) layoutWithCache(ctx context.Context, g graph.Graph, hash string, opts Options) (layout.Positioned, bool) {
	key := r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if p, err := layout.UnmarshalPositioned(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return p, true
			}
		} else if err != nil {
			r.Logger.Warn("layout cache read failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	p := layout.Layout(g, opts.Layout)

	if data, err := layout.MarshalPositioned(p); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
			r.Logger.Warn("layout cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return p, false
}

// Close releases cache resources held by the runner.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
