// Package pipeline composes the procmap engine stages.
//
// The pipeline is sanitize → layout for graphs, and a thin passthrough for
// citation annotation. Centralizing this keeps CLI and API behavior
// identical: both hand raw deserialized input to a Runner and get back a
// positioned graph or a segment list.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Direction: layout.TopToBottom}
//	result, err := runner.Execute(ctx, rawGraph, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	positioned := result.Layout
//
// Layout results are memoized through the cache, keyed by the content hash
// of the sanitized graph plus the layout options. The cache is an
// optimization only; a NullCache gives identical results.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/procmap/procmap/pkg/cache"
	"github.com/procmap/procmap/pkg/errors"
	"github.com/procmap/procmap/pkg/graph"
	"github.com/procmap/procmap/pkg/layout"
)

// Formats for the CLI/API output surface.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Sanitizer caps
	Limits graph.Limits `json:"limits,omitempty"`

	// Layout options
	Layout layout.Options `json:"layout,omitempty"`

	// Annotation marker cap
	MaxMarkers int `json:"max_markers,omitempty"`

	// Refresh bypasses the layout cache.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks option consistency and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Layout.Direction != "" && !o.Layout.Direction.Valid() {
		return errors.New(errors.ErrCodeInvalidDirection, "unknown direction: %q", o.Layout.Direction)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// LayoutKeyOpts returns cache key options covering the layout geometry.
// Limits need no representation here: the key is derived from the hash of
// the already-sanitized graph, which reflects whatever caps were applied.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Direction:  string(o.Layout.Direction),
		NodeWidth:  o.Layout.NodeWidth,
		NodeHeight: o.Layout.NodeHeight,
		RankSep:    o.Layout.RankSep,
		NodeSep:    o.Layout.NodeSep,
		Margin:     o.Layout.Margin,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the sanitized graph.
	Graph graph.Graph

	// GraphHash is the content hash of the sanitized graph.
	GraphHash string

	// Layout is the positioned graph.
	Layout layout.Positioned

	// Stats contains size and cache information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RawNodes     int  `json:"raw_nodes"`
	RawEdges     int  `json:"raw_edges"`
	NodeCount    int  `json:"node_count"`
	EdgeCount    int  `json:"edge_count"`
	DroppedNodes int  `json:"dropped_nodes"`
	DroppedEdges int  `json:"dropped_edges"`
	LayoutHit    bool `json:"layout_hit"` // whether the layout came from cache

	SanitizeTime time.Duration `json:"-"`
	LayoutTime   time.Duration `json:"-"`
}
