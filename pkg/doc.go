// Package pkg provides the core libraries for procmap process-graph
// visualization and citation annotation.
//
// # Overview
//
// Procmap takes model-produced process descriptions and turns them into
// deterministic, render-ready layouts, and resolves citation markers in
// answer text into source references. The pkg directory is organized by
// pipeline stage:
//
//	Raw graph (untrusted JSON)
//	         ↓
//	    [graph] package (sanitize: caps, id policy, label cleanup)
//	         ↓
//	    [layout] package (rank assignment + coordinates)
//	         ↓
//	    [render] package (DOT / SVG export)
//
// and, independently:
//
//	Answer text + citation list
//	         ↓
//	    [annotate] package (marker resolution into segments)
//	         ↓
//	    [safeurl] package (link target gating)
//
// # Main Packages
//
// [graph] - Serialization types and the sanitizer. Every graph entering the
// engine passes through graph.Sanitize exactly once.
//
// [layout] - Deterministic layered layout: longest-path ranks with ordered
// cycle breaking, input-order placement within ranks.
//
// [annotate] - Citation marker parsing with literal-text degradation for
// everything that cannot be resolved.
//
// [safeurl] - The http(s) allow-list for citation link targets.
//
// [render] - Graphviz DOT and SVG export of positioned graphs.
//
// [pipeline] - Composes sanitize → layout (with cache memoization) behind a
// Runner shared by the CLI and the HTTP API.
//
// [cache] - Layout cache backends: file, Redis, and null.
//
// [store] - MongoDB layout archive keyed by graph content hash.
//
// [errors] - Structured error codes shared across the module.
//
// [observability] - Pluggable hooks for engine, cache, and HTTP events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...       # All tests
//	go test ./pkg/layout    # Specific package
//	go test -run Example    # Examples only
//
// [graph]: https://pkg.go.dev/github.com/procmap/procmap/pkg/graph
// [layout]: https://pkg.go.dev/github.com/procmap/procmap/pkg/layout
// [annotate]: https://pkg.go.dev/github.com/procmap/procmap/pkg/annotate
// [safeurl]: https://pkg.go.dev/github.com/procmap/procmap/pkg/safeurl
// [render]: https://pkg.go.dev/github.com/procmap/procmap/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/procmap/procmap/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/procmap/procmap/pkg/cache
// [store]: https://pkg.go.dev/github.com/procmap/procmap/pkg/store
// [errors]: https://pkg.go.dev/github.com/procmap/procmap/pkg/errors
// [observability]: https://pkg.go.dev/github.com/procmap/procmap/pkg/observability
package pkg
