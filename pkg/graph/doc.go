// Package graph defines the process-graph data model and its sanitizer.
//
// This package is the trust boundary between the backend API and the layout
// engine. Raw node/edge data arrives from an external service (itself fed by
// scraped government pages and an LLM parsing pipeline), so nothing in it can
// be assumed well-formed: ids may be malformed, labels may carry markup,
// edges may dangle, and the whole graph may be adversarially large.
//
// # Sanitization
//
// [Sanitize] turns arbitrary input into a [Graph] that downstream stages can
// rely on:
//
//   - node and edge counts are truncated to [Limits] before any per-item
//     validation, bounding all downstream work
//   - node ids must match ^[A-Za-z0-9_.-]{1,100}$; offenders are dropped
//   - duplicate ids are dropped (first occurrence wins)
//   - labels are stripped of tag-like markup, trimmed, and length-capped
//   - edges survive only if both endpoints survived
//
// Nothing here is an error condition: malformed input degrades to a smaller
// graph, never to a failure. Cycles are deliberately not handled here - a
// graph with accidental cycles is still valid input, and cycle tolerance
// belongs to the layout stage.
//
// Sanitize is deterministic and idempotent: identical input yields
// byte-identical output, and sanitizing an already sanitized graph is a
// no-op.
//
// # Wire format
//
// The JSON shape matches the backend API:
//
//	{
//	  "nodes": [{"id": "step-1", "label": "File application", "order": 1}],
//	  "edges": [{"source": "step-1", "target": "step-2", "type": "requires"}]
//	}
//
// Use [UnmarshalGraph], [ReadGraph], and [ReadGraphFile] to decode it.
package graph
