// Package layout computes 2-D positions for sanitized process graphs.
//
// The algorithm is a single-pass layered (Sugiyama-style) layout:
//
//  1. Rank assignment: each node's rank is its longest-path distance from a
//     source node, computed by topological traversal. Edges that would close
//     a cycle are detected with a depth-first search in input order and
//     excluded from ranking only - they still appear in the output edge set
//     and are drawn as ordinary edges.
//  2. Ordering: nodes sharing a rank keep their input order. Process graphs
//     are tens of nodes, so no crossing-minimization heuristic is applied;
//     stability across refreshes matters more than crossing counts.
//  3. Coordinates: ranks map to the primary axis, within-rank indices to the
//     cross axis, with fixed node extents, separations, and margin. The
//     direction option chooses which axis is primary.
//
// Layout never fails on sanitized input: cycles terminate, and an empty
// graph yields an empty result. Output coordinates are the top-left corner
// of each node's box; converting to canvas or viewport coordinates is the
// renderer's job.
package layout
