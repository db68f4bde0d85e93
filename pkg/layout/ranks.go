package layout

import (
	"github.com/procmap/procmap/pkg/graph"
	"github.com/procmap/procmap/pkg/observability"
)

// assignRanks computes each node's layer as its longest-path distance from
// a source node. Edges that would close a cycle are found first by a
// depth-first traversal (white/gray/black coloring, nodes and edges visited
// in input order) and excluded from the distance computation, so a cyclic
// edge set can never cause non-termination. The excluded edges remain part
// of the graph; only ranking ignores them.
func assignRanks(g graph.Graph) map[string]int {
	// Adjacency over edge indices, preserving edge input order.
	outgoing := make(map[string][]int, len(g.Nodes))
	for i, e := range g.Edges {
		outgoing[e.Source] = append(outgoing[e.Source], i)
	}

	back := findBackEdges(g, outgoing)

	// Kahn longest-path layering over the acyclic edge subset.
	inDegree := make(map[string]int, len(g.Nodes))
	for _, n := range g.Nodes {
		inDegree[n.ID] = 0
	}
	for i, e := range g.Edges {
		if back[i] {
			continue
		}
		inDegree[e.Target]++
	}

	ranks := make(map[string]int, len(g.Nodes))
	queue := make([]string, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		if inDegree[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, ei := range outgoing[curr] {
			if back[ei] {
				continue
			}
			child := g.Edges[ei].Target
			if r := ranks[curr] + 1; r > ranks[child] {
				ranks[child] = r
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	return ranks
}

// findBackEdges marks the edge indices whose inclusion would close a cycle.
// Traversal order is fully determined by input order, so the same graph
// always yields the same cycle-breaking decision.
func findBackEdges(g graph.Graph, outgoing map[string][]int) map[int]bool {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(g.Nodes))
	back := make(map[int]bool)

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, ei := range outgoing[id] {
			target := g.Edges[ei].Target
			switch color[target] {
			case white:
				dfs(target)
			case gray:
				back[ei] = true
				observability.Engine().OnCycleEdge(g.Edges[ei].Source, target)
			}
		}
		color[id] = black
	}

	for _, n := range g.Nodes {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}

	return back
}
