package graph

import (
	"regexp"
	"strings"

	"github.com/procmap/procmap/pkg/observability"
)

// Default caps applied by DefaultLimits. These are DoS thresholds, not
// correctness requirements; operators tune them via configuration.
const (
	DefaultMaxNodes    = 100
	DefaultMaxEdges    = 500
	DefaultMaxLabelLen = 200
)

// idPattern is the full set of characters a node id may use. Anything
// outside it (path separators, whitespace, markup) drops the node.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,100}$`)

// tagPattern matches tag-like substrings stripped from labels. This is
// defense in depth: the rendering surface escapes text anyway, but markup
// never leaves this package regardless.
var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Limits bounds the work the sanitizer and everything downstream of it will
// perform. The zero value is not usable; start from DefaultLimits.
type Limits struct {
	MaxNodes    int `json:"max_nodes" toml:"max_nodes"`
	MaxEdges    int `json:"max_edges" toml:"max_edges"`
	MaxLabelLen int `json:"max_label_len" toml:"max_label_len"`
}

// DefaultLimits returns the standard caps.
func DefaultLimits() Limits {
	return Limits{
		MaxNodes:    DefaultMaxNodes,
		MaxEdges:    DefaultMaxEdges,
		MaxLabelLen: DefaultMaxLabelLen,
	}
}

// withDefaults fills unset (zero or negative) fields so a partially
// populated Limits from a config file still bounds everything.
func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.MaxNodes <= 0 {
		l.MaxNodes = d.MaxNodes
	}
	if l.MaxEdges <= 0 {
		l.MaxEdges = d.MaxEdges
	}
	if l.MaxLabelLen <= 0 {
		l.MaxLabelLen = d.MaxLabelLen
	}
	return l
}

// Sanitize validates and cleans raw node/edge input.
//
// Truncation to the caps happens before any per-item validation so that
// oversized input never costs more than capped input. Invalid and duplicate
// nodes are dropped, labels are cleaned, and edges are kept only when both
// endpoints reference retained nodes. Input order is preserved for
// everything that survives.
//
// Sanitize never fails: the worst possible input produces an empty Graph.
func Sanitize(nodes []Node, edges []Edge, limits Limits) Graph {
	limits = limits.withDefaults()

	if len(nodes) > limits.MaxNodes {
		observability.Engine().OnTruncate("nodes", limits.MaxNodes, len(nodes))
		nodes = nodes[:limits.MaxNodes]
	}
	if len(edges) > limits.MaxEdges {
		observability.Engine().OnTruncate("edges", limits.MaxEdges, len(edges))
		edges = edges[:limits.MaxEdges]
	}

	out := Graph{
		Nodes: make([]Node, 0, len(nodes)),
		Edges: make([]Edge, 0, len(edges)),
	}

	seen := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		if !idPattern.MatchString(n.ID) {
			observability.Engine().OnNodeDropped(n.ID, "invalid id")
			continue
		}
		if _, dup := seen[n.ID]; dup {
			observability.Engine().OnNodeDropped(n.ID, "duplicate id")
			continue
		}
		seen[n.ID] = struct{}{}
		n.Label = CleanLabel(n.Label, limits.MaxLabelLen)
		out.Nodes = append(out.Nodes, n)
	}

	for _, e := range edges {
		if _, ok := seen[e.Source]; !ok {
			observability.Engine().OnEdgeDropped(e.Source, e.Target, "missing source")
			continue
		}
		if _, ok := seen[e.Target]; !ok {
			observability.Engine().OnEdgeDropped(e.Source, e.Target, "missing target")
			continue
		}
		out.Edges = append(out.Edges, e)
	}

	return out
}

// CleanLabel strips tag-like markup, trims whitespace, and caps the result
// at maxLen runes. Truncation counts runes so multi-byte text is never
// split mid-character.
func CleanLabel(label string, maxLen int) string {
	label = tagPattern.ReplaceAllString(label, "")
	label = strings.TrimSpace(label)
	if maxLen <= 0 {
		maxLen = DefaultMaxLabelLen
	}
	runes := []rune(label)
	if len(runes) > maxLen {
		label = string(runes[:maxLen])
	}
	return label
}
