package graph

// Node is a single process step as supplied by the backend.
// ID is the only trusted-after-sanitization identity; Label is free text
// from an untrusted source, and Order is a rank hint that the layout engine
// does not treat as authoritative.
type Node struct {
	ID    string `json:"id" bson:"id"`
	Label string `json:"label,omitempty" bson:"label,omitempty"`
	Order int    `json:"order,omitempty" bson:"order,omitempty"`
}

// Edge is a directed dependency between two process steps.
// Kind carries the relation tag from the source data ("requires",
// "precedes", ...) and is passed through untouched.
type Edge struct {
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
	Kind   string `json:"type,omitempty" bson:"type,omitempty"`
}

// Graph is a node-link pair. Raw input and sanitized output share this
// shape; only graphs returned by [Sanitize] carry its guarantees.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// IsEmpty reports whether the graph has no nodes. An empty graph is a valid
// terminal state meaning "nothing to render", not an error.
func (g Graph) IsEmpty() bool { return len(g.Nodes) == 0 }

// NodeIDs returns the ids of all nodes in input order.
func (g Graph) NodeIDs() []string {
	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	return ids
}
