package layout

import "github.com/procmap/procmap/pkg/graph"

// Direction selects the primary layout axis.
type Direction string

const (
	// TopToBottom stacks ranks vertically; within-rank order runs left to right.
	TopToBottom Direction = "top-to-bottom"
	// LeftToRight stacks ranks horizontally; within-rank order runs top to bottom.
	LeftToRight Direction = "left-to-right"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == TopToBottom || d == LeftToRight
}

// Default geometry in logical units. The renderer scales these to its own
// coordinate system.
const (
	DefaultNodeWidth  = 200.0
	DefaultNodeHeight = 80.0
	DefaultRankSep    = 60.0
	DefaultNodeSep    = 40.0
	DefaultMargin     = 20.0
)

// Options configures node geometry and spacing.
// Zero-valued fields fall back to the package defaults, so Options{} and
// DefaultOptions() behave identically.
type Options struct {
	Direction  Direction `json:"direction,omitempty" toml:"direction"`
	NodeWidth  float64   `json:"node_width,omitempty" toml:"node_width"`
	NodeHeight float64   `json:"node_height,omitempty" toml:"node_height"`
	RankSep    float64   `json:"rank_sep,omitempty" toml:"rank_sep"`
	NodeSep    float64   `json:"node_sep,omitempty" toml:"node_sep"`
	Margin     float64   `json:"margin,omitempty" toml:"margin"`
}

// DefaultOptions returns the standard geometry with top-to-bottom flow.
func DefaultOptions() Options {
	return Options{
		Direction:  TopToBottom,
		NodeWidth:  DefaultNodeWidth,
		NodeHeight: DefaultNodeHeight,
		RankSep:    DefaultRankSep,
		NodeSep:    DefaultNodeSep,
		Margin:     DefaultMargin,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if !o.Direction.Valid() {
		o.Direction = d.Direction
	}
	if o.NodeWidth <= 0 {
		o.NodeWidth = d.NodeWidth
	}
	if o.NodeHeight <= 0 {
		o.NodeHeight = d.NodeHeight
	}
	if o.RankSep <= 0 {
		o.RankSep = d.RankSep
	}
	if o.NodeSep <= 0 {
		o.NodeSep = d.NodeSep
	}
	if o.Margin <= 0 {
		o.Margin = d.Margin
	}
	return o
}

// PositionedNode is a node with its assigned rank and the top-left corner
// of its bounding box.
type PositionedNode struct {
	graph.Node `bson:",inline"`

	Rank int     `json:"rank" bson:"rank"`
	X    float64 `json:"x" bson:"x"`
	Y    float64 `json:"y" bson:"y"`
	W    float64 `json:"w" bson:"w"`
	H    float64 `json:"h" bson:"h"`
}

// Positioned is a sanitized graph with coordinates on every node. Edges are
// carried through unchanged; their geometry is derived from the endpoints'
// positions by the renderer.
type Positioned struct {
	Nodes  []PositionedNode `json:"nodes" bson:"nodes"`
	Edges  []graph.Edge     `json:"edges" bson:"edges"`
	Width  float64          `json:"width" bson:"width"`
	Height float64          `json:"height" bson:"height"`
}

// IsEmpty reports whether the layout has no nodes.
func (p Positioned) IsEmpty() bool { return len(p.Nodes) == 0 }

// Layout assigns a rank and a coordinate to every node of a sanitized
// graph. It is deterministic, tolerates cycles, and never fails: the empty
// graph yields the empty layout.
//
// Layout assumes g came from graph.Sanitize. Dangling edges in unsanitized
// input are not a crash hazard (they are ignored by ranking), but positions
// for such input are unspecified.
func Layout(g graph.Graph, opts Options) Positioned {
	opts = opts.withDefaults()

	if g.IsEmpty() {
		return Positioned{Nodes: []PositionedNode{}, Edges: []graph.Edge{}}
	}

	ranks := assignRanks(g)

	// Group nodes by rank, preserving input order within each rank.
	byRank := make(map[int][]int) // rank -> indices into g.Nodes
	maxRank := 0
	for i, n := range g.Nodes {
		r := ranks[n.ID]
		byRank[r] = append(byRank[r], i)
		if r > maxRank {
			maxRank = r
		}
	}

	out := Positioned{
		Nodes: make([]PositionedNode, 0, len(g.Nodes)),
		Edges: append([]graph.Edge(nil), g.Edges...),
	}

	rankStep := primaryExtent(opts) + opts.RankSep
	nodeStep := crossExtent(opts) + opts.NodeSep

	maxIdx := 0
	for r := 0; r <= maxRank; r++ {
		for i, nodeIdx := range byRank[r] {
			n := g.Nodes[nodeIdx]
			primary := opts.Margin + float64(r)*rankStep
			cross := opts.Margin + float64(i)*nodeStep

			pn := PositionedNode{
				Node: n,
				Rank: r,
				W:    opts.NodeWidth,
				H:    opts.NodeHeight,
			}
			if opts.Direction == LeftToRight {
				pn.X, pn.Y = primary, cross
			} else {
				pn.X, pn.Y = cross, primary
			}
			out.Nodes = append(out.Nodes, pn)

			if i > maxIdx {
				maxIdx = i
			}
		}
	}

	primarySpan := 2*opts.Margin + float64(maxRank)*rankStep + primaryExtent(opts)
	crossSpan := 2*opts.Margin + float64(maxIdx)*nodeStep + crossExtent(opts)
	if opts.Direction == LeftToRight {
		out.Width, out.Height = primarySpan, crossSpan
	} else {
		out.Width, out.Height = crossSpan, primarySpan
	}

	return out
}

// primaryExtent is the node size along the rank axis.
func primaryExtent(o Options) float64 {
	if o.Direction == LeftToRight {
		return o.NodeWidth
	}
	return o.NodeHeight
}

// crossExtent is the node size along the within-rank axis.
func crossExtent(o Options) float64 {
	if o.Direction == LeftToRight {
		return o.NodeHeight
	}
	return o.NodeWidth
}
