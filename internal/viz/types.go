// Package viz renders the four view states of an interolog graph as a
// self-contained Cytoscape.js page.
package viz

// Node types.
const (
	NodeTypeGroup    = "group"
	NodeTypeQuery    = "query"
	NodeTypeAnchor   = "anchor"
	NodeTypeTerminus = "terminus"
	NodeTypeTarget   = "target"
)

// GraphData contains all data needed to render the visualization.
type GraphData struct {
	Title   string
	Nodes   []Node
	Edges   []Edge
	Views   []View
	Initial string // key of the view shown on load
}

// Node is one element of the page. Group containers are nodes too.
type Node struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Label     string `json:"label"`
	Species   int    `json:"species,omitempty"`
	Predicted bool   `json:"predicted,omitempty"`
}

// Edge is one drawn relationship.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Kind   string `json:"kind"`
}

// View holds what a single view state shows.
type View struct {
	Key   string `json:"key"`
	Label string `json:"label"`

	// Nodes has an entry for every visible node.
	Nodes  map[string]NodeView `json:"nodes"`
	Edges  []string            `json:"edges"`
	Groups []string            `json:"groups"`

	Stats   string   `json:"stats"`
	Missing []string `json:"missing"`
}

// NodeView is the state of one visible node in a view.
type NodeView struct {
	Status string  `json:"status"`
	Parent string  `json:"parent,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Placed bool    `json:"placed"`
}

// IsEmpty returns true if the graph has no nodes.
func (g *GraphData) IsEmpty() bool {
	return len(g.Nodes) == 0
}
