// Package layout computes fixed, reproducible positions for every visible
// node of an interolog graph. Placement is a single deterministic pass:
// there is no force simulation and no incremental relaxation, so the same
// graph and view state always produce the same coordinates.
package layout

import (
	"github.com/matsen/ppaat/internal/network"
	"github.com/matsen/ppaat/internal/scene"
	"github.com/matsen/ppaat/internal/view"
)

// Engine runs layouts with a fixed spacing configuration.
type Engine struct {
	cfg Config
}

// New creates an Engine.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the spacing the engine lays out with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Bucket records one grid placed by a layout run.
type Bucket struct {
	Group network.GroupID `json:"group"`
	Rows  int             `json:"rows"`
	Cols  int             `json:"cols"`
	IDs   []string        `json:"ids"` // in placement order
}

// Result summarizes a layout run.
type Result struct {
	// QueryX is the distance of the query columns from the centre line.
	QueryX float64 `json:"query_x"`

	// Left and Right are the interolog columns; "" marks an empty row.
	Left  []string `json:"left"`
	Right []string `json:"right"`

	// Dumped lists matched nodes placed with the unmatched because none of
	// their partners passed the column filters.
	Dumped []string `json:"dumped,omitempty"`

	Buckets []Bucket `json:"buckets,omitempty"`
}

// Run repositions every visible node of g under s. All writes go to sc;
// the caller owns the batch bracket.
func (e *Engine) Run(g *network.Graph, sc scene.Scene, s view.State) Result {
	r := Result{QueryX: e.cfg.QueryCentreDist}
	less := nameOrder(g)
	nDomains := anchorRows(g)

	if s.Granularity == view.GranularityDomain {
		r.QueryX = e.layoutDomains(g, sc, s, less, &r)
	}

	cols := BuildColumns(g, s)
	r.Left, r.Right = cols.IDs()
	e.placeColumns(sc, cols, s, nDomains)

	for _, sp := range []network.Species{network.Species1, network.Species2} {
		r.Dumped = append(r.Dumped, ids(cols.Dump[sp-1])...)
	}
	e.placeBuckets(g, sc, s, cols, r.QueryX, nDomains, less, &r)
	e.placeQueries(g, sc, s, r.QueryX, nDomains)

	return r
}

// placeQueries pins the query proteins on their column: above the N-terminus
// at domain granularity, level with the interolog rows at protein granularity.
func (e *Engine) placeQueries(g *network.Graph, sc scene.Scene, s view.State, queryX float64, nDomains int) {
	y := e.centreY(nDomains)
	if s.Granularity == view.GranularityDomain {
		y = -2 * e.cfg.TerminusOffset
	}
	for _, q := range g.Filter(func(n *network.Node) bool { return n.Role == network.RoleQuery }) {
		if view.IsVisible(q, s) {
			sc.SetPosition(q.ID, scene.Point{X: q.Species.Sign() * queryX, Y: y})
		}
	}
}

// centreY is the vertical centre of the anchor block.
func (e *Engine) centreY(nDomains int) float64 {
	return (float64(nDomains)/2 - 1) * e.cfg.DomainYSep
}

// anchorRows is the larger anchor count of the two species.
func anchorRows(g *network.Graph) int {
	var counts [2]int
	for _, n := range g.Nodes() {
		if n.Role == network.RoleAnchor {
			counts[n.Species-1]++
		}
	}
	return max(counts[0], counts[1])
}

// nameOrder returns the display-name comparator over node ids.
func nameOrder(g *network.Graph) func(a, b string) bool {
	return func(a, b string) bool {
		na, _ := g.Node(a)
		nb, _ := g.Node(b)
		return network.LessByName(na, nb)
	}
}

func ids(nodes []*network.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}
