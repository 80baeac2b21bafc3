package layout

import (
	"github.com/matsen/ppaat/internal/network"
	"github.com/matsen/ppaat/internal/scene"
	"github.com/matsen/ppaat/internal/view"
)

// Columns pairs species-1 and species-2 interolog partners row by row.
// Nil entries are empty rows; both columns always have the same length.
type Columns struct {
	Left  []*network.Node
	Right []*network.Node

	// Dump holds, per species, matched nodes whose partners all failed the
	// visibility filter. They keep their status but are drawn in, and
	// parented under, the unmatched grid for this pass.
	Dump [2][]*network.Node
}

// IDs returns the column ids, "" for empty rows.
func (c Columns) IDs() (left, right []string) {
	left = make([]string, len(c.Left))
	right = make([]string, len(c.Right))
	for i := range c.Left {
		if c.Left[i] != nil {
			left[i] = c.Left[i].ID
		}
		if c.Right[i] != nil {
			right[i] = c.Right[i].ID
		}
	}
	return left, right
}

// columnCandidates returns the matched column nodes of sp, sorted by name.
func columnCandidates(g *network.Graph, s view.State, sp network.Species) []*network.Node {
	nodes := g.Filter(func(n *network.Node) bool {
		return n.Species == sp && n.Status == network.Matched && view.InColumns(n, s)
	})
	network.SortByName(nodes)
	return nodes
}

// visibleMatchedPartners returns the declared partners of n of the
// opposite species that are visible and matched under s.
func visibleMatchedPartners(g *network.Graph, n *network.Node, s view.State) []*network.Node {
	var out []*network.Node
	seen := make(map[string]bool)
	for _, p := range g.Partners(n) {
		if seen[p.ID] || p.Species == n.Species || p.Status != network.Matched || !view.IsVisible(p, s) {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out
}

// BuildColumns walks species-1 matched nodes in name order, appending each
// once to the left column and its partners to the right, then appends the
// species-2 matched nodes not yet placed. Left entries are padded with
// empty rows so each partner block stays row-aligned with its owner.
func BuildColumns(g *network.Graph, s view.State) Columns {
	var c Columns
	placed := make(map[string]bool)

	for _, n := range columnCandidates(g, s, network.Species1) {
		if !view.IsVisible(n, s) {
			continue
		}
		partners := visibleMatchedPartners(g, n, s)
		if len(partners) == 0 {
			c.Dump[0] = append(c.Dump[0], n)
			continue
		}

		var row []*network.Node
		for _, p := range partners {
			if view.InColumns(p, s) && !placed[p.ID] {
				row = append(row, p)
			}
		}
		network.SortByName(row)

		c.Left = append(c.Left, n)
		if len(row) == 0 {
			// Partners bind domains and are drawn by their anchors.
			c.Right = append(c.Right, nil)
			continue
		}
		for i, p := range row {
			placed[p.ID] = true
			c.Right = append(c.Right, p)
			if i > 0 {
				c.Left = append(c.Left, nil)
			}
		}
	}

	for _, n := range columnCandidates(g, s, network.Species2) {
		if placed[n.ID] || !view.IsVisible(n, s) {
			continue
		}
		if len(visibleMatchedPartners(g, n, s)) == 0 {
			c.Dump[1] = append(c.Dump[1], n)
			continue
		}
		placed[n.ID] = true
		c.Left = append(c.Left, nil)
		c.Right = append(c.Right, n)
	}
	return c
}

// placeColumns positions the interolog rows either side of the centre line.
func (e *Engine) placeColumns(sc scene.Scene, c Columns, s view.State, nDomains int) {
	rows := float64(len(c.Left))
	base := -rows * e.cfg.YSep
	if s.Granularity == view.GranularityProtein {
		base = -rows/2*e.cfg.YSep + e.centreY(nDomains)
	}

	place := func(col []*network.Node, x float64) {
		for i, n := range col {
			if n == nil {
				continue
			}
			sc.SetPosition(n.ID, scene.Point{X: x, Y: base + float64(i)*e.cfg.YSep})
			sc.Move(n.ID, view.Regroup(n))
		}
	}
	place(c.Left, -e.cfg.InterologCentreDist)
	place(c.Right, e.cfg.InterologCentreDist)
}

// placeBuckets lays out the unmatched and unmatchable nodes of each species
// as square grids outside the query columns: unmatched above the centre,
// unmatchable below.
func (e *Engine) placeBuckets(g *network.Graph, sc scene.Scene, s view.State, c Columns, queryX float64, nDomains int, less func(a, b string) bool, r *Result) {
	outerX := queryX + e.cfg.MatchedXDist
	unmatchedY := e.centreY(nDomains)
	unmatchableY := float64(nDomains) / 2 * e.cfg.DomainYSep
	if s.Granularity == view.GranularityDomain {
		unmatchedY = -e.cfg.DomainYSep
		unmatchableY = float64(nDomains) * e.cfg.DomainYSep
	}

	for _, sp := range []network.Species{network.Species1, network.Species2} {
		unmatched := bucketNodes(g, s, sp, network.Unmatched)
		unmatched = append(unmatched, c.Dump[sp-1]...)
		network.SortByName(unmatched)
		e.placeGrid(sc, unmatched, sp, outerX, unmatchedY, true, less, r)

		unmatchable := bucketNodes(g, s, sp, network.Unmatchable)
		e.placeGrid(sc, unmatchable, sp, outerX, unmatchableY, false, less, r)
	}
}

// bucketNodes returns the visible column nodes of sp with the given status.
func bucketNodes(g *network.Graph, s view.State, sp network.Species, status network.MatchStatus) []*network.Node {
	nodes := g.Filter(func(n *network.Node) bool {
		return n.Species == sp && n.Status == status && view.InColumns(n, s) && view.IsVisible(n, s)
	})
	network.SortByName(nodes)
	return nodes
}

// placeGrid places nodes in a ceil(sqrt(n)) square grid. Species 1 grids
// end at -outerX, species 2 grids start at +outerX. Upward grids end at y,
// downward grids start at it.
func (e *Engine) placeGrid(sc scene.Scene, nodes []*network.Node, sp network.Species, outerX, y float64, upward bool, less func(a, b string) bool, r *Result) {
	if len(nodes) == 0 {
		return
	}
	side := scene.SquareSide(len(nodes))
	spec := scene.GridSpec{CellW: e.cfg.XSep, CellH: e.cfg.YSep, Rows: side, Cols: side}
	_, cols := spec.Shape(len(nodes))
	usedRows := (len(nodes) + cols - 1) / cols

	spec.X1 = outerX
	if sp == network.Species1 {
		spec.X1 = -outerX - e.cfg.XSep*float64(side)
	}
	spec.Y1 = y
	if upward {
		spec.Y1 = y - e.cfg.YSep*float64(usedRows)
	}

	group := network.UnmatchableGroup(sp)
	if upward {
		group = network.UnmatchedGroup(sp)
	}
	b := Bucket{Group: group, Rows: side, Cols: side}
	for _, p := range sc.Grid(ids(nodes), spec, less) {
		b.IDs = append(b.IDs, p.ID)
	}
	for _, n := range nodes {
		sc.Move(n.ID, group)
	}
	r.Buckets = append(r.Buckets, b)
}
