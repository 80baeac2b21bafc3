package layout

import (
	"math"
	"sort"

	"github.com/matsen/ppaat/internal/network"
	"github.com/matsen/ppaat/internal/scene"
	"github.com/matsen/ppaat/internal/view"
)

// statusBuckets holds domain-targets split by match status.
type statusBuckets [3][]*network.Node

// sortedAnchors returns the domain anchors of sp ordered by id.
func sortedAnchors(g *network.Graph, sp network.Species) []*network.Node {
	anchors := g.Filter(func(n *network.Node) bool {
		return n.Role == network.RoleAnchor && n.Species == sp
	})
	sort.SliceStable(anchors, func(i, j int) bool { return anchors[i].ID < anchors[j].ID })
	return anchors
}

// anchorBuckets collects the visible, unclaimed domain-targets adjacent to
// anchor, split by status and sorted by name.
func anchorBuckets(g *network.Graph, anchor *network.Node, s view.State, claimed map[string]bool) statusBuckets {
	var b statusBuckets
	for _, n := range g.Neighbours(anchor.ID) {
		if !n.IsDomainTarget() || claimed[n.ID] || !view.IsVisible(n, s) {
			continue
		}
		b[n.Status] = append(b[n.Status], n)
	}
	for i := range b {
		network.SortByName(b[i])
	}
	return b
}

// claim marks every domain-target adjacent to anchor as taken, so later
// anchors of the same species skip it. Anchors are visited in id order.
func claim(g *network.Graph, anchor *network.Node, claimed map[string]bool) {
	for _, n := range g.Neighbours(anchor.ID) {
		if n.IsDomainTarget() {
			claimed[n.ID] = true
		}
	}
}

// MaxMatchedTargets is the largest number of matched domain-targets held by
// one anchor, across both species, with first-claim-wins applied.
func MaxMatchedTargets(g *network.Graph, s view.State) int {
	most := 0
	for _, sp := range []network.Species{network.Species1, network.Species2} {
		claimed := make(map[string]bool)
		for _, a := range sortedAnchors(g, sp) {
			b := anchorBuckets(g, a, s, claimed)
			most = max(most, len(b[network.Matched]))
			claim(g, a, claimed)
		}
	}
	return most
}

// QueryX is the distance of both anchor columns from the centre line. It
// widens so the longest matched row fits between the columns.
func (e *Engine) QueryX(g *network.Graph, s view.State) float64 {
	return math.Max(e.cfg.QueryCentreDist, e.cfg.TargetXSep*float64(MaxMatchedTargets(g, s))+e.cfg.Margin)
}

// layoutDomains places anchors, their domain-targets and the termini.
// It returns the shared column distance.
func (e *Engine) layoutDomains(g *network.Graph, sc scene.Scene, s view.State, less func(a, b string) bool, r *Result) float64 {
	queryX := e.QueryX(g, s)

	for _, sp := range []network.Species{network.Species1, network.Species2} {
		x := sp.Sign() * queryX
		anchors := sortedAnchors(g, sp)
		claimed := make(map[string]bool)

		for i, a := range anchors {
			y := float64(i) * e.cfg.DomainYSep
			if view.IsVisible(a, s) {
				sc.SetPosition(a.ID, scene.Point{X: x, Y: y})
			}

			b := anchorBuckets(g, a, s, claimed)
			toward := -sp.Sign()
			away := sp.Sign()
			e.placeAnchorRow(sc, a, b[network.Matched], x, y, toward, less, r)
			e.placeAnchorRow(sc, a, b[network.Unmatched], x, y-e.cfg.DomainTargetYDist, away, less, r)
			e.placeAnchorRow(sc, a, b[network.Unmatchable], x, y+e.cfg.DomainTargetYDist, away, less, r)
			claim(g, a, claimed)
		}

		e.placeTermini(g, sc, s, sp, x, len(anchors))
	}
	return queryX
}

// placeAnchorRow lays nodes out in one row next to the anchor at (ax, y).
// A positive dir grows the row rightwards from ax+DomainTargetXDist, a
// negative dir ends it at ax-DomainTargetXDist. Nodes are parented under the
// anchor's box while positioned, then returned to their regular group.
func (e *Engine) placeAnchorRow(sc scene.Scene, anchor *network.Node, nodes []*network.Node, ax, y, dir float64, less func(a, b string) bool, r *Result) {
	if len(nodes) == 0 {
		return
	}
	step := e.cfg.TargetXSep
	x1 := ax + e.cfg.DomainTargetXDist - step/2
	if dir < 0 {
		x1 = ax - e.cfg.DomainTargetXDist - step*float64(len(nodes)-1) - step/2
	}
	spec := scene.GridSpec{X1: x1, Y1: y - e.cfg.YSep/2, CellW: step, CellH: e.cfg.YSep, Rows: 1}

	box := network.AnchorGroup(anchor.ID)
	for _, n := range nodes {
		sc.Move(n.ID, box)
	}
	placed := sc.Grid(ids(nodes), spec, less)
	for _, n := range nodes {
		sc.Move(n.ID, view.Regroup(n))
	}

	rows, cols := spec.Shape(len(nodes))
	b := Bucket{Group: box, Rows: rows, Cols: cols}
	for _, p := range placed {
		b.IDs = append(b.IDs, p.ID)
	}
	r.Buckets = append(r.Buckets, b)
}

// placeTermini pins the N-terminus above the first anchor and the
// C-terminus below the last.
func (e *Engine) placeTermini(g *network.Graph, sc scene.Scene, s view.State, sp network.Species, x float64, nAnchors int) {
	bottom := float64(max(nAnchors-1, 0))*e.cfg.DomainYSep + e.cfg.TerminusOffset
	for _, t := range g.Filter(func(n *network.Node) bool {
		return n.Role == network.RoleTerminus && n.Species == sp
	}) {
		if !view.IsVisible(t, s) {
			continue
		}
		y := -e.cfg.TerminusOffset
		if t.Terminus == network.TerminusC {
			y = bottom
		}
		sc.SetPosition(t.ID, scene.Point{X: x, Y: y})
	}
}
