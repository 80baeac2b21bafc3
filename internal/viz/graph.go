package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/matsen/ppaat/internal/engine"
	"github.com/matsen/ppaat/internal/network"
	"github.com/matsen/ppaat/internal/stats"
	"github.com/matsen/ppaat/internal/view"
)

// BuildGraph assembles the page data for g from snapshots of its view
// states. The first snapshot is the view shown on load.
func BuildGraph(g *network.Graph, snaps []engine.Snapshot) *GraphData {
	data := &GraphData{Title: title(g.Meta)}
	if g.Len() == 0 {
		return data
	}

	for _, grp := range collectGroups(snaps) {
		data.Nodes = append(data.Nodes, Node{
			ID:    groupID(string(grp)),
			Type:  NodeTypeGroup,
			Label: groupLabel(g, grp),
		})
	}
	for _, n := range g.Nodes() {
		data.Nodes = append(data.Nodes, newNode(n))
	}
	for _, e := range g.Edges() {
		data.Edges = append(data.Edges, Edge{Source: e.Source, Target: e.Target, Kind: e.Kind.String()})
	}

	for _, s := range snaps {
		data.Views = append(data.Views, newView(g.Meta, s))
	}
	if len(snaps) > 0 {
		data.Initial = snaps[0].View
	}
	return data
}

// collectGroups returns every group any snapshot knows of: the fixed
// containers first, then anchor groups by id.
func collectGroups(snaps []engine.Snapshot) []network.GroupID {
	seen := make(map[network.GroupID]bool)
	var anchors []network.GroupID
	for _, s := range snaps {
		for _, gs := range s.Groups {
			if seen[gs.ID] || gs.ID == network.GroupNone {
				continue
			}
			seen[gs.ID] = true
			if gs.ID.IsAnchor() {
				anchors = append(anchors, gs.ID)
			}
		}
	}
	sort.Slice(anchors, func(i, j int) bool { return anchors[i] < anchors[j] })
	return append(append([]network.GroupID(nil), network.FixedGroups...), anchors...)
}

func groupLabel(g *network.Graph, grp network.GroupID) string {
	if !grp.IsAnchor() {
		return string(grp)
	}
	id := string(grp[len("anchor:"):])
	if n, ok := g.Node(id); ok && n.Name != "" {
		return n.Name
	}
	return id
}

func newNode(n *network.Node) Node {
	label := n.Name
	if label == "" {
		label = n.ID
	}
	typ := NodeTypeTarget
	switch n.Role {
	case network.RoleQuery:
		typ = NodeTypeQuery
	case network.RoleAnchor:
		typ = NodeTypeAnchor
	case network.RoleTerminus:
		typ = NodeTypeTerminus
	}
	return Node{
		ID:        n.ID,
		Type:      typ,
		Label:     label,
		Species:   int(n.Species),
		Predicted: n.Evidence == network.EvidencePredicted,
	}
}

func newView(meta network.Meta, s engine.Snapshot) View {
	v := View{
		Key:     s.View,
		Label:   viewLabel(s.State),
		Nodes:   make(map[string]NodeView),
		Edges:   []string{},
		Groups:  []string{},
		Stats:   s.Stats.Text(meta),
		Missing: missingLines(meta, s.Missing),
	}
	for _, n := range s.Nodes {
		if !n.Visible {
			continue
		}
		nv := NodeView{Status: n.Status.String(), Placed: n.Positioned, X: n.Position.X, Y: n.Position.Y}
		if n.Group != network.GroupNone {
			nv.Parent = groupID(string(n.Group))
		}
		v.Nodes[n.ID] = nv
	}
	for _, e := range s.Edges {
		if e.Visible {
			v.Edges = append(v.Edges, e.Key)
		}
	}
	for _, gs := range s.Groups {
		if gs.Visible && gs.ID != network.GroupNone {
			v.Groups = append(v.Groups, groupID(string(gs.ID)))
		}
	}
	return v
}

func viewLabel(s view.State) string {
	if s.ShowPredicted {
		return s.Granularity.String() + " view, predicted interactions shown"
	}
	return s.Granularity.String() + " view, validated interactions only"
}

// missingLines formats the predicted-interactor report, one line per entry.
func missingLines(meta network.Meta, reports [2]stats.MissingReport) []string {
	var out []string
	for _, r := range reports {
		for _, e := range r.Entries {
			name := e.Name
			if name == "" {
				name = e.ID
			}
			out = append(out, fmt.Sprintf("%s %s: %d (%s)", meta.SpeciesName(r.Species), name, e.Count, strings.Join(e.Indicators, ", ")))
		}
	}
	return out
}

func title(meta network.Meta) string {
	if meta.Protein1 == "" && meta.Protein2 == "" {
		return "Interolog viewer"
	}
	return fmt.Sprintf("%s (%s) / %s (%s)",
		meta.Protein1, meta.SpeciesName(network.Species1),
		meta.Protein2, meta.SpeciesName(network.Species2))
}
