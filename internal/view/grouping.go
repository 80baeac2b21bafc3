package view

import "github.com/matsen/ppaat/internal/network"

// Regroup returns the display group implied by the species and match
// status of n. Query proteins, anchors and termini belong to no group.
func Regroup(n *network.Node) network.GroupID {
	if !n.IsTarget() {
		return network.GroupNone
	}
	switch n.Status {
	case network.Matched:
		return network.GroupInterologs
	case network.Unmatched:
		return network.UnmatchedGroup(n.Species)
	default:
		return network.UnmatchableGroup(n.Species)
	}
}

// Reclassify recomputes the status of every node whose status can change
// under s and returns those whose status did change, with Group updated to
// match. Unmatchable nodes are skipped; their status is fixed at load.
func Reclassify(g *network.Graph, s State) []*network.Node {
	var changed []*network.Node
	for _, n := range g.Nodes() {
		if n.Status == network.Unmatchable {
			continue
		}
		next := Classify(g, n, s)
		if next == n.Status {
			continue
		}
		n.Status = next
		n.Group = Regroup(n)
		changed = append(changed, n)
	}
	return changed
}

// Initialize classifies every node from scratch under s. It is the only
// place unmatchable status is assigned.
func Initialize(g *network.Graph, s State) {
	for _, n := range g.Nodes() {
		n.Status = Classify(g, n, s)
		n.Group = Regroup(n)
	}
}
