package view

import "github.com/matsen/ppaat/internal/network"

// IsVisible reports whether n is drawn under s. Anchors, termini and
// domain-only targets exist only at domain granularity; protein targets and
// query proteins are drawn at both. Predicted-only nodes are hidden unless
// s shows predicted interactions.
func IsVisible(n *network.Node, s State) bool {
	if !s.ShowPredicted && n.Evidence != network.EvidenceValidated {
		return false
	}
	return granularityVisible(n, s.Granularity)
}

func granularityVisible(n *network.Node, g Granularity) bool {
	switch n.Role {
	case network.RoleAnchor, network.RoleTerminus:
		return g == GranularityDomain
	case network.RoleQuery:
		return true
	}
	if g == GranularityProtein {
		return n.Level.Has(network.LevelProtein)
	}
	return true
}

// InColumns reports whether a visible target is placed by the interolog
// column layout under s. At domain granularity, targets that bind a domain
// are arranged around their anchor instead.
func InColumns(n *network.Node, s State) bool {
	if !n.IsProteinTarget() {
		return false
	}
	if s.Granularity == GranularityProtein {
		return true
	}
	return !n.Level.Has(network.LevelDomain)
}

// HasVisiblePartner reports whether any declared partner of n resolves to a
// node of the opposite species that is visible under s. Dangling partner
// ids count as not visible.
func HasVisiblePartner(g *network.Graph, n *network.Node, s State) bool {
	for _, id := range n.Partners {
		p, ok := g.Node(id)
		if !ok || p.Species == n.Species {
			continue
		}
		if IsVisible(p, s) {
			return true
		}
	}
	return false
}

// HasCrossSpeciesPartner reports whether any declared partner of n resolves
// to a node of the opposite species, regardless of visibility.
func HasCrossSpeciesPartner(g *network.Graph, n *network.Node) bool {
	for _, id := range n.Partners {
		if p, ok := g.Node(id); ok && p.Species != n.Species {
			return true
		}
	}
	return false
}

// IsUnmatchable is the static half of classification: it depends only on
// the partner list, never on the view state.
func IsUnmatchable(g *network.Graph, n *network.Node) bool {
	return !n.IsTarget() || n.ForceUnmatchable || !HasCrossSpeciesPartner(g, n)
}

// Classify computes the match status of n under s.
func Classify(g *network.Graph, n *network.Node, s State) network.MatchStatus {
	if IsUnmatchable(g, n) {
		return network.Unmatchable
	}
	if HasVisiblePartner(g, n, s) {
		return network.Matched
	}
	return network.Unmatched
}
