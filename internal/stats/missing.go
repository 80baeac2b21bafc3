package stats

import (
	"sort"

	"github.com/matsen/ppaat/internal/network"
	"github.com/matsen/ppaat/internal/view"
)

// MissingEntry is one predicted interactor: a declared partner that is not
// on screen, with the visible neighbours indicating it.
type MissingEntry struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Resolved   bool     `json:"resolved"`
	Count      int      `json:"count"`
	Indicators []string `json:"indicators"`
}

// MissingReport lists the predicted interactors of one species.
type MissingReport struct {
	Species network.Species `json:"species"`
	Entries []MissingEntry  `json:"entries"`
}

// Missing builds, per species, the predicted-interactor report: every
// partner id not visible under s, with the visible opposite-species targets
// that declare it. Entries are ordered by count descending, then id.
// Dangling ids are reported under the species opposite their indicators.
func Missing(g *network.Graph, s view.State) [2]MissingReport {
	var byID [2]map[string]*MissingEntry
	for i := range byID {
		byID[i] = make(map[string]*MissingEntry)
	}

	for _, n := range g.Nodes() {
		if !n.IsTarget() || n.Status == network.Unmatchable || !view.IsVisible(n, s) {
			continue
		}
		sp := n.Species.Opposite()
		for _, id := range n.Partners {
			p, ok := g.Node(id)
			if ok && (p.Species == n.Species || view.IsVisible(p, s)) {
				continue
			}
			e := byID[sp-1][id]
			if e == nil {
				e = &MissingEntry{ID: id, Name: id, Resolved: ok}
				if ok {
					e.Name = p.Name
				}
				byID[sp-1][id] = e
			}
			e.Indicators = append(e.Indicators, n.Name)
		}
	}

	var out [2]MissingReport
	for i, sp := range []network.Species{network.Species1, network.Species2} {
		out[i].Species = sp
		for _, e := range byID[i] {
			sort.Strings(e.Indicators)
			e.Count = len(e.Indicators)
			out[i].Entries = append(out[i].Entries, *e)
		}
		sort.Slice(out[i].Entries, func(a, b int) bool {
			ea, eb := out[i].Entries[a], out[i].Entries[b]
			if ea.Count != eb.Count {
				return ea.Count > eb.Count
			}
			return ea.ID < eb.ID
		})
	}
	return out
}
