// Package stats summarizes the current classification of an interolog graph.
package stats

import (
	"fmt"
	"strings"

	"github.com/matsen/ppaat/internal/network"
	"github.com/matsen/ppaat/internal/view"
)

// SpeciesCounts holds the classification counts of one species' visible
// neighbours.
type SpeciesCounts struct {
	Species     network.Species `json:"species"`
	Name        string          `json:"name,omitempty"`
	Matched     int             `json:"matched"`
	Unmatched   int             `json:"unmatched"`
	Unmatchable int             `json:"unmatchable"`
	Coverage    float64         `json:"coverage"`
}

// Possible is the number of neighbours that could take part in an interolog.
func (c SpeciesCounts) Possible() int {
	return c.Matched + c.Unmatched
}

// Total is the number of visible neighbours.
func (c SpeciesCounts) Total() int {
	return c.Matched + c.Unmatched + c.Unmatchable
}

// Summary is the stats snapshot for one view state.
type Summary struct {
	State   view.State       `json:"state"`
	Species [2]SpeciesCounts `json:"species"`
	Found   int              `json:"found"`
	Missing int              `json:"missing"`
	Score   float64          `json:"score"`
}

// Possible is the number of interologs found or missing.
func (s Summary) Possible() int {
	return s.Found + s.Missing
}

// Compute derives the summary from the classification already stored on
// the nodes of g. It keeps no state between calls.
//
// Found counts distinct visible cross-species partner pairs. Missing counts
// declared partner ids of visible, matchable targets that are hidden or do
// not resolve to a loaded node.
func Compute(g *network.Graph, s view.State) Summary {
	sum := Summary{State: s}
	for i, sp := range []network.Species{network.Species1, network.Species2} {
		sum.Species[i] = SpeciesCounts{Species: sp, Name: g.Meta.SpeciesName(sp)}
	}

	pairs := make(map[[2]string]bool)
	for _, n := range g.Nodes() {
		if !n.IsTarget() || !view.IsVisible(n, s) {
			continue
		}
		c := &sum.Species[n.Species-1]
		switch n.Status {
		case network.Matched:
			c.Matched++
		case network.Unmatched:
			c.Unmatched++
		default:
			c.Unmatchable++
			continue
		}

		for _, id := range n.Partners {
			p, ok := g.Node(id)
			if ok && p.Species == n.Species {
				continue
			}
			if !ok || !view.IsVisible(p, s) {
				sum.Missing++
				continue
			}
			pairs[pairKey(n.ID, p.ID)] = true
		}
	}
	sum.Found = len(pairs)

	for i := range sum.Species {
		c := &sum.Species[i]
		c.Coverage = Percent(c.Matched, c.Possible())
	}
	sum.Score = Percent(sum.Found, sum.Possible())
	return sum
}

func pairKey(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}

// Percent returns num/den as a percentage rounded half-up to one decimal
// place. A zero denominator gives 0.
func Percent(num, den int) float64 {
	if den <= 0 {
		return 0
	}
	tenths := (2*num*1000 + den) / (2 * den)
	return float64(tenths) / 10
}

// Text renders the summary as the multi-line report shown next to the graph.
func (s Summary) Text(meta network.Meta) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%.1f%% of interologs found\n", s.Score)
	fmt.Fprintf(&b, "%d interologs found out of %d total possible interologs\n", s.Found, s.Possible())
	for _, c := range s.Species {
		name := meta.SpeciesName(c.Species)
		protein := meta.Protein1
		if c.Species == network.Species2 {
			protein = meta.Protein2
		}
		if protein != "" {
			name += " " + protein
		}
		fmt.Fprintf(&b, "%d %s neighbours in interologs out of %d possible interologous neighbours, %d total neighbours (%.1f%%)\n",
			c.Matched, name, c.Possible(), c.Total(), c.Coverage)
	}
	return b.String()
}
