package stats

import (
	"reflect"
	"strings"
	"testing"

	"github.com/matsen/ppaat/internal/network"
	"github.com/matsen/ppaat/internal/view"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		num, den int
		want     float64
	}{
		{6, 8, 75.0},
		{0, 8, 0},
		{8, 8, 100},
		{1, 3, 33.3},
		{2, 3, 66.7},
		{1, 16, 6.3}, // 6.25 rounds up
		{1, 1600, 0.1},
		{5, 0, 0},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := Percent(tt.num, tt.den); got != tt.want {
			t.Errorf("Percent(%d, %d) = %g, want %g", tt.num, tt.den, got, tt.want)
		}
	}
}

func node(id string, sp network.Species, partners ...string) *network.Node {
	return &network.Node{ID: id, Species: sp, Level: network.LevelProtein, Partners: partners}
}

// scenarioGraph has six visible interologs and two partner declarations
// pointing at the predicted-only P1.
func scenarioGraph(t *testing.T, s view.State) *network.Graph {
	t.Helper()
	s1, s2 := network.Species1, network.Species2
	p1 := node("P1", s1, "B4", "B5")
	p1.Evidence = network.EvidencePredicted

	g := network.New()
	g.Meta = network.Meta{Species1Name: "S.cerevisiae", Species2Name: "C.elegans", Protein1: "EDE1", Protein2: "ITSN-2"}
	for _, n := range []*network.Node{
		node("A1", s1, "B1", "B2"),
		node("A2", s1, "B2", "B3"),
		node("A3", s1, "B3", "B4"),
		node("C1", s1),
		p1,
		node("B1", s2, "A1"),
		node("B2", s2, "A1", "A2"),
		node("B3", s2, "A2", "A3"),
		node("B4", s2, "A3", "P1"),
		node("B5", s2, "P1"),
	} {
		if err := g.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	view.Initialize(g, s)
	return g
}

func TestCompute(t *testing.T) {
	s := view.Initial().TogglePredicted()
	sum := Compute(scenarioGraph(t, s), s)

	if sum.Found != 6 || sum.Missing != 2 {
		t.Fatalf("found/missing = %d/%d, want 6/2", sum.Found, sum.Missing)
	}
	if sum.Possible() != 8 || sum.Score != 75.0 {
		t.Errorf("score = %g of %d, want 75.0 of 8", sum.Score, sum.Possible())
	}

	want := [2]SpeciesCounts{
		{Species: network.Species1, Name: "S.cerevisiae", Matched: 3, Unmatchable: 1, Coverage: 100},
		{Species: network.Species2, Name: "C.elegans", Matched: 4, Unmatched: 1, Coverage: 80},
	}
	if !reflect.DeepEqual(sum.Species, want) {
		t.Errorf("species = %+v, want %+v", sum.Species, want)
	}
}

func TestCompute_ShowPredicted(t *testing.T) {
	s := view.Initial()
	sum := Compute(scenarioGraph(t, s), s)

	// P1 is on screen, so its two pairs are found rather than missing.
	if sum.Found != 8 || sum.Missing != 0 || sum.Score != 100 {
		t.Errorf("found/missing/score = %d/%d/%g, want 8/0/100", sum.Found, sum.Missing, sum.Score)
	}
	if sum.Species[0].Matched != 4 {
		t.Errorf("species-1 matched = %d, want 4", sum.Species[0].Matched)
	}
}

func TestCompute_Empty(t *testing.T) {
	sum := Compute(network.New(), view.Initial())
	if sum.Score != 0 || sum.Species[0].Coverage != 0 || sum.Species[1].Coverage != 0 {
		t.Errorf("empty graph summary = %+v, want zeros", sum)
	}
}

func TestSummaryText(t *testing.T) {
	s := view.Initial().TogglePredicted()
	g := scenarioGraph(t, s)
	text := Compute(g, s).Text(g.Meta)
	for _, want := range []string{
		"75.0% of interologs found",
		"6 interologs found out of 8 total possible interologs",
		"4 C.elegans ITSN-2 neighbours in interologs out of 5 possible",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Text() missing %q in:\n%s", want, text)
		}
	}
}

func TestMissing(t *testing.T) {
	s := view.Initial().TogglePredicted()
	g := scenarioGraph(t, s)
	extra := node("B6", network.Species2, "ghost", "A1")
	if err := g.AddNode(extra); err != nil {
		t.Fatal(err)
	}
	view.Initialize(g, s)

	reports := Missing(g, s)
	s1 := reports[0]
	if s1.Species != network.Species1 {
		t.Fatalf("reports[0].Species = %v", s1.Species)
	}
	want := []MissingEntry{
		{ID: "P1", Name: "P1", Resolved: true, Count: 2, Indicators: []string{"B4", "B5"}},
		{ID: "ghost", Name: "ghost", Resolved: false, Count: 1, Indicators: []string{"B6"}},
	}
	if !reflect.DeepEqual(s1.Entries, want) {
		t.Errorf("species-1 entries = %+v, want %+v", s1.Entries, want)
	}
	if len(reports[1].Entries) != 0 {
		t.Errorf("species-2 entries = %+v, want none", reports[1].Entries)
	}
}
