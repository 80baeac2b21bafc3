package view

import (
	"testing"

	"github.com/matsen/ppaat/internal/network"
)

func newGraph(t *testing.T, nodes ...*network.Node) *network.Graph {
	t.Helper()
	g := network.New()
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode(%s) error = %v", n.ID, err)
		}
	}
	return g
}

func TestStateKeys(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range All() {
		key := s.Key()
		if seen[key] {
			t.Errorf("duplicate key %q", key)
		}
		seen[key] = true

		back, err := ParseKey(key)
		if err != nil {
			t.Fatalf("ParseKey(%q) error = %v", key, err)
		}
		if back != s {
			t.Errorf("ParseKey(%q) = %v, want %v", key, back, s)
		}
	}
	if Initial().Key() != "pd" {
		t.Errorf("Initial().Key() = %q, want pd", Initial().Key())
	}
	for _, bad := range []string{"", "x", "xd", "px", "pdd"} {
		if _, err := ParseKey(bad); err == nil {
			t.Errorf("ParseKey(%q) expected error", bad)
		}
	}
}

func TestToggles(t *testing.T) {
	s := Initial()
	if got := s.ToggleGranularity(); got.Granularity != GranularityProtein || !got.ShowPredicted {
		t.Errorf("ToggleGranularity() = %v", got)
	}
	if got := s.TogglePredicted(); got.Granularity != GranularityDomain || got.ShowPredicted {
		t.Errorf("TogglePredicted() = %v", got)
	}
	if s.ToggleGranularity().ToggleGranularity() != s || s.TogglePredicted().TogglePredicted() != s {
		t.Error("double toggle should restore state")
	}
	if s.ToggleGranularity().TogglePredicted() != s.TogglePredicted().ToggleGranularity() {
		t.Error("toggles should commute")
	}
}

func TestIsVisible(t *testing.T) {
	anchor := &network.Node{ID: "d", Role: network.RoleAnchor, Level: network.LevelDomain}
	query := &network.Node{ID: "q", Role: network.RoleQuery}
	protein := &network.Node{ID: "p", Level: network.LevelProtein}
	domainOnly := &network.Node{ID: "dt", Level: network.LevelDomain}
	both := &network.Node{ID: "b", Level: network.LevelDomain | network.LevelProtein}
	predicted := &network.Node{ID: "pr", Level: network.LevelProtein, Evidence: network.EvidencePredicted}

	pd := State{Granularity: GranularityDomain, ShowPredicted: true}
	pp := State{Granularity: GranularityProtein, ShowPredicted: true}
	vd := State{Granularity: GranularityDomain}
	vp := State{Granularity: GranularityProtein}

	tests := []struct {
		node *network.Node
		want [4]bool // pd, pp, vd, vp
	}{
		{anchor, [4]bool{true, false, true, false}},
		{query, [4]bool{true, true, true, true}},
		{protein, [4]bool{true, true, true, true}},
		{domainOnly, [4]bool{true, false, true, false}},
		{both, [4]bool{true, true, true, true}},
		{predicted, [4]bool{true, true, false, false}},
	}
	for _, tt := range tests {
		t.Run(tt.node.ID, func(t *testing.T) {
			for i, s := range []State{pd, pp, vd, vp} {
				if got := IsVisible(tt.node, s); got != tt.want[i] {
					t.Errorf("IsVisible(%s, %s) = %v, want %v", tt.node.ID, s.Key(), got, tt.want[i])
				}
			}
		})
	}

	if InColumns(both, pd) || !InColumns(both, pp) || !InColumns(protein, pd) || InColumns(domainOnly, pp) {
		t.Error("InColumns() mismatched")
	}
}

func TestClassify(t *testing.T) {
	g := newGraph(t,
		&network.Node{ID: "A1", Species: network.Species1, Level: network.LevelProtein, Partners: []string{"B1"}},
		&network.Node{ID: "B1", Species: network.Species2, Level: network.LevelProtein, Partners: []string{"A1"}, Evidence: network.EvidencePredicted},
		&network.Node{ID: "C1", Species: network.Species1, Level: network.LevelProtein},
		&network.Node{ID: "D1", Species: network.Species1, Level: network.LevelProtein, Partners: []string{"ghost"}},
		&network.Node{ID: "E1", Species: network.Species1, Level: network.LevelProtein, Partners: []string{"A1"}},
		&network.Node{ID: "F1", Species: network.Species1, Level: network.LevelProtein, Partners: []string{"ghost", "B1"}},
		&network.Node{ID: "G2", Species: network.Species2, Level: network.LevelProtein, Partners: []string{"A1"}, ForceUnmatchable: true},
	)

	pd := Initial()
	vd := pd.TogglePredicted()

	tests := []struct {
		id     string
		wantPD network.MatchStatus
		wantVD network.MatchStatus
	}{
		{"A1", network.Matched, network.Unmatched},
		{"B1", network.Matched, network.Matched},
		{"C1", network.Unmatchable, network.Unmatchable},
		{"D1", network.Unmatchable, network.Unmatchable},
		{"E1", network.Unmatchable, network.Unmatchable},
		{"F1", network.Matched, network.Unmatched},
		{"G2", network.Unmatchable, network.Unmatchable},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			n, _ := g.Node(tt.id)
			if got := Classify(g, n, pd); got != tt.wantPD {
				t.Errorf("Classify(pd) = %v, want %v", got, tt.wantPD)
			}
			if got := Classify(g, n, vd); got != tt.wantVD {
				t.Errorf("Classify(vd) = %v, want %v", got, tt.wantVD)
			}
		})
	}
}

func TestRegroupAndReclassify(t *testing.T) {
	g := newGraph(t,
		&network.Node{ID: "A1", Species: network.Species1, Level: network.LevelProtein, Partners: []string{"B1"}},
		&network.Node{ID: "B1", Species: network.Species2, Level: network.LevelProtein, Partners: []string{"A1"}, Evidence: network.EvidencePredicted},
		&network.Node{ID: "C2", Species: network.Species2, Level: network.LevelProtein},
		&network.Node{ID: "d1", Species: network.Species1, Role: network.RoleAnchor, Level: network.LevelDomain},
	)

	Initialize(g, Initial())
	want := map[string]network.GroupID{
		"A1": network.GroupInterologs,
		"B1": network.GroupInterologs,
		"C2": network.GroupUnmatchable2,
		"d1": network.GroupNone,
	}
	for id, group := range want {
		n, _ := g.Node(id)
		if n.Group != group {
			t.Errorf("%s Group = %q, want %q", id, n.Group, group)
		}
	}

	changed := Reclassify(g, Initial().TogglePredicted())
	if len(changed) != 1 || changed[0].ID != "A1" {
		t.Fatalf("Reclassify changed %v, want [A1]", changed)
	}
	if changed[0].Group != network.GroupUnmatched1 {
		t.Errorf("A1 Group = %q, want %q", changed[0].Group, network.GroupUnmatched1)
	}
	for _, n := range g.Nodes() {
		if n.Group != Regroup(n) {
			t.Errorf("%s Group = %q, Regroup = %q", n.ID, n.Group, Regroup(n))
		}
	}
}
