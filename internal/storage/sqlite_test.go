package storage

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matsen/ppaat/internal/network"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "cache", "views.db"))
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func ids(rows []NodeRow) []string {
	var out []string
	for _, r := range rows {
		out = append(out, r.View+"/"+r.ID)
	}
	return out
}

func TestLatestBuild_Empty(t *testing.T) {
	db := setupTestDB(t)
	if _, err := db.LatestBuild(); !errors.Is(err, ErrNoBuild) {
		t.Errorf("LatestBuild() error = %v, want ErrNoBuild", err)
	}
}

func TestRebuildFromSnapshots(t *testing.T) {
	db := setupTestDB(t)
	snaps := testSnapshots(t)

	b, err := db.RebuildFromSnapshots("test", snaps)
	if err != nil {
		t.Fatalf("RebuildFromSnapshots() error = %v", err)
	}
	if b.ID == "" || b.Views != 4 || b.Nodes != 12 {
		t.Errorf("build = %+v, want 4 views and 12 nodes", b)
	}

	latest, err := db.LatestBuild()
	if err != nil {
		t.Fatalf("LatestBuild() error = %v", err)
	}
	if !reflect.DeepEqual(latest, b) {
		t.Errorf("LatestBuild() = %+v, want %+v", latest, b)
	}

	// A second rebuild replaces the first.
	again, err := db.RebuildFromSnapshots("test", snaps)
	if err != nil {
		t.Fatalf("second RebuildFromSnapshots() error = %v", err)
	}
	if again.ID == b.ID {
		t.Error("rebuild reused the build id")
	}
	rows, err := db.QueryNodes(NodeFilter{})
	if err != nil {
		t.Fatalf("QueryNodes() error = %v", err)
	}
	if len(rows) != 12 {
		t.Errorf("QueryNodes() after second rebuild returned %d rows, want 12", len(rows))
	}
}

func TestRebuildFromJSONL(t *testing.T) {
	db := setupTestDB(t)
	path := filepath.Join(t.TempDir(), "views.jsonl")
	if err := WriteSnapshots(path, testSnapshots(t)); err != nil {
		t.Fatal(err)
	}

	b, err := db.RebuildFromJSONL(path)
	if err != nil {
		t.Fatalf("RebuildFromJSONL() error = %v", err)
	}
	if b.Source != path || b.Nodes != 12 {
		t.Errorf("build = %+v", b)
	}
}

func TestQueryNodes(t *testing.T) {
	db := setupTestDB(t)
	if _, err := db.RebuildFromSnapshots("test", testSnapshots(t)); err != nil {
		t.Fatal(err)
	}

	unmatched := network.Unmatched
	matched := network.Matched
	tests := []struct {
		name   string
		filter NodeFilter
		want   []string
	}{
		{"one view", NodeFilter{View: "pd"}, []string{"pd/A1", "pd/B1", "pd/C1"}},
		{"species", NodeFilter{View: "pp", Species: network.Species1}, []string{"pp/A1", "pp/C1"}},
		{"matched", NodeFilter{Status: &matched, VisibleOnly: true}, []string{"pd/A1", "pd/B1", "pp/A1", "pp/B1"}},
		{"hidden partner", NodeFilter{View: "vp", Status: &unmatched, VisibleOnly: true}, []string{"vp/A1"}},
		{"visible only", NodeFilter{View: "vd", VisibleOnly: true}, []string{"vd/A1", "vd/C1"}},
		{"name", NodeFilter{Name: "itsn"}, []string{"pd/B1", "pp/B1", "vd/B1", "vp/B1"}},
		{"group", NodeFilter{View: "pd", Group: network.UnmatchableGroup(network.Species1)}, []string{"pd/C1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := db.QueryNodes(tt.filter)
			if err != nil {
				t.Fatalf("QueryNodes() error = %v", err)
			}
			if got := ids(rows); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("QueryNodes() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := db.QueryNodes(NodeFilter{View: "xx"}); err == nil {
		t.Error("QueryNodes() with bad view key error = nil")
	}
}

func TestQueryNodes_Positions(t *testing.T) {
	db := setupTestDB(t)
	snaps := testSnapshots(t)
	if _, err := db.RebuildFromSnapshots("test", snaps); err != nil {
		t.Fatal(err)
	}

	rows, err := db.QueryNodes(NodeFilter{View: snaps[0].View})
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range rows {
		want := snaps[0].Nodes[i]
		if r.ID != want.ID || r.Positioned != want.Positioned || r.X != want.Position.X || r.Y != want.Position.Y {
			t.Errorf("row %d = %+v, want %+v", i, r, want)
		}
		if r.Status != want.Status || r.Group != want.Group {
			t.Errorf("row %s status/group = %v/%q, want %v/%q", r.ID, r.Status, r.Group, want.Status, want.Group)
		}
	}
}

func TestGetStats(t *testing.T) {
	db := setupTestDB(t)
	snaps := testSnapshots(t)
	if _, err := db.RebuildFromSnapshots("test", snaps); err != nil {
		t.Fatal(err)
	}

	for _, s := range snaps {
		sum, missing, err := db.GetStats(s.View)
		if err != nil {
			t.Fatalf("GetStats(%s) error = %v", s.View, err)
		}
		if !reflect.DeepEqual(sum, s.Stats) {
			t.Errorf("GetStats(%s) summary = %+v, want %+v", s.View, sum, s.Stats)
		}
		if !reflect.DeepEqual(missing, s.Missing) {
			t.Errorf("GetStats(%s) missing = %+v, want %+v", s.View, missing, s.Missing)
		}
	}

	if _, _, err := db.GetStats("zz"); err == nil {
		t.Error("GetStats(zz) error = nil")
	}
}
