package scene

import (
	"testing"

	"github.com/matsen/ppaat/internal/network"
)

func TestSquareSide(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{0, 0}, {1, 1}, {2, 2}, {4, 2}, {5, 3}, {9, 3}, {10, 4}, {16, 4}, {17, 5}, {100, 10},
	}
	for _, tt := range tests {
		if got := SquareSide(tt.n); got != tt.want {
			t.Errorf("SquareSide(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestGridSpec_CellsAreDistinct(t *testing.T) {
	for n := 0; n <= 50; n++ {
		spec := GridSpec{CellW: 30, CellH: 30}
		rows, cols := spec.Shape(n)
		side := SquareSide(n)
		if rows != side || cols != side {
			t.Fatalf("Shape(%d) = %dx%d, want %dx%d", n, rows, cols, side, side)
		}

		seen := make(map[Cell]bool)
		for _, c := range spec.Cells(n) {
			if seen[c] {
				t.Fatalf("n=%d: duplicate cell %v", n, c)
			}
			if c.Row >= rows || c.Col >= cols {
				t.Fatalf("n=%d: cell %v outside %dx%d", n, c, rows, cols)
			}
			seen[c] = true
		}
		if len(seen) != n {
			t.Fatalf("n=%d: got %d cells", n, len(seen))
		}
	}
}

func TestGridSpec_Shape(t *testing.T) {
	tests := []struct {
		name       string
		spec       GridSpec
		n          int
		rows, cols int
	}{
		{"single row", GridSpec{Rows: 1}, 5, 1, 5},
		{"fixed cols", GridSpec{Cols: 2}, 5, 3, 2},
		{"too small grows rows", GridSpec{Rows: 1, Cols: 2}, 5, 3, 2},
		{"empty", GridSpec{Rows: 1}, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, cols := tt.spec.Shape(tt.n)
			if rows != tt.rows || cols != tt.cols {
				t.Errorf("Shape(%d) = %dx%d, want %dx%d", tt.n, rows, cols, tt.rows, tt.cols)
			}
		})
	}
}

func TestMemory_Grid(t *testing.T) {
	m := NewMemory()
	spec := GridSpec{X1: 100, Y1: -60, CellW: 30, CellH: 30, Rows: 1}
	got := m.Grid([]string{"c", "a", "b"}, spec, func(a, b string) bool { return a < b })

	want := []Placement{
		{ID: "a", Cell: Cell{0, 0}, At: Point{115, -45}},
		{ID: "b", Cell: Cell{0, 1}, At: Point{145, -45}},
		{ID: "c", Cell: Cell{0, 2}, At: Point{175, -45}},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d placements, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("placement %d = %+v, want %+v", i, got[i], want[i])
		}
		if p, ok := m.Position(want[i].ID); !ok || p != want[i].At {
			t.Errorf("Position(%s) = %v, want %v", want[i].ID, p, want[i].At)
		}
	}

	if m.Grid(nil, spec, nil) != nil {
		t.Error("empty grid should place nothing")
	}
}

func TestMemory_BatchPublishesOneFrame(t *testing.T) {
	m := NewMemory()
	var frames []Frame
	m.OnCommit(func(f Frame) { frames = append(frames, f) })

	m.Begin()
	m.SetVisible("a", true)
	m.Begin()
	m.Move("a", network.GroupInterologs)
	m.End()
	if len(frames) != 0 {
		t.Fatalf("inner End published %d frames", len(frames))
	}
	m.SetPosition("a", Point{1, 2})
	m.End()

	if len(frames) != 1 || frames[0].Writes != 3 {
		t.Fatalf("frames = %+v, want one frame of 3 writes", frames)
	}

	m.SetVisible("b", false)
	if m.Frames() != 2 {
		t.Errorf("write outside a batch should publish, Frames() = %d", m.Frames())
	}

	m.Begin()
	m.End()
	if m.Frames() != 2 {
		t.Errorf("empty batch should not publish, Frames() = %d", m.Frames())
	}
}

func TestMemory_GroupVisibility(t *testing.T) {
	m := NewMemory()
	m.Move("a", network.GroupUnmatched1)
	m.Move("b", network.GroupUnmatched1)
	m.Move("c", network.AnchorGroup("d1"))
	m.SetVisible("a", false)
	m.SetVisible("b", true)

	if !m.GroupVisible(network.GroupUnmatched1) {
		t.Error("group with a visible child should be visible")
	}
	if m.GroupVisible(network.AnchorGroup("d1")) {
		t.Error("group without visible children should be hidden")
	}

	m.SetVisible("b", false)
	if m.GroupVisible(network.GroupUnmatched1) {
		t.Error("group visibility should follow its children")
	}

	groups := m.Groups()
	if len(groups) != 2 || groups[0] != network.GroupUnmatched1 || groups[1] != network.AnchorGroup("d1") {
		t.Errorf("Groups() = %v", groups)
	}

	m.Move("c", network.GroupNone)
	if len(m.Children(network.AnchorGroup("d1"))) != 0 {
		t.Error("Move to GroupNone should detach")
	}
}
