package scene

import "math"

// Point is a 2-D model coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// GridSpec describes a grid sub-layout. The grid's top-left corner is
// (X1, Y1); cells are CellW by CellH and filled row-major.
type GridSpec struct {
	X1, Y1       float64
	CellW, CellH float64
	Rows, Cols   int
}

// Cell is a grid cell coordinate.
type Cell struct {
	Row, Col int
}

// SquareSide returns ceil(sqrt(n)), the side of the smallest square grid
// holding n cells. Zero for n <= 0.
func SquareSide(n int) int {
	if n <= 0 {
		return 0
	}
	return int(math.Ceil(math.Sqrt(float64(n))))
}

// Shape resolves the rows and columns a grid of n cells will use. A zero
// dimension is derived from the other; both zero gives a square grid.
func (s GridSpec) Shape(n int) (rows, cols int) {
	if n <= 0 {
		return 0, 0
	}
	rows, cols = s.Rows, s.Cols
	switch {
	case rows <= 0 && cols <= 0:
		side := SquareSide(n)
		return side, side
	case cols <= 0:
		cols = (n + rows - 1) / rows
	case rows <= 0:
		rows = (n + cols - 1) / cols
	}
	if rows*cols < n {
		// Too few cells: grow rows so every element gets its own cell.
		rows = (n + cols - 1) / cols
	}
	return rows, cols
}

// Cells assigns n elements to distinct cells, row-major.
func (s GridSpec) Cells(n int) []Cell {
	_, cols := s.Shape(n)
	cells := make([]Cell, n)
	for i := range cells {
		cells[i] = Cell{Row: i / cols, Col: i % cols}
	}
	return cells
}

// Center returns the model coordinate of the centre of c.
func (s GridSpec) Center(c Cell) Point {
	return Point{
		X: s.X1 + float64(c.Col)*s.CellW + s.CellW/2,
		Y: s.Y1 + float64(c.Row)*s.CellH + s.CellH/2,
	}
}

// Positions returns the centre of each of n cells, row-major.
func (s GridSpec) Positions(n int) []Point {
	cells := s.Cells(n)
	out := make([]Point, len(cells))
	for i, c := range cells {
		out[i] = s.Center(c)
	}
	return out
}
