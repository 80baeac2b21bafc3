// Package scene models the rendering surface the view pipeline drives: a
// store of element positions, visibility and parent groups whose writes are
// published in atomic frames.
package scene

import (
	"sort"

	"github.com/matsen/ppaat/internal/network"
)

// Scene is the mutation surface of a renderer. All writes between Begin
// and the matching End are published as a single frame.
type Scene interface {
	Begin()
	End()
	SetVisible(id string, visible bool)
	SetEdgeVisible(key string, visible bool)
	Move(id string, parent network.GroupID)
	SetPosition(id string, p Point)
	// Grid sorts ids with less and places them in the cells of spec.
	Grid(ids []string, spec GridSpec, less func(a, b string) bool) []Placement
}

// Reader exposes the committed state of a scene.
type Reader interface {
	Visible(id string) bool
	EdgeVisible(key string) bool
	Parent(id string) network.GroupID
	Position(id string) (Point, bool)
	GroupVisible(g network.GroupID) bool
	Groups() []network.GroupID
}

// Placement records where Grid put one element.
type Placement struct {
	ID   string
	Cell Cell
	At   Point
}

// Frame describes one published batch of writes.
type Frame struct {
	Seq    int
	Writes int
}

// Memory is an in-memory Scene. It is not safe for concurrent use.
type Memory struct {
	depth   int
	seq     int
	pending int

	visible   map[string]bool
	edges     map[string]bool
	parent    map[string]network.GroupID
	positions map[string]Point
	observers []func(Frame)
}

// NewMemory creates an empty scene.
func NewMemory() *Memory {
	return &Memory{
		visible:   make(map[string]bool),
		edges:     make(map[string]bool),
		parent:    make(map[string]network.GroupID),
		positions: make(map[string]Point),
	}
}

// OnCommit registers fn to be called after every published frame.
func (m *Memory) OnCommit(fn func(Frame)) {
	m.observers = append(m.observers, fn)
}

// Begin opens a batch. Batches nest; only the outermost End publishes.
func (m *Memory) Begin() {
	m.depth++
}

// End closes a batch opened by Begin.
func (m *Memory) End() {
	if m.depth == 0 {
		return
	}
	m.depth--
	if m.depth == 0 && m.pending > 0 {
		m.commit()
	}
}

// InBatch reports whether a batch is open.
func (m *Memory) InBatch() bool {
	return m.depth > 0
}

func (m *Memory) commit() {
	m.seq++
	f := Frame{Seq: m.seq, Writes: m.pending}
	m.pending = 0
	for _, fn := range m.observers {
		fn(f)
	}
}

// write counts a mutation; outside a batch each write is its own frame.
func (m *Memory) write() {
	m.pending++
	if m.depth == 0 {
		m.commit()
	}
}

// SetVisible shows or hides a node.
func (m *Memory) SetVisible(id string, visible bool) {
	m.visible[id] = visible
	m.write()
}

// SetEdgeVisible shows or hides an edge.
func (m *Memory) SetEdgeVisible(key string, visible bool) {
	m.edges[key] = visible
	m.write()
}

// Move reparents a node. GroupNone detaches it.
func (m *Memory) Move(id string, parent network.GroupID) {
	if parent == network.GroupNone {
		delete(m.parent, id)
	} else {
		m.parent[id] = parent
	}
	m.write()
}

// SetPosition pins a node at p.
func (m *Memory) SetPosition(id string, p Point) {
	m.positions[id] = p
	m.write()
}

// Grid implements Scene.
func (m *Memory) Grid(ids []string, spec GridSpec, less func(a, b string) bool) []Placement {
	if len(ids) == 0 {
		return nil
	}
	sorted := append([]string(nil), ids...)
	if less != nil {
		sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	}
	cells := spec.Cells(len(sorted))
	out := make([]Placement, len(sorted))
	for i, id := range sorted {
		at := spec.Center(cells[i])
		m.SetPosition(id, at)
		out[i] = Placement{ID: id, Cell: cells[i], At: at}
	}
	return out
}

// Frames returns the number of frames published so far.
func (m *Memory) Frames() int {
	return m.seq
}

// Visible reports whether the node is shown. Unknown ids are hidden.
func (m *Memory) Visible(id string) bool {
	return m.visible[id]
}

// EdgeVisible reports whether the edge is shown.
func (m *Memory) EdgeVisible(key string) bool {
	return m.edges[key]
}

// Parent returns the group currently owning id.
func (m *Memory) Parent(id string) network.GroupID {
	return m.parent[id]
}

// Position returns the pinned position of id.
func (m *Memory) Position(id string) (Point, bool) {
	p, ok := m.positions[id]
	return p, ok
}

// Children returns the ids parented under g, sorted.
func (m *Memory) Children(g network.GroupID) []string {
	var out []string
	for id, p := range m.parent {
		if p == g {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// GroupVisible reports whether g has at least one visible child. Group
// visibility is always derived, never stored.
func (m *Memory) GroupVisible(g network.GroupID) bool {
	for id, p := range m.parent {
		if p == g && m.visible[id] {
			return true
		}
	}
	return false
}

// Groups returns every group that currently has children, fixed groups
// first in display order and anchor boxes after, sorted.
func (m *Memory) Groups() []network.GroupID {
	present := make(map[network.GroupID]bool)
	for _, p := range m.parent {
		present[p] = true
	}
	var out []network.GroupID
	for _, g := range network.FixedGroups {
		if present[g] {
			out = append(out, g)
			delete(present, g)
		}
	}
	var rest []string
	for g := range present {
		rest = append(rest, string(g))
	}
	sort.Strings(rest)
	for _, g := range rest {
		out = append(out, network.GroupID(g))
	}
	return out
}
