package engine

import (
	"errors"

	"github.com/matsen/ppaat/internal/layout"
	"github.com/matsen/ppaat/internal/network"
	"github.com/matsen/ppaat/internal/scene"
	"github.com/matsen/ppaat/internal/stats"
	"github.com/matsen/ppaat/internal/view"
)

// ErrSceneNotReadable is returned when the controller's scene cannot be
// read back.
var ErrSceneNotReadable = errors.New("scene does not expose its state")

// NodeState is the rendered state of one node.
type NodeState struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Species    network.Species     `json:"species"`
	Status     network.MatchStatus `json:"status"`
	Group      network.GroupID     `json:"group,omitempty"` // scene parent
	Visible    bool                `json:"visible"`
	Positioned bool                `json:"positioned"`
	Position   scene.Point         `json:"position"`
}

// EdgeState is the rendered state of one edge.
type EdgeState struct {
	Key     string `json:"key"`
	Source  string `json:"source"`
	Target  string `json:"target"`
	Kind    string `json:"kind"`
	Visible bool   `json:"visible"`
}

// GroupState is the derived state of one group container.
type GroupState struct {
	ID      network.GroupID `json:"id"`
	Visible bool            `json:"visible"`
}

// Snapshot is an immutable copy of the rendered graph in one view state.
type Snapshot struct {
	View    string                 `json:"view"`
	State   view.State             `json:"state"`
	Nodes   []NodeState            `json:"nodes"`
	Edges   []EdgeState            `json:"edges"`
	Groups  []GroupState           `json:"groups"`
	Stats   stats.Summary          `json:"stats"`
	Missing [2]stats.MissingReport `json:"missing"`
	Layout  layout.Result          `json:"layout"`
}

// Snapshot copies the current state of every node, edge and group.
func (c *Controller) Snapshot() (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Controller) snapshot() (Snapshot, error) {
	r, ok := c.scene.(scene.Reader)
	if !ok {
		return Snapshot{}, ErrSceneNotReadable
	}

	snap := Snapshot{
		View:    c.state.Key(),
		State:   c.state,
		Stats:   c.stats,
		Missing: stats.Missing(c.graph, c.state),
		Layout:  c.result,
	}
	for _, n := range c.graph.Nodes() {
		ns := NodeState{
			ID:      n.ID,
			Name:    n.Name,
			Species: n.Species,
			Status:  n.Status,
			Group:   r.Parent(n.ID),
			Visible: r.Visible(n.ID),
		}
		// Hidden nodes keep whatever position an earlier view gave them.
		if p, ok := r.Position(n.ID); ok && ns.Visible {
			ns.Positioned, ns.Position = true, p
		}
		snap.Nodes = append(snap.Nodes, ns)
	}
	for _, e := range c.graph.Edges() {
		snap.Edges = append(snap.Edges, EdgeState{
			Key:     e.Key(),
			Source:  e.Source,
			Target:  e.Target,
			Kind:    e.Kind.String(),
			Visible: r.EdgeVisible(e.Key()),
		})
	}
	for _, g := range r.Groups() {
		snap.Groups = append(snap.Groups, GroupState{ID: g, Visible: r.GroupVisible(g)})
	}
	return snap, nil
}

// Views drives the controller through all four view states and returns a
// snapshot of each, in view.All order. The controller is left in the state
// it started in.
func (c *Controller) Views() ([]Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := c.state
	defer c.reach(start)

	var out []Snapshot
	for _, s := range view.All() {
		c.reach(s)
		snap, err := c.snapshot()
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, nil
}

// reach applies the toggles needed to move to target. The caller holds mu.
func (c *Controller) reach(target view.State) []Transition {
	var out []Transition
	if c.state.Granularity != target.Granularity {
		out = append(out, c.transition(c.state.ToggleGranularity()))
	}
	if c.state.ShowPredicted != target.ShowPredicted {
		out = append(out, c.transition(c.state.TogglePredicted()))
	}
	return out
}
