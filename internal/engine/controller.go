// Package engine drives the view-state pipeline: every toggle reclassifies,
// regroups, lays out and recounts the graph inside one scene batch.
package engine

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/matsen/ppaat/internal/layout"
	"github.com/matsen/ppaat/internal/logging"
	"github.com/matsen/ppaat/internal/network"
	"github.com/matsen/ppaat/internal/scene"
	"github.com/matsen/ppaat/internal/stats"
	"github.com/matsen/ppaat/internal/view"
)

// Controller owns the view state of one graph. Calls are serialized; a
// toggle started while another runs waits for it to finish.
type Controller struct {
	mu     sync.Mutex
	graph  *network.Graph
	scene  scene.Scene
	layout *layout.Engine
	logger *zap.Logger

	state  view.State
	stats  stats.Summary
	result layout.Result
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger transitions are reported to.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		c.logger = logging.Or(l)
	}
}

// WithLayout sets the layout spacing.
func WithLayout(cfg layout.Config) Option {
	return func(c *Controller) {
		c.layout = layout.New(cfg)
	}
}

// WithInitialState starts the controller in s instead of the default view.
func WithInitialState(s view.State) Option {
	return func(c *Controller) {
		c.state = s
	}
}

// Transition describes one completed toggle.
type Transition struct {
	From     view.State
	To       view.State
	Changed  []string // ids whose status changed, in load order
	Duration time.Duration
}

// NewController classifies every node of g and lays out the initial view
// on sc.
func NewController(g *network.Graph, sc scene.Scene, opts ...Option) *Controller {
	c := &Controller{
		graph:  g,
		scene:  sc,
		layout: layout.New(layout.DefaultConfig()),
		logger: zap.NewNop(),
		state:  view.Initial(),
	}
	for _, opt := range opts {
		opt(c)
	}

	start := time.Now()
	sc.Begin()
	view.Initialize(g, c.state)
	c.applyVisibility()
	for _, n := range g.Nodes() {
		sc.Move(n.ID, n.Group)
	}
	c.relayout()
	sc.End()

	c.logger.Debug("graph initialized",
		zap.Int("nodes", g.Len()),
		zap.String("state", c.state.Key()),
		zap.Duration("duration", time.Since(start)))
	return c
}

// ToggleGranularity switches between domain and protein granularity.
func (c *Controller) ToggleGranularity() Transition {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transition(c.state.ToggleGranularity())
}

// TogglePredicted shows or hides predicted-only nodes.
func (c *Controller) TogglePredicted() Transition {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transition(c.state.TogglePredicted())
}

// Apply reaches target with at most one toggle of each kind and returns
// the transitions taken.
func (c *Controller) Apply(target view.State) []Transition {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reach(target)
}

// Relayout recomputes every position under the current state.
func (c *Controller) Relayout() layout.Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.scene.Begin()
	defer c.scene.End()
	c.relayout()
	return c.result
}

// State returns the current view state.
func (c *Controller) State() view.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Stats returns the summary computed by the last transition.
func (c *Controller) Stats() stats.Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Layout returns the result of the last layout run.
func (c *Controller) Layout() layout.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Graph returns the controlled graph. Callers must not mutate it.
func (c *Controller) Graph() *network.Graph {
	return c.graph
}

func (c *Controller) transition(next view.State) Transition {
	start := time.Now()
	t := Transition{From: c.state, To: next}

	c.scene.Begin()
	c.state = next
	c.applyVisibility()

	changed := view.Reclassify(c.graph, next)
	for _, n := range changed {
		c.scene.Move(n.ID, n.Group)
		t.Changed = append(t.Changed, n.ID)
	}

	c.relayout()
	c.scene.End()

	t.Duration = time.Since(start)
	c.logger.Debug("view transition",
		zap.String("from", t.From.Key()),
		zap.String("to", t.To.Key()),
		zap.Int("changed", len(t.Changed)),
		zap.Float64("score", c.stats.Score),
		zap.Duration("duration", t.Duration))
	return t
}

// applyVisibility pushes node and edge visibility under the current state.
// An edge is drawn when both endpoints are; protein-only edges are drawn
// only at protein granularity.
func (c *Controller) applyVisibility() {
	for _, n := range c.graph.Nodes() {
		c.scene.SetVisible(n.ID, view.IsVisible(n, c.state))
	}
	for _, e := range c.graph.Edges() {
		c.scene.SetEdgeVisible(e.Key(), c.edgeVisible(e))
	}
}

func (c *Controller) edgeVisible(e network.Edge) bool {
	if e.ProteinOnly && c.state.Granularity != view.GranularityProtein {
		return false
	}
	src, ok1 := c.graph.Node(e.Source)
	tgt, ok2 := c.graph.Node(e.Target)
	return ok1 && ok2 && view.IsVisible(src, c.state) && view.IsVisible(tgt, c.state)
}

// relayout first returns the previous pass's dumped nodes to their own
// group; the layout parents the ones still dumped under the unmatched grid.
func (c *Controller) relayout() {
	for _, id := range c.result.Dumped {
		if n, ok := c.graph.Node(id); ok {
			c.scene.Move(id, n.Group)
		}
	}
	c.result = c.layout.Run(c.graph, c.scene, c.state)
	c.stats = stats.Compute(c.graph, c.state)
}
