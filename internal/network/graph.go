package network

import (
	"errors"
	"fmt"
	"sort"
)

// Graph construction errors.
var (
	ErrEmptyNodeID       = errors.New("node id is required")
	ErrDuplicateNode     = errors.New("duplicate node id")
	ErrUnknownEndpoint   = errors.New("edge endpoint not found")
	ErrInvalidSpecies    = errors.New("species must be 1 or 2")
	ErrSelfEdge          = errors.New("edge source and target cannot be the same")
	ErrMissingTerminus   = errors.New("terminus must be marked n-terminus or c-terminus")
	ErrMalformedDocument = errors.New("malformed graph document")
)

// Graph is an arena of nodes indexed by id plus the edges between them.
// Nodes keep their load order so every traversal is reproducible.
type Graph struct {
	Meta Meta

	nodes map[string]*Node
	order []*Node
	edges []Edge
	adj   map[string][]string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		adj:   make(map[string][]string),
	}
}

// AddNode inserts n. Ids must be unique and the species known.
func (g *Graph) AddNode(n *Node) error {
	if n.ID == "" {
		return ErrEmptyNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNode, n.ID)
	}
	if !n.Species.Valid() {
		return fmt.Errorf("%w: node %s has species %d", ErrInvalidSpecies, n.ID, n.Species)
	}
	if n.Role == RoleTerminus && n.Terminus == TerminusNone {
		return fmt.Errorf("%w: %s", ErrMissingTerminus, n.ID)
	}
	if n.Name == "" {
		n.Name = n.ID
	}
	g.nodes[n.ID] = n
	g.order = append(g.order, n)
	return nil
}

// AddEdge inserts e. Both endpoints must already be present.
func (g *Graph) AddEdge(e Edge) error {
	if e.Source == e.Target {
		return fmt.Errorf("%w: %s", ErrSelfEdge, e.Source)
	}
	if _, ok := g.nodes[e.Source]; !ok {
		return fmt.Errorf("%w: source %s", ErrUnknownEndpoint, e.Source)
	}
	if _, ok := g.nodes[e.Target]; !ok {
		return fmt.Errorf("%w: target %s", ErrUnknownEndpoint, e.Target)
	}
	g.edges = append(g.edges, e)
	g.link(e.Source, e.Target)
	g.link(e.Target, e.Source)
	return nil
}

func (g *Graph) link(from, to string) {
	for _, id := range g.adj[from] {
		if id == to {
			return
		}
	}
	g.adj[from] = append(g.adj[from], to)
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns every node in load order.
func (g *Graph) Nodes() []*Node {
	return g.order
}

// Edges returns every edge in load order.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.order)
}

// Filter returns the nodes matching pred, in load order.
func (g *Graph) Filter(pred func(*Node) bool) []*Node {
	var out []*Node
	for _, n := range g.order {
		if pred(n) {
			out = append(out, n)
		}
	}
	return out
}

// Neighbours returns the nodes sharing an edge with id, in edge order.
func (g *Graph) Neighbours(id string) []*Node {
	ids := g.adj[id]
	out := make([]*Node, 0, len(ids))
	for _, nid := range ids {
		out = append(out, g.nodes[nid])
	}
	return out
}

// Partners resolves the declared partner ids of n. Dangling ids are skipped.
func (g *Graph) Partners(n *Node) []*Node {
	out := make([]*Node, 0, len(n.Partners))
	for _, id := range n.Partners {
		if p, ok := g.nodes[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Dangling maps each node id to the partner ids it declares that are not
// present in the graph. Nodes without dangling partners are omitted.
func (g *Graph) Dangling() map[string][]string {
	out := make(map[string][]string)
	for _, n := range g.order {
		for _, id := range n.Partners {
			if _, ok := g.nodes[id]; !ok {
				out[n.ID] = append(out[n.ID], id)
			}
		}
	}
	return out
}

// SortByName orders nodes by display name, breaking ties by id.
func SortByName(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return LessByName(nodes[i], nodes[j])
	})
}

// LessByName is the display-name comparator used by every layout bucket.
func LessByName(a, b *Node) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.ID < b.ID
}
