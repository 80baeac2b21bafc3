package network

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Element is one entry of a Cytoscape.js elements document.
type Element struct {
	Group    string      `json:"group,omitempty"`
	Data     ElementData `json:"data"`
	Classes  string      `json:"classes,omitempty"`
	Position *Position   `json:"position,omitempty"`
}

// Position is a preset coordinate carried by an element.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ElementData holds the data fields of nodes, edges and metadata carriers.
type ElementData struct {
	ID            string   `json:"id,omitempty"`
	Name          string   `json:"name,omitempty"`
	Parent        string   `json:"parent,omitempty"`
	Partners      []string `json:"partners,omitempty"`
	Source        string   `json:"source,omitempty"`
	Target        string   `json:"target,omitempty"`
	Length        int      `json:"length,omitempty"`
	NumNeighbours int      `json:"num_neighbours,omitempty"`

	// Present on the hidden stats carrier node only.
	Species1 string `json:"species1,omitempty"`
	Species2 string `json:"species2,omitempty"`
	Protein1 string `json:"protein1,omitempty"`
	Protein2 string `json:"protein2,omitempty"`
}

// Element groups.
const (
	GroupNodes = "nodes"
	GroupEdges = "edges"
)

// kind infers the element group when the document omits it.
func (e *Element) kind() string {
	if e.Group != "" {
		return e.Group
	}
	if e.Data.Source != "" || e.Data.Target != "" {
		return GroupEdges
	}
	return GroupNodes
}

// classSet splits a Cytoscape class string.
func classSet(classes string) map[string]bool {
	set := make(map[string]bool)
	for _, c := range strings.Fields(classes) {
		set[c] = true
	}
	return set
}

// objectDocument is the {"elements": [...]} or {"nodes": [...], "edges": [...]} form.
type objectDocument struct {
	Elements []Element `json:"elements"`
	Nodes    []Element `json:"nodes"`
	Edges    []Element `json:"edges"`
}

// Decode reads a graph document. It accepts a JSON array of elements, a
// Cytoscape object document, or a stream of one element per line.
func Decode(r io.Reader) ([]Element, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrMalformedDocument)
	}

	if data[0] == '[' {
		var els []Element
		if err := json.Unmarshal(data, &els); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
		}
		return els, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	var first json.RawMessage
	if err := dec.Decode(&first); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if !dec.More() {
		var doc objectDocument
		if err := json.Unmarshal(first, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
		}
		if doc.Elements != nil || doc.Nodes != nil || doc.Edges != nil {
			els := append(doc.Elements, doc.Nodes...)
			for _, e := range doc.Edges {
				if e.Group == "" {
					e.Group = GroupEdges
				}
				els = append(els, e)
			}
			return els, nil
		}
	}

	// Element stream
	var els []Element
	var el Element
	if err := json.Unmarshal(first, &el); err != nil {
		return nil, fmt.Errorf("%w: element 1: %v", ErrMalformedDocument, err)
	}
	els = append(els, el)
	for dec.More() {
		var next Element
		if err := dec.Decode(&next); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrMalformedDocument, len(els)+1, err)
		}
		els = append(els, next)
	}
	return els, nil
}

// Load decodes and builds a graph in one step.
func Load(r io.Reader) (*Graph, error) {
	els, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return Build(els)
}

// Build constructs a graph from decoded elements. Any invalid element
// aborts the build; no partial graph is returned.
func Build(els []Element) (*Graph, error) {
	g := New()
	skipped := make(map[string]bool)
	v := newValidator()

	for i := range els {
		el := &els[i]
		if el.kind() != GroupNodes {
			continue
		}
		classes := classSet(el.Classes)
		if classes["container"] || classes["hidden"] {
			skipped[el.Data.ID] = true
			if el.Data.Species1 != "" && g.Meta.Species1Name == "" {
				g.Meta = Meta{
					Species1Name: el.Data.Species1,
					Species2Name: el.Data.Species2,
					Protein1:     el.Data.Protein1,
					Protein2:     el.Data.Protein2,
				}
			}
			continue
		}

		n, err := nodeFromElement(el, classes)
		if err == nil {
			err = v.node(n)
		}
		if err == nil {
			err = g.AddNode(n)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: element %d: %w", ErrMalformedDocument, i, err)
		}
	}

	for i := range els {
		el := &els[i]
		switch el.kind() {
		case GroupNodes:
			continue
		case GroupEdges:
		default:
			return nil, fmt.Errorf("%w: element %d: unknown group %q", ErrMalformedDocument, i, el.Group)
		}
		if skipped[el.Data.Source] || skipped[el.Data.Target] {
			continue
		}
		e := edgeFromElement(el)
		err := v.edge(e)
		if err == nil {
			err = g.AddEdge(e)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: element %d: %w", ErrMalformedDocument, i, err)
		}
	}

	return g, nil
}

func nodeFromElement(el *Element, classes map[string]bool) (*Node, error) {
	n := &Node{
		ID:            el.Data.ID,
		Name:          el.Data.Name,
		Partners:      el.Data.Partners,
		Length:        el.Data.Length,
		NumNeighbours: el.Data.NumNeighbours,
	}

	switch {
	case classes["species1"]:
		n.Species = Species1
	case classes["species2"]:
		n.Species = Species2
	}

	switch {
	case classes["queryProtein"]:
		n.Role = RoleQuery
	case classes["domain"]:
		n.Role = RoleAnchor
		n.Level = LevelDomain
	case classes["terminus"]:
		n.Role = RoleTerminus
		n.Level = LevelDomain
		n.Terminus = terminusKind(el.Data.ID, classes)
	default:
		n.Role = RoleTarget
		if classes["protein-target"] {
			n.Level |= LevelProtein
		}
		if classes["domain-target"] {
			n.Level |= LevelDomain
		}
		if n.Level == 0 {
			n.Level = LevelProtein
		}
	}

	if classes["predicted"] && !classes["validated"] {
		n.Evidence = EvidencePredicted
	}
	if classes["unmatchable"] {
		n.ForceUnmatchable = true
	}
	if n.Role == RoleTerminus && n.Terminus == TerminusNone {
		return nil, fmt.Errorf("%w: %s", ErrMissingTerminus, n.ID)
	}
	return n, nil
}

func terminusKind(id string, classes map[string]bool) Terminus {
	lower := strings.ToLower(id)
	switch {
	case classes["n-terminus"], strings.HasPrefix(lower, "n-term"):
		return TerminusN
	case classes["c-terminus"], strings.HasPrefix(lower, "c-term"):
		return TerminusC
	}
	return TerminusNone
}

func edgeFromElement(el *Element) Edge {
	classes := classSet(el.Classes)
	e := Edge{
		Source:      el.Data.Source,
		Target:      el.Data.Target,
		ProteinOnly: classes["no-domain-show"],
	}
	switch {
	case classes["orthology"]:
		e.Kind = KindOrthology
	case classes["protein_sequence"]:
		e.Kind = KindSequence
	}
	return e
}

// IsMalformed reports whether err came from an invalid document.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedDocument)
}
