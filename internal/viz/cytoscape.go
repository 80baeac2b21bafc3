package viz

import (
	"encoding/json"
	"fmt"
)

// CytoscapeElements represents the Cytoscape.js data format.
type CytoscapeElements struct {
	Nodes []CytoscapeNode `json:"nodes"`
	Edges []CytoscapeEdge `json:"edges"`
}

// CytoscapeNode represents a node in Cytoscape.js format.
type CytoscapeNode struct {
	Data    Node   `json:"data"`
	Classes string `json:"classes,omitempty"`
}

// CytoscapeEdge represents an edge in Cytoscape.js format.
type CytoscapeEdge struct {
	Data CytoscapeEdgeData `json:"data"`
}

// CytoscapeEdgeData contains the edge data fields.
type CytoscapeEdgeData struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Kind   string `json:"kind"`
}

// ToCytoscapeJSON converts GraphData to Cytoscape.js JSON format. Group
// containers come first so that children can be moved into them.
func (g *GraphData) ToCytoscapeJSON() (string, error) {
	elements := CytoscapeElements{
		Nodes: make([]CytoscapeNode, 0, len(g.Nodes)),
		Edges: make([]CytoscapeEdge, 0, len(g.Edges)),
	}

	for _, n := range g.Nodes {
		if n.Type == NodeTypeGroup {
			elements.Nodes = append(elements.Nodes, CytoscapeNode{Data: n, Classes: NodeTypeGroup})
		}
	}
	for _, n := range g.Nodes {
		if n.Type == NodeTypeGroup {
			continue
		}
		cy := CytoscapeNode{Data: n}
		if n.Predicted {
			cy.Classes = "predicted"
		}
		elements.Nodes = append(elements.Nodes, cy)
	}

	for _, e := range g.Edges {
		elements.Edges = append(elements.Edges, CytoscapeEdge{
			Data: CytoscapeEdgeData{
				ID:     edgeID(e),
				Source: e.Source,
				Target: e.Target,
				Kind:   e.Kind,
			},
		})
	}

	jsonBytes, err := json.Marshal(elements)
	if err != nil {
		return "", fmt.Errorf("marshaling Cytoscape elements to JSON: %w", err)
	}
	return string(jsonBytes), nil
}

// edgeID matches the edge keys recorded in snapshots.
func edgeID(e Edge) string {
	return e.Source + "|" + e.Target + "|" + e.Kind
}

// groupID namespaces group containers away from node ids.
func groupID(g string) string {
	return "group:" + g
}
