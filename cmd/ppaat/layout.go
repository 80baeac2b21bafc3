package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/ppaat/internal/engine"
	"github.com/matsen/ppaat/internal/layout"
)

func init() {
	addViewFlags(layoutCmd)
	layoutCmd.Flags().BoolVar(&layoutAll, "all", false, "Include hidden nodes")
	rootCmd.AddCommand(layoutCmd)
}

var layoutAll bool

var layoutCmd = &cobra.Command{
	Use:   "layout [document]",
	Short: "Lay out one view of a graph",
	Long: `Lay out one view of an interolog graph and print each node's status,
group and position.

The graph starts in the domain view with predicted interactions shown;
the flags select which view to print.

Examples:
  ppaat layout graph.json
  ppaat layout graph.json --granularity protein --predicted=false
  ppaat layout --human`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLayout,
}

// LayoutResponse is the response for the layout command.
type LayoutResponse struct {
	View   string             `json:"view"`
	Nodes  []engine.NodeState `json:"nodes"`
	Layout layout.Result      `json:"layout"`
}

func runLayout(cmd *cobra.Command, args []string) error {
	c, _ := mustReachView(args)
	snap, err := c.Snapshot()
	if err != nil {
		return fmt.Errorf("reading layout: %w", err)
	}

	nodes := snap.Nodes
	if !layoutAll {
		nodes = nil
		for _, n := range snap.Nodes {
			if n.Visible {
				nodes = append(nodes, n)
			}
		}
	}

	if !humanOutput {
		return outputJSON(LayoutResponse{View: snap.View, Nodes: nodes, Layout: snap.Layout})
	}

	outputHuman("%s (%s)\n\n", snap.State, snap.View)
	for _, n := range nodes {
		pos := "-"
		if n.Positioned {
			pos = fmt.Sprintf("(%.0f, %.0f)", n.Position.X, n.Position.Y)
		}
		name := n.Name
		if name == "" {
			name = n.ID
		}
		outputHuman("%-20s %-12s %-22s %-14s %s\n",
			truncateString(name, 20), n.Species, formatStatus(n.Status), n.Group, pos)
	}
	return nil
}
