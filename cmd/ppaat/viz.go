package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/ppaat/internal/config"
	"github.com/matsen/ppaat/internal/viz"
)

var vizOutput string

func init() {
	vizCmd.Flags().StringVarP(&vizOutput, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.AddCommand(vizCmd)
}

var vizCmd = &cobra.Command{
	Use:   "viz [document]",
	Short: "Generate an interactive HTML viewer",
	Long: `Generate a self-contained HTML page showing the interolog graph.

All four views are laid out ahead of time; buttons on the page switch
between domain and protein granularity and show or hide predicted
interactions. Node colours come from the colors section of the global
config, overridden by the project config.

Examples:
  # Generate HTML to stdout
  ppaat viz graph.json > graph.html

  # Generate to file
  ppaat viz graph.json --output graph.html`,
	Args: cobra.MaximumNArgs(1),
	RunE: runViz,
}

func runViz(cmd *cobra.Command, args []string) error {
	g, _ := mustLoadGraph(args)
	c := newController(g)

	snaps, err := c.Views()
	if err != nil {
		return fmt.Errorf("rendering views: %w", err)
	}

	html, err := viz.GenerateHTML(viz.BuildGraph(g, snaps), viz.HTMLOptions{Colors: pageColors()})
	if err != nil {
		return fmt.Errorf("generating HTML: %w", err)
	}

	if vizOutput == "" {
		fmt.Print(html)
		return nil
	}
	if err := os.WriteFile(vizOutput, []byte(html), 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	if humanOutput {
		outputHuman("Visualization written to %s\n", vizOutput)
	} else {
		outputJSON(StatusResponse{Status: "written", Path: vizOutput})
	}
	return nil
}

// pageColors layers the project colours over the global ones.
func pageColors() config.Colors {
	colors := config.DefaultColors()
	if globalCfg != nil {
		colors = globalCfg.Colors.Merge(colors)
	}
	if cfg, _ := mustLoadProjectConfig(); cfg != nil && cfg.Colors != nil {
		colors = cfg.Colors.Merge(colors)
	}
	return colors
}
