package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/ppaat/internal/stats"
)

func init() {
	addViewFlags(missingCmd)
	rootCmd.AddCommand(missingCmd)
}

var missingCmd = &cobra.Command{
	Use:   "missing [document]",
	Short: "List predicted interactors that are not shown",
	Long: `List, per species, the declared partners that are not visible in one
view, with the visible neighbours that indicate each of them. Entries are
ordered by indicator count, most indicated first.

Examples:
  ppaat missing graph.json --granularity protein
  ppaat missing graph.json --human`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMissing,
}

func runMissing(cmd *cobra.Command, args []string) error {
	c, _ := mustReachView(args)
	reports := stats.Missing(c.Graph(), c.State())

	if !humanOutput {
		return outputJSON(reports)
	}

	meta := c.Graph().Meta
	for _, r := range reports {
		outputHuman("%s\n", meta.SpeciesName(r.Species))
		if len(r.Entries) == 0 {
			outputHuman("  (none)\n")
			continue
		}
		for _, e := range r.Entries {
			name := e.Name
			if !e.Resolved {
				name += " (not in document)"
			}
			outputHuman("  %3d  %s: %s\n", e.Count, name, strings.Join(e.Indicators, ", "))
		}
	}
	return nil
}
