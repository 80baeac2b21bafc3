package main

import (
	"github.com/spf13/cobra"
)

func init() {
	addViewFlags(statsCmd)
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats [document]",
	Short: "Summarize interolog coverage in one view",
	Long: `Count matched, unmatched and unmatchable neighbours per species and
the share of possible interologs that are found, for one view of the graph.

Examples:
  ppaat stats graph.json
  ppaat stats graph.json --predicted=false --human`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	c, _ := mustReachView(args)
	sum := c.Stats()

	if humanOutput {
		outputHuman("%s", sum.Text(c.Graph().Meta))
		return nil
	}
	return outputJSON(sum)
}
