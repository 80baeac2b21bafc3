package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/ppaat/internal/network"
	"github.com/matsen/ppaat/internal/storage"
	"github.com/matsen/ppaat/internal/view"
)

var (
	queryView    string
	queryGroup   string
	queryStatus  string
	querySpecies int
	queryName    string
	queryVisible bool
	queryStats   bool
)

func init() {
	queryCmd.Flags().StringVar(&dbFlag, "db", "", "Snapshot cache path (default: project cache or db_path from global config)")
	queryCmd.Flags().StringVar(&queryView, "view", view.Initial().Key(), "View key: pd, pp, vd or vp")
	queryCmd.Flags().StringVar(&queryGroup, "group", "", "Only nodes in this group (e.g. Interologs, \"Unmatched 1\")")
	queryCmd.Flags().StringVar(&queryStatus, "status", "", "Only nodes with this status: matched, unmatched or unmatchable")
	queryCmd.Flags().IntVar(&querySpecies, "species", 0, "Only nodes of this species (1 or 2)")
	queryCmd.Flags().StringVar(&queryName, "name", "", "Only nodes whose name contains this text")
	queryCmd.Flags().BoolVar(&queryVisible, "visible", false, "Only visible nodes")
	queryCmd.Flags().BoolVar(&queryStats, "stats", false, "Print the cached statistics of the view instead of nodes")
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query the snapshot cache",
	Long: `Query node states stored by 'ppaat rebuild'.

View keys combine the predicted toggle (p shown, v validated only) with
the granularity (d domain, p protein): pd is the initial view.

Examples:
  ppaat query --view pd --group Interologs
  ppaat query --view vp --status unmatched --visible --human
  ppaat query --view pp --stats`,
	Args: cobra.NoArgs,
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	db := mustOpenDatabase()
	defer db.Close()

	build, err := db.LatestBuild()
	if errors.Is(err, storage.ErrNoBuild) {
		exitWithError(ExitDataError, "%v", err)
	}
	if err != nil {
		return err
	}

	if queryStats {
		sum, missing, err := db.GetStats(queryView)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if humanOutput {
			outputHuman("%s", sum.Text(network.Meta{}))
			return nil
		}
		return outputJSON(map[string]interface{}{"stats": sum, "missing": missing})
	}

	f := storage.NodeFilter{
		View:        queryView,
		Group:       network.GroupID(queryGroup),
		Species:     network.Species(querySpecies),
		Name:        queryName,
		VisibleOnly: queryVisible,
	}
	if querySpecies != 0 && !f.Species.Valid() {
		exitWithError(ExitError, "invalid species %d: must be 1 or 2", querySpecies)
	}
	if queryStatus != "" {
		st, err := network.ParseMatchStatus(queryStatus)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		f.Status = &st
	}

	rows, err := db.QueryNodes(f)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if !humanOutput {
		if rows == nil {
			rows = []storage.NodeRow{}
		}
		return outputJSON(rows)
	}

	outputHuman("build %s from %s\n\n", build.ID, build.Source)
	for _, r := range rows {
		pos := "-"
		if r.Positioned {
			pos = fmt.Sprintf("(%.0f, %.0f)", r.X, r.Y)
		}
		name := r.Name
		if name == "" {
			name = r.ID
		}
		outputHuman("%-4s %-20s %-22s %-14s %s\n", r.View, truncateString(name, 20), formatStatus(r.Status), r.Group, pos)
	}
	if len(rows) == 0 {
		outputHuman("No matching nodes.\n")
	}
	return nil
}
