package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/ppaat/internal/config"
	"github.com/matsen/ppaat/internal/storage"
)

var (
	dbFlag      string
	rebuildFrom string
)

func init() {
	rebuildCmd.Flags().StringVar(&dbFlag, "db", "", "Snapshot cache path (default: project cache or db_path from global config)")
	rebuildCmd.Flags().StringVar(&rebuildFrom, "from", "", "Load snapshots from a JSONL file instead of a document")
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild [document]",
	Short: "Rebuild the snapshot cache",
	Long: `Render all four views of a graph and store them in the SQLite snapshot
cache used by 'ppaat query'. Any previous contents are replaced.

Examples:
  ppaat rebuild graph.json --db views.db
  ppaat rebuild --from views.jsonl`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRebuild,
}

// mustResolveDB picks the cache path: the --db flag, then the project
// cache, then the global config.
func mustResolveDB() string {
	if dbFlag != "" {
		return config.ExpandPath(dbFlag)
	}
	if root := findProject(); root != "" {
		return config.DBPath(root)
	}
	if globalCfg != nil && globalCfg.DBPath != "" {
		return globalCfg.DBPath
	}
	exitWithError(ExitConfigError, "no snapshot cache given\n\nPass --db, run inside a ppaat project, or set db_path with 'ppaat config db_path PATH'.")
	return ""
}

// mustOpenDatabase opens the snapshot cache, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenDatabase() *storage.DB {
	db, err := storage.OpenDB(mustResolveDB())
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return db
}

func runRebuild(cmd *cobra.Command, args []string) error {
	db := mustOpenDatabase()
	defer db.Close()

	var (
		build *storage.Build
		err   error
	)
	if rebuildFrom != "" {
		build, err = db.RebuildFromJSONL(rebuildFrom)
		if err != nil {
			exitWithError(ExitDataError, "rebuilding snapshot cache: %v", err)
		}
	} else {
		g, path := mustLoadGraph(args)
		snaps, err := newController(g).Views()
		if err != nil {
			return fmt.Errorf("rendering views: %w", err)
		}
		build, err = db.RebuildFromSnapshots(path, snaps)
		if err != nil {
			exitWithError(ExitError, "rebuilding snapshot cache: %v", err)
		}
	}

	if humanOutput {
		outputHuman("Rebuilt snapshot cache with %d views and %d node states (build %s)\n", build.Views, build.Nodes, build.ID)
		return nil
	}
	return outputJSON(build)
}
