package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matsen/ppaat/internal/config"
)

var initDocument string

func init() {
	initCmd.Flags().StringVar(&initDocument, "document", "", "Graph document drawn by default, relative to the project root")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a ppaat project in the current directory",
	Long: `Initialize a ppaat project in the current directory.

Creates:
  .ppaat/
  ├── config.json     # Default document and colour overrides
  └── cache/          # Snapshot cache (gitignored)`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	if config.IsProject(root) {
		exitWithError(ExitError, "directory already contains a ppaat project")
	}

	cfg := &config.Config{Document: initDocument}
	if err := cfg.Save(root); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if err := os.MkdirAll(filepath.Join(config.ProjectPath(root), config.CacheDir), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}

	if humanOutput {
		outputHuman("Initialized ppaat project in %s\n", config.ProjectPath(root))
		return nil
	}
	return outputJSON(StatusResponse{Status: "initialized", Path: config.ProjectPath(root)})
}
