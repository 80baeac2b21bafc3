// Package main provides the ppaat CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matsen/ppaat/internal/config"
	"github.com/matsen/ppaat/internal/logging"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	verbose     bool

	globalCfg *config.GlobalConfig
	logger    = zap.NewNop()
)

func main() {
	err := rootCmd.Execute()
	logger.Sync()
	if err != nil {
		// SilenceErrors is set, so Cobra errors (like missing arguments) are printed here
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ppaat",
	Short: "Protein-protein interaction alignment viewer",
	Long: `ppaat lays out an interolog graph: the interaction partners of two query
proteins from two species, arranged so that cross-species partner pairs
(interologs) line up side by side.

Every graph has four views, from two toggles:
  granularity  domain (partners around the domains they bind) or protein
  predicted    show or hide predicted interactions

All commands output JSON by default for easy integration with other tools.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log pipeline transitions to stderr")
	rootCmd.Version = Version
}

// setup loads .env and the global config, then builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading global config: %v", err)
	}
	globalCfg = cfg

	l, err := logging.New(cfg.LogLevel, verbose)
	if err != nil {
		exitWithError(ExitConfigError, "configuring logging: %v", err)
	}
	logger = l
	return nil
}
