package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/matsen/ppaat/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set global configuration values",
	Long: `Get or set values in the global config (~/.config/ppaat/config.yml, or
the file named by PPAAT_CONFIG).

Usage:
  ppaat config                            # Show all config
  ppaat config layout.x_sep               # Get specific value
  ppaat config layout.x_sep 40            # Set value
  ppaat config colors.species1 '#ff00ff'  # Set a node colour

Keys:
  log_level          debug, info, warn or error
  default_document   Graph document used when none is given
  db_path            Snapshot cache used outside a project
  colors.*           species1, species2 and domain fill colours (#rrggbb)
  layout.*           Layout spacing constants`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

// ConfigEntry is one key of the config listing.
type ConfigEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := *globalCfg

	// No args: show all config
	if len(args) == 0 {
		var entries []ConfigEntry
		for _, k := range cfg.Keys() {
			v, _ := cfg.Get(k)
			entries = append(entries, ConfigEntry{Key: k, Value: v})
		}
		if !humanOutput {
			return outputJSON(entries)
		}
		outputHuman("# %s\n", config.GlobalConfigPath())
		for _, e := range entries {
			outputHuman("%-30s %s\n", e.Key, e.Value)
		}
		return nil
	}

	key := args[0]

	// One arg: get specific value
	if len(args) == 1 {
		v, err := cfg.Get(key)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if humanOutput {
			outputHuman("%s\n", v)
			return nil
		}
		return outputJSON(ConfigEntry{Key: key, Value: v})
	}

	// Two args: set value on the stored file, not the effective config
	path := config.GlobalConfigPath()
	stored, err := config.ReadGlobalConfigFile(path)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	if err := stored.Set(key, args[1]); err != nil {
		if errors.Is(err, config.ErrUnknownKey) {
			exitWithError(ExitError, "%v", err)
		}
		exitWithError(ExitConfigError, "%v", err)
	}
	if err := stored.Save(path); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}
	config.ResetGlobalConfigCache()

	if humanOutput {
		outputHuman("Set %s = %s in %s\n", key, args[1], path)
		return nil
	}
	return outputJSON(UpdateResponse{Status: "updated", Key: key, Value: args[1]})
}
