package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matsen/ppaat/internal/config"
	"github.com/matsen/ppaat/internal/engine"
	"github.com/matsen/ppaat/internal/network"
	"github.com/matsen/ppaat/internal/scene"
	"github.com/matsen/ppaat/internal/view"
)

// View selection flags shared by the per-view commands.
var (
	viewGranularity string
	viewPredicted   bool
)

func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&viewGranularity, "granularity", "domain", "View granularity: domain or protein")
	cmd.Flags().BoolVar(&viewPredicted, "predicted", true, "Show predicted interactions")
}

// mustViewState parses the view flags, exits on error.
func mustViewState() view.State {
	g, err := view.ParseGranularity(viewGranularity)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	return view.State{Granularity: g, ShowPredicted: viewPredicted}
}

// findProject returns the enclosing project root, or "" outside a project.
func findProject() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	root, err := config.FindProject(cwd)
	if err != nil {
		return ""
	}
	return root
}

// mustLoadProjectConfig loads the project config, or returns nil outside a project.
func mustLoadProjectConfig() (*config.Config, string) {
	root := findProject()
	if root == "" {
		return nil, ""
	}
	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg, root
}

// resolveDocument picks the graph document: the argument if given, then
// the project config, then the global default.
func resolveDocument(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if cfg, root := mustLoadProjectConfig(); cfg != nil && cfg.Document != "" {
		if filepath.IsAbs(cfg.Document) {
			return cfg.Document
		}
		return filepath.Join(root, cfg.Document)
	}
	if globalCfg != nil && globalCfg.DefaultDocument != "" {
		return globalCfg.DefaultDocument
	}
	exitWithError(ExitConfigError, "no graph document given\n\nPass one as an argument or set document in %s/%s.", config.ProjectDir, config.ConfigFile)
	return ""
}

// mustLoadGraph reads and validates the graph document, exits on error.
func mustLoadGraph(args []string) (*network.Graph, string) {
	path := resolveDocument(args)
	f, err := os.Open(path)
	if err != nil {
		exitWithError(ExitError, "opening document: %v", err)
	}
	defer f.Close()

	g, err := network.Load(f)
	if err != nil {
		if network.IsMalformed(err) {
			exitWithError(ExitDataError, "%s: %v", path, err)
		}
		exitWithError(ExitError, "reading %s: %v", path, err)
	}
	logger.Debug("loaded document", zap.String("path", path), zap.Int("nodes", g.Len()))
	return g, path
}

// newController starts the pipeline on g with the configured layout.
func newController(g *network.Graph) *engine.Controller {
	opts := []engine.Option{engine.WithLogger(logger)}
	if globalCfg != nil {
		opts = append(opts, engine.WithLayout(globalCfg.Layout))
	}
	return engine.NewController(g, scene.NewMemory(), opts...)
}

// mustReachView loads the document and drives the pipeline from the
// initial state to the requested view.
func mustReachView(args []string) (*engine.Controller, string) {
	g, path := mustLoadGraph(args)
	c := newController(g)
	c.Apply(mustViewState())
	return c, path
}
