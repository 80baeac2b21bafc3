// Package config handles project and global configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// Config represents project configuration stored in .ppaat/config.json.
type Config struct {
	Document string  `json:"document,omitempty"` // Graph document drawn by default
	Colors   *Colors `json:"colors,omitempty"`   // Overrides the global colours
}

const (
	ProjectDir = ".ppaat"
	ConfigFile = "config.json"
	CacheDir   = "cache"
	DBFile     = "views.db"
)

// ProjectPath returns the path to the .ppaat directory from a root path.
func ProjectPath(root string) string {
	return filepath.Join(root, ProjectDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, ProjectDir, ConfigFile)
}

// DBPath returns the path to the snapshot cache from a root path.
func DBPath(root string) string {
	return filepath.Join(root, ProjectDir, CacheDir, DBFile)
}

// IsProject checks if the given path contains a .ppaat directory.
func IsProject(root string) bool {
	info, err := os.Stat(ProjectPath(root))
	return err == nil && info.IsDir()
}

// FindProject walks up from the given path to find a project root.
func FindProject(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsProject(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a ppaat project (no %s directory found)", ProjectDir)
		}
		abs = parent
	}
}

// Load reads configuration from the project at the given root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Colors != nil {
		if err := cfg.Colors.Validate(); err != nil {
			return nil, err
		}
	}
	cfg.Document = ExpandPath(cfg.Document)

	return &cfg, nil
}

// Save writes configuration to the project at the given root, creating the
// .ppaat directory if needed.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(ProjectPath(root), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", ProjectDir, err)
	}
	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Colors holds the node fill colours of the exported page.
type Colors struct {
	Species1 string `json:"species1" yaml:"species1" toml:"species1"`
	Species2 string `json:"species2" yaml:"species2" toml:"species2"`
	Domain   string `json:"domain" yaml:"domain" toml:"domain"`
}

// DefaultColors returns the standard palette.
func DefaultColors() Colors {
	return Colors{Species1: "#EDA1ED", Species2: "#6FB1FC", Domain: "#18E018"}
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor checks that s is a #rgb or #rrggbb colour.
func ValidateColor(s string) error {
	if !hexColor.MatchString(s) {
		return fmt.Errorf("invalid colour %q: want #rgb or #rrggbb", s)
	}
	return nil
}

// Validate checks every colour. Empty colours inherit and are accepted.
func (c Colors) Validate() error {
	for _, v := range []string{c.Species1, c.Species2, c.Domain} {
		if v == "" {
			continue
		}
		if err := ValidateColor(v); err != nil {
			return err
		}
	}
	return nil
}

// Merge returns c with every empty colour filled from base.
func (c Colors) Merge(base Colors) Colors {
	if c.Species1 == "" {
		c.Species1 = base.Species1
	}
	if c.Species2 == "" {
		c.Species2 = base.Species2
	}
	if c.Domain == "" {
		c.Domain = base.Domain
	}
	return c
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
