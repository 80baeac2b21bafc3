package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matsen/ppaat/internal/layout"
)

// GlobalConfig represents configuration stored in ~/.config/ppaat/config.yml.
// A config.toml in the same place, or any PPAAT_CONFIG path ending in .toml,
// is read as TOML instead.
type GlobalConfig struct {
	LogLevel        string        `yaml:"log_level,omitempty" toml:"log_level,omitempty"`
	DefaultDocument string        `yaml:"default_document,omitempty" toml:"default_document,omitempty"`
	DBPath          string        `yaml:"db_path,omitempty" toml:"db_path,omitempty"`
	Colors          Colors        `yaml:"colors" toml:"colors"`
	Layout          layout.Config `yaml:"layout" toml:"layout"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "ppaat"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
	// GlobalConfigTOML is read when GlobalConfigFile is absent.
	GlobalConfigTOML = "config.toml"

	// EnvConfig overrides the global config path.
	EnvConfig = "PPAAT_CONFIG"
	// EnvLogLevel overrides log_level.
	EnvLogLevel = "PPAAT_LOG_LEVEL"
)

// LogLevels lists the accepted log_level values.
var LogLevels = []string{"debug", "info", "warn", "error"}

// ErrUnknownKey is returned by Get and Set for keys the config lacks.
var ErrUnknownKey = errors.New("unknown config key")

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// DefaultGlobalConfig returns the configuration used when no file exists.
func DefaultGlobalConfig() GlobalConfig {
	return GlobalConfig{
		LogLevel: "info",
		Colors:   DefaultColors(),
		Layout:   layout.DefaultConfig(),
	}
}

// GlobalConfigPath returns the path to the global config file.
// PPAAT_CONFIG wins; otherwise XDG_CONFIG_HOME is respected, defaulting to
// ~/.config/ppaat/config.yml. If only config.toml exists there, its path is
// returned.
func GlobalConfigPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return ExpandPath(p)
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	dir := filepath.Join(configHome, GlobalConfigDir)
	yml := filepath.Join(dir, GlobalConfigFile)
	if tml := filepath.Join(dir, GlobalConfigTOML); !fileExists(yml) && fileExists(tml) {
		return tml
	}
	return yml
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// LoadGlobalConfig loads the global configuration file.
// Returns the defaults (not an error) if the file doesn't exist. Keys
// missing from the file keep their default values.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	cfg, err := ReadGlobalConfigFile(path)
	if err != nil {
		return nil, err
	}

	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		cfg.LogLevel = lvl
	}
	cfg.DefaultDocument = ExpandPath(cfg.DefaultDocument)
	cfg.DBPath = ExpandPath(cfg.DBPath)
	cfg.Colors = cfg.Colors.Merge(DefaultColors())

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid global config %s: %w", path, err)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ReadGlobalConfigFile decodes the file at path over the defaults, exactly
// as stored: no environment overrides, no path expansion and no caching.
// A missing file (or empty path) yields the defaults. Edits that are saved
// back start from here.
func ReadGlobalConfigFile(path string) (GlobalConfig, error) {
	cfg := DefaultGlobalConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(path, data, &cfg); err != nil {
			return cfg, err
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading global config: %w", err)
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *GlobalConfig) error {
	if isTOML(path) {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("parsing global config: %w", err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing global config: %w", err)
	}
	return nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// Validate checks the log level, colours and layout spacing.
func (c *GlobalConfig) Validate() error {
	if err := ValidateLogLevel(c.LogLevel); err != nil {
		return err
	}
	if err := c.Colors.Validate(); err != nil {
		return err
	}
	return c.Layout.Validate()
}

// ValidateLogLevel checks that level is one of LogLevels.
func ValidateLogLevel(level string) error {
	for _, valid := range LogLevels {
		if level == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid log_level: %s (valid: %v)", level, LogLevels)
}

// Save writes c to path, as TOML if path ends in .toml and YAML otherwise.
func (c *GlobalConfig) Save(path string) error {
	var buf bytes.Buffer
	if isTOML(path) {
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return fmt.Errorf("encoding global config: %w", err)
		}
	} else {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("encoding global config: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding global config: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing global config: %w", err)
	}
	return nil
}

// stringFields returns the string-valued keys of c.
func (c *GlobalConfig) stringFields() map[string]*string {
	return map[string]*string{
		"log_level":        &c.LogLevel,
		"default_document": &c.DefaultDocument,
		"db_path":          &c.DBPath,
		"colors.species1":  &c.Colors.Species1,
		"colors.species2":  &c.Colors.Species2,
		"colors.domain":    &c.Colors.Domain,
	}
}

// Keys lists every settable key, sorted.
func (c *GlobalConfig) Keys() []string {
	var keys []string
	for k := range c.stringFields() {
		keys = append(keys, k)
	}
	for k := range c.Layout.Fields() {
		keys = append(keys, "layout."+k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of key as text.
func (c *GlobalConfig) Get(key string) (string, error) {
	if p, ok := c.stringFields()[key]; ok {
		return *p, nil
	}
	if name, ok := strings.CutPrefix(key, "layout."); ok {
		if p, ok := c.Layout.Fields()[name]; ok {
			return strconv.FormatFloat(*p, 'g', -1, 64), nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// Set parses value into key and revalidates the config. On error c is
// left unchanged.
func (c *GlobalConfig) Set(key, value string) error {
	next := *c
	if p, ok := next.stringFields()[key]; ok {
		*p = value
	} else if name, ok := strings.CutPrefix(key, "layout."); ok {
		p, ok := next.Layout.Fields()[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s must be a number: %w", key, err)
		}
		*p = v
	} else {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}
