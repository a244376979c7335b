// Package config loads the prefs application configuration from
// ~/.config/prefs/prefs.toml and applies command-line overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
)

// DefaultSectionKey is the document property holding the settings tree.
const DefaultSectionKey = "Preferences"

// Config is the application configuration.
type Config struct {
	// ConfigFile is the JSON document holding the preferences property.
	ConfigFile string `toml:"config_file"`
	// SectionKey is the property name of the settings tree inside ConfigFile.
	SectionKey string `toml:"section_key"`
	// Catalog is an optional YAML, TOML or JSON display-name catalog.
	Catalog  string `toml:"catalog,omitempty"`
	LogLevel string `toml:"log_level"`
	// LogFile receives log output. Empty means stderr.
	LogFile string `toml:"log_file,omitempty"`
	// Plain forces the line-oriented interface even on a terminal.
	Plain bool `toml:"plain"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ConfigFile: filepath.Join(Dir(), "settings.json"),
		SectionKey: DefaultSectionKey,
		LogLevel:   "warn",
	}
}

// Dir returns the prefs config directory, honouring XDG_CONFIG_HOME.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "prefs")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "prefs")
}

// DefaultPath returns the default application config file path.
func DefaultPath() string {
	return filepath.Join(Dir(), "prefs.toml")
}

// Load reads the configuration at path on top of the defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	path = ExpandPath(path)
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal TOML: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// Flag names shared by the CLI.
const (
	FlagConfigFile = "file"
	FlagSectionKey = "key"
	FlagCatalog    = "catalog"
	FlagLogLevel   = "log-level"
	FlagLogFile    = "log-file"
	FlagPlain      = "plain"
)

// BindFlags registers the override flags on fs.
func BindFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagConfigFile, "f", "", "JSON document holding the preferences")
	fs.StringP(FlagSectionKey, "k", "", "Property name of the preferences tree (default \"Preferences\")")
	fs.String(FlagCatalog, "", "Display-name catalog (yaml, toml or json)")
	fs.String(FlagLogLevel, "", "Log level (debug, info, warn, error)")
	fs.String(FlagLogFile, "", "Write logs to this file instead of stderr")
	fs.Bool(FlagPlain, false, "Use the line-oriented interface")
}

// ApplyFlags overrides configuration values with flags the user set.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	strs := []struct {
		name string
		dst  *string
	}{
		{FlagConfigFile, &c.ConfigFile},
		{FlagSectionKey, &c.SectionKey},
		{FlagCatalog, &c.Catalog},
		{FlagLogLevel, &c.LogLevel},
		{FlagLogFile, &c.LogFile},
	}
	for _, s := range strs {
		if fs.Lookup(s.name) == nil || !fs.Changed(s.name) {
			continue
		}
		v, err := fs.GetString(s.name)
		if err != nil {
			return err
		}
		*s.dst = v
	}

	if fs.Lookup(FlagPlain) != nil && fs.Changed(FlagPlain) {
		v, err := fs.GetBool(FlagPlain)
		if err != nil {
			return err
		}
		c.Plain = v
	}
	c.normalize()
	return nil
}

func (c *Config) normalize() {
	if strings.TrimSpace(c.SectionKey) == "" {
		c.SectionKey = DefaultSectionKey
	}
	c.ConfigFile = ExpandPath(c.ConfigFile)
	c.Catalog = ExpandPath(c.Catalog)
	c.LogFile = ExpandPath(c.LogFile)
}

// ExpandPath expands a leading ~ to the home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}

// AbbreviatePath replaces the home directory with ~ for display.
func AbbreviatePath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
