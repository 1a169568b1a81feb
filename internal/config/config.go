// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// DefaultKeep is the retention count used when nothing else is configured.
const DefaultKeep = 50

// Config represents the ansible-log configuration.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Output  OutputConfig  `toml:"output"`
	Filter  FilterConfig  `toml:"filter"`
}

// StorageConfig contains run record storage settings.
type StorageConfig struct {
	Path string `toml:"path"` // Base directory for run records
	Keep int    `toml:"keep"` // How many runs to retain
}

// OutputConfig contains display settings.
type OutputConfig struct {
	Color string `toml:"color"` // auto (default), always, never
}

// FilterConfig tunes the pre-play warning filter used in diff mode.
type FilterConfig struct {
	Allow     []string `toml:"allow"`      // Keywords that keep a warning visible
	Deny      []string `toml:"deny"`       // Keywords that suppress a warning
	RulesFile string   `toml:"rules_file"` // Optional YAML rules file, overrides the lists above
}

// New creates a config with defaults.
func New() *Config {
	return &Config{
		Storage: StorageConfig{
			Path: "~/.ansible-log",
			Keep: DefaultKeep,
		},
		Output: OutputConfig{
			Color: "auto",
		},
	}
}

// Default returns a default configuration.
func Default() *Config {
	return New()
}

// LoadFile loads configuration from a TOML file and applies environment
// overrides on top.
func LoadFile(path string) (*Config, error) {
	cfg := New()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyEnv()
	return cfg, nil
}

// Load reads ansible-log.toml from the working directory, falling back to
// defaults when the file does not exist.
func Load() (*Config, error) {
	cfg, err := LoadFile("ansible-log.toml")
	if os.IsNotExist(err) {
		cfg = New()
		cfg.applyEnv()
		return cfg, nil
	}
	return cfg, err
}

// applyEnv layers ANSIBLE_LOG_DIR / ANSIBLE_LOG_KEEP over file values.
func (c *Config) applyEnv() {
	if dir := os.Getenv("ANSIBLE_LOG_DIR"); dir != "" {
		c.Storage.Path = dir
	}
	if keep := os.Getenv("ANSIBLE_LOG_KEEP"); keep != "" {
		if n, err := strconv.Atoi(keep); err == nil && n > 0 {
			c.Storage.Keep = n
		}
	}
}

// LogDir returns the storage path with a leading ~ expanded.
func (c *Config) LogDir() string {
	path := c.Storage.Path
	if path == "" {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".ansible-log")
	}
	if path[0] == '~' {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}

// Keep returns the retention count, never below one.
func (c *Config) Keep() int {
	if c.Storage.Keep <= 0 {
		return DefaultKeep
	}
	return c.Storage.Keep
}
