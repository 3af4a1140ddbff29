// Package config provides configuration management for assetmerge.
//
// Config file locations (priority order):
//  1. $ASSETMERGE_CONFIG
//  2. ./assetmerge.yaml
//  3. ~/.config/assetmerge/config.yaml
//  4. /etc/assetmerge/config.yaml
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level server configuration
type Config struct {
	Addr     string         `yaml:"addr"`
	Database DatabaseConfig `yaml:"database"`
	Import   ImportConfig   `yaml:"import"`
	Scan     ScanConfig     `yaml:"scan"`
}

// DatabaseConfig holds database settings
type DatabaseConfig struct {
	// Path is the SQLite file, or ":memory:" for a session-scoped store.
	Path string `yaml:"path"`
}

// ImportConfig holds source import settings
type ImportConfig struct {
	MaxSources int `yaml:"max_sources"`
	PageSize   int `yaml:"page_size"`
	// WatchDir is a drop directory for automatic imports. Empty disables
	// the watcher.
	WatchDir string `yaml:"watch_dir,omitempty"`
}

// ScanConfig holds subnet scan settings
type ScanConfig struct {
	Ports             string   `yaml:"ports,omitempty"`
	Timeout           Duration `yaml:"timeout,omitempty"`
	SkipHostDiscovery bool     `yaml:"skip_host_discovery,omitempty"`
}

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, path, nil
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.Database.Path == "" {
		c.Database.Path = ":memory:"
	}
	if c.Import.MaxSources == 0 {
		c.Import.MaxSources = 10
	}
	if c.Import.PageSize == 0 {
		c.Import.PageSize = 500
	}
	if c.Scan.Ports == "" {
		c.Scan.Ports = "22,80,443,445,3389,5900,8080,9100"
	}
	if c.Scan.Timeout == 0 {
		c.Scan.Timeout = Duration(10 * time.Minute)
	}
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
