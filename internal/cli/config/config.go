// Package config provides configuration management for the AskDB CLI.
package config

import (
	"fmt"

	"github.com/askdb-io/askdb/internal/kvstore"
	"github.com/askdb-io/askdb/internal/output"
)

// Defaults applied before any config source is loaded.
const (
	DefaultServerURL = "http://localhost:5000"
	DefaultTheme     = ""
	DefaultOutput    = "auto"
	DefaultPort      = 5000
)

// ServeConfig holds settings for the built-in demo server.
type ServeConfig struct {
	Port     int    `koanf:"port"`
	Database string `koanf:"database"`
	DSN      string `koanf:"dsn"`
	MaxRows  int    `koanf:"max_rows"`
}

// Config holds all CLI configuration options.
type Config struct {
	ServerURL    string       `koanf:"server_url"`
	StorePath    string       `koanf:"store_path"`
	Theme        string       `koanf:"theme"`
	OutputFormat string       `koanf:"output"`
	Verbose      bool         `koanf:"verbose"`
	Serve        *ServeConfig `koanf:"serve"`
}

// GetServeConfig returns the serve section with defaults applied.
func (c *Config) GetServeConfig() *ServeConfig {
	s := c.Serve
	if s == nil {
		s = &ServeConfig{}
	}
	if s.Port == 0 {
		s.Port = DefaultPort
	}
	return s
}

// ResolveStorePath returns the configured kvstore path or the default
// location under the user config directory.
func (c *Config) ResolveStorePath() string {
	if c.StorePath != "" {
		return c.StorePath
	}
	return kvstore.DefaultPath()
}

// ResolveTheme returns the effective theme: the persisted flag when one is
// stored, the configured value, or terminal background detection.
func (c *Config) ResolveTheme(kv *kvstore.Store) output.Theme {
	var stored string
	if kv != nil && kv.Get("theme", &stored) && output.Theme(stored).Valid() {
		return output.Theme(stored)
	}
	if output.Theme(c.Theme).Valid() {
		return output.Theme(c.Theme)
	}
	return output.DetectTheme()
}

// Validate checks option values that have a fixed domain.
func (c *Config) Validate() error {
	if c.Theme != "" && !output.Theme(c.Theme).Valid() {
		return fmt.Errorf("invalid theme %q (want dark or light)", c.Theme)
	}
	if c.OutputFormat != "" && !output.Mode(c.OutputFormat).Valid() {
		return fmt.Errorf("invalid output format %q", c.OutputFormat)
	}
	return nil
}
