// Package config loads the marcidx configuration file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mitlibraries/marcidx/driver"
)

// Config represents the marcidx configuration
type Config struct {
	Logging Logging         `yaml:"logging"`
	Driver  driver.Settings `yaml:"driver"`
	Store   Store           `yaml:"store"`
	Workers int             `yaml:"workers"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// Store contains record store configuration
type Store struct {
	Path string `yaml:"path"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Logging: Logging{Level: "info"},
		Driver:  driver.DefaultSettings(),
		Store:   Store{Path: "./records"},
		Workers: 4,
	}
}

// Load reads the configuration at path. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return cfg, nil
}

// Save writes cfg to path, creating its directory.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SlogLevel returns the slog level named by the logging configuration.
func (l Logging) SlogLevel() (slog.Level, error) {
	var level slog.Level
	switch strings.ToLower(strings.TrimSpace(l.Level)) {
	case "", "info":
		level = slog.LevelInfo
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return level, fmt.Errorf("unknown log level %q", l.Level)
	}
	return level, nil
}
