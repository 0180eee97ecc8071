// Package config loads the application configuration from an optional
// YAML file with environment overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds everything the binary needs to start.
type Config struct {
	Server struct {
		Addr      string `yaml:"addr"`
		StaticDir string `yaml:"static_dir"`
	} `yaml:"server"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
}

// Load reads the YAML file at path when it exists, then applies
// environment overrides and defaults. A missing file is not an error;
// the defaults alone are a valid configuration.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	cfg.Server.Addr = envOrDefault("KANBAN_ADDR", cfg.Server.Addr, ":8080")
	cfg.Server.StaticDir = envOrDefault("KANBAN_STATIC_DIR", cfg.Server.StaticDir, "web/dist")
	cfg.Database.Path = envOrDefault("KANBAN_DB_PATH", cfg.Database.Path, "data/kanban.db")

	return &cfg, nil
}

// envOrDefault prefers the environment variable, then the file value,
// then the built-in default.
func envOrDefault(key, fromFile, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if fromFile != "" {
		return fromFile
	}
	return fallback
}
