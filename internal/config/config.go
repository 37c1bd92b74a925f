// Package config handles configuration loading and defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Default values.
const (
	DefaultDir   = "~/.scribe"
	DefaultDB    = "~/.scribe/scribe.db"
	DefaultOwner = "default"
)

// Config holds the full configuration for scribe.
type Config struct {
	// DBPath is the SQLite database file. The parent directory is created
	// on first open.
	DBPath string `toml:"db_path"`

	// Owner scopes every read and write. A single user typically never
	// changes this; multiple profiles on one machine use distinct owners.
	Owner string `toml:"owner"`

	// Color toggles styled terminal output. Auto-disabled when stdout is
	// not a terminal regardless of this setting.
	Color bool `toml:"color"`
}

// Load builds configuration in priority order:
// 1. Defaults
// 2. Config file (~/.scribe/scribe.toml, or SCRIBE_CONFIG)
// 3. Environment variables
func Load() (*Config, error) {
	cfg := &Config{
		DBPath: DefaultDB,
		Owner:  DefaultOwner,
		Color:  true,
	}

	if path := findConfigFile(); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	loadFromEnv(cfg)

	cfg.DBPath = expandPath(cfg.DBPath)
	if strings.TrimSpace(cfg.Owner) == "" {
		return nil, fmt.Errorf("owner must not be empty")
	}

	return cfg, nil
}

func findConfigFile() string {
	if path := os.Getenv("SCRIBE_CONFIG"); path != "" {
		return expandPath(path)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, ".scribe", "scribe.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("SCRIBE_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("SCRIBE_OWNER"); v != "" {
		cfg.Owner = v
	}
	if v := os.Getenv("NO_COLOR"); v != "" {
		cfg.Color = false
	}
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		if p == "~" {
			return home
		}
		return filepath.Join(home, p[2:])
	}
	return p
}
