// Package config handles configuration loading and defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Default values.
const (
	DefaultDatabase = "todotrek.db"
	DefaultUserID   = "local"
	DefaultLogLevel = "info"
)

// Environment variable names. Environment values override the config
// file; command-line flags override both.
const (
	EnvDatabase = "TODOTREK_DB"
	EnvUserID   = "TODOTREK_USER"
	EnvLogLevel = "TODOTREK_LOG_LEVEL"
)

// Config holds the runtime configuration for the todotrek CLI.
type Config struct {
	// Database is the path to the SQLite database file.
	Database string `toml:"database"`

	// UserID scopes every operation; all lists and todos created or
	// read belong to this user.
	UserID string `toml:"user_id"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
}

// DefaultPath returns the default config file location,
// $HOME/.config/todotrek/todotrek.toml, or "" if the home directory
// cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "todotrek", "todotrek.toml")
}

// Load builds the configuration as defaults, overlaid by the TOML file
// at path (skipped if path is "" or the file does not exist), overlaid
// by environment variables. A .env file in the working directory is
// loaded first if present, so it can supply the environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Database: DefaultDatabase,
		UserID:   DefaultUserID,
		LogLevel: DefaultLogLevel,
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	// Missing .env is fine; only a parse failure is an error.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if v := os.Getenv(EnvDatabase); v != "" {
		cfg.Database = v
	}
	if v := os.Getenv(EnvUserID); v != "" {
		cfg.UserID = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}

	return cfg, nil
}
