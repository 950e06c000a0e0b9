// Package config loads the CLI configuration file.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	dErrors "listly/pkg/domain-errors"
)

// Config is the CLI's TOML configuration.
type Config struct {
	// ServerURL is the base URL of the list service.
	ServerURL string `toml:"server_url"`
	// DataDir holds the local session database. Defaults next to the config
	// file.
	DataDir string `toml:"data_dir"`
	// TimeoutSeconds bounds each request to the server.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// DefaultPath is where Load looks when no explicit path is given.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "resolve home directory")
	}
	return filepath.Join(home, ".listly", "config.toml"), nil
}

// Load reads the config at path, falling back to defaults when the file does
// not exist.
func Load(path string) (*Config, error) {
	cfg := &Config{
		ServerURL:      "http://localhost:8080",
		TimeoutSeconds: 30,
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, dErrors.Wrap(err, dErrors.CodeValidation, "parse config file")
		}
	}
	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Join(filepath.Dir(path), "data")
	}
	return cfg, nil
}
