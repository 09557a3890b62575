// Package config defines the registry-cli configuration structure.
package config

import (
	"os"
	"path/filepath"

	"github.com/lesichkovm/registryjs/internal/infra/confloader"
)

// CLIConfig is the configuration for registry-cli. Values merge from
// the config file, REGISTRY_* environment variables, and flags, in
// that order.
type CLIConfig struct {
	Store struct {
		// Dir is the badger data directory.
		Dir string `koanf:"dir"`
		// InMemory keeps all data in memory; nothing is persisted.
		InMemory bool `koanf:"inmemory"`
	} `koanf:"store"`

	// Namespace is the label the registry namespace is derived from.
	Namespace string `koanf:"namespace"`

	// Output is the default output format (table, json).
	Output string `koanf:"output"`

	Log struct {
		Level  string `koanf:"level"`
		Format string `koanf:"format"`
	} `koanf:"log"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	cfg := &CLIConfig{}
	cfg.Store.Dir = DefaultDataDir()
	cfg.Namespace = "default"
	cfg.Output = "table"
	cfg.Log.Level = "warn"
	cfg.Log.Format = "text"
	return cfg
}

// DefaultDataDir returns the default badger data directory.
func DefaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".registry"
	}
	return filepath.Join(homeDir, ".registry", "data")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".registry", "config.yaml")
}

// Load merges the config file (when present) and environment variables
// over the defaults. An empty path falls back to DefaultConfigPath;
// a missing file at the default location is not an error.
func Load(path string) (*CLIConfig, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if explicit {
				return nil, err
			}
			path = ""
		}
	}

	opts := []confloader.Option{}
	if path != "" {
		opts = append(opts, confloader.WithConfigFile(path))
	}

	if err := confloader.NewLoader(opts...).Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
