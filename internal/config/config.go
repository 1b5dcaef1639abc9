// Package config loads and manages pathfinder configuration.
// Configuration source priority (highest to lowest):
// 1. Environment variables (PATHFINDER_BACKEND_URL, PATHFINDER_STORE, etc.)
// 2. Config file path specified via --config flag
// 3. ~/.config/pathfinder/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultBackendURL is the assistant service this client was built for.
const DefaultBackendURL = "https://backend-api-67ei.onrender.com"

// BackendConfig holds settings for the assistant backend.
type BackendConfig struct {
	// BaseURL of the assistant service (GET /history, POST /ask).
	BaseURL string `yaml:"base_url"`

	// TimeoutSeconds bounds each backend request. 0 = transport default
	// (no client-side timeout).
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// StorageConfig holds settings for the durable session store.
type StorageConfig struct {
	// Driver: "json" (default, single blob file) | "sqlite"
	Driver string `yaml:"driver"`

	// Path overrides the store location. Empty = default under
	// ~/.local/share/pathfinder.
	Path string `yaml:"path"`
}

// Config is the complete configuration structure for pathfinder.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Storage StorageConfig `yaml:"storage"`

	// EventLog toggles the JSONL activity trace.
	EventLog bool `yaml:"event_log"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL:        DefaultBackendURL,
			TimeoutSeconds: 60,
		},
		Storage: StorageConfig{
			Driver: "json",
		},
		EventLog: true,
	}
}

// Load reads the config file and merges environment variable overrides.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Determine config file path
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			configPath = filepath.Join(home, ".config", "pathfinder", "config.yaml")
		}
	}

	// Read config file (use defaults if not found)
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// Timeout returns the backend request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PATHFINDER_BACKEND_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("PATHFINDER_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Backend.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("PATHFINDER_STORE"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("PATHFINDER_STORE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
}
