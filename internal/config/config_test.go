package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Backend.BaseURL != DefaultBackendURL {
		t.Errorf("base url = %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.TimeoutSeconds != 60 {
		t.Errorf("timeout = %d", cfg.Backend.TimeoutSeconds)
	}
	if cfg.Storage.Driver != "json" {
		t.Errorf("driver = %q", cfg.Storage.Driver)
	}
	if !cfg.EventLog {
		t.Error("event log should default on")
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
backend:
  base_url: http://localhost:9000
  timeout_seconds: 5
storage:
  driver: sqlite
  path: /tmp/sessions.db
event_log: false
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Backend.BaseURL != "http://localhost:9000" {
		t.Errorf("base url = %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.TimeoutSeconds != 5 {
		t.Errorf("timeout = %d", cfg.Backend.TimeoutSeconds)
	}
	if cfg.Storage.Driver != "sqlite" {
		t.Errorf("driver = %q", cfg.Storage.Driver)
	}
	if cfg.Storage.Path != "/tmp/sessions.db" {
		t.Errorf("path = %q", cfg.Storage.Path)
	}
	if cfg.EventLog {
		t.Error("event log should be off")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Backend.BaseURL != DefaultBackendURL {
		t.Errorf("base url = %q", cfg.Backend.BaseURL)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("backend: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid yaml")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PATHFINDER_BACKEND_URL", "http://env-wins:8080")
	t.Setenv("PATHFINDER_TIMEOUT", "7")
	t.Setenv("PATHFINDER_STORE", "/tmp/env.json")
	t.Setenv("PATHFINDER_STORE_DRIVER", "sqlite")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("backend:\n  base_url: http://file\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Backend.BaseURL != "http://env-wins:8080" {
		t.Errorf("env should win over file, got %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.TimeoutSeconds != 7 {
		t.Errorf("timeout = %d", cfg.Backend.TimeoutSeconds)
	}
	if cfg.Storage.Path != "/tmp/env.json" {
		t.Errorf("path = %q", cfg.Storage.Path)
	}
	if cfg.Storage.Driver != "sqlite" {
		t.Errorf("driver = %q", cfg.Storage.Driver)
	}
}

func TestLoad_BadTimeoutEnvIgnored(t *testing.T) {
	t.Setenv("PATHFINDER_TIMEOUT", "not-a-number")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Backend.TimeoutSeconds != 60 {
		t.Errorf("bad env value should be ignored, got %d", cfg.Backend.TimeoutSeconds)
	}
}

func TestTimeout(t *testing.T) {
	cfg := &Config{Backend: BackendConfig{TimeoutSeconds: 30}}
	if got := cfg.Timeout(); got != 30*time.Second {
		t.Errorf("timeout = %v", got)
	}
}
