package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "tinydb-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	t.Run("JSON config", func(t *testing.T) {
		path := filepath.Join(tempDir, "config.json")
		content := `{
			"http_port": 9090,
			"data_file": "/var/lib/tinydb/data.json",
			"create_dirs": true,
			"access_mode": "rb+",
			"auth": {"enabled": true, "token_duration": 600}
		}`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}

		if cfg.HTTPPort != 9090 {
			t.Errorf("Expected port 9090, got %d", cfg.HTTPPort)
		}
		if cfg.Backend != "json" {
			t.Errorf("Expected backend 'json' derived from data_file, got %q", cfg.Backend)
		}
		if cfg.AccessMode != "rb+" {
			t.Errorf("Expected access mode 'rb+', got %q", cfg.AccessMode)
		}
		if !cfg.Auth.Enabled || cfg.Auth.TokenDuration != 600 {
			t.Errorf("Unexpected auth config: %+v", cfg.Auth)
		}
	})

	t.Run("YAML config", func(t *testing.T) {
		path := filepath.Join(tempDir, "config.yaml")
		content := `
http_port: 7070
backend: memory
cache_enabled: true
log_level: debug
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}

		if cfg.HTTPPort != 7070 {
			t.Errorf("Expected port 7070, got %d", cfg.HTTPPort)
		}
		if cfg.Backend != "memory" {
			t.Errorf("Expected backend 'memory', got %q", cfg.Backend)
		}
		if !cfg.CacheEnabled {
			t.Error("Expected cache_enabled true")
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("Expected log level 'debug', got %q", cfg.LogLevel)
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		path := filepath.Join(tempDir, "empty.json")
		if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}

		if cfg.HTTPPort != 8080 {
			t.Errorf("Expected default port 8080, got %d", cfg.HTTPPort)
		}
		if cfg.Backend != "memory" {
			t.Errorf("Expected default backend 'memory', got %q", cfg.Backend)
		}
		if cfg.AccessMode != "r+" {
			t.Errorf("Expected default access mode 'r+', got %q", cfg.AccessMode)
		}
	})

	t.Run("Missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(tempDir, "nope.json")); err == nil {
			t.Fatal("Expected error for missing config file")
		}
	})

	t.Run("Malformed config", func(t *testing.T) {
		path := filepath.Join(tempDir, "bad.json")
		if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}

		if _, err := LoadConfig(path); err == nil {
			t.Fatal("Expected error for malformed config")
		}
	})
}
