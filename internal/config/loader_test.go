package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := Default()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("embedded YAML differs from Default() (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := `
game:
  win_tile: 1024
storage:
  backend: redis
  redis:
    url: redis://cache:6379/1
api:
  session_ttl: 5m
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Game.WinTile != 1024 {
		t.Errorf("WinTile = %d, want 1024", cfg.Game.WinTile)
	}
	if cfg.Storage.Backend != BackendRedis || cfg.Storage.Redis.URL != "redis://cache:6379/1" {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if cfg.API.SessionTTL != 5*time.Minute {
		t.Errorf("SessionTTL = %v, want 5m", cfg.API.SessionTTL)
	}
	// untouched values keep defaults
	if cfg.Game.Spawn4Probability != 0.10 || cfg.Runtime.TickRate != 60 {
		t.Errorf("defaults lost: %+v %+v", cfg.Game, cfg.Runtime)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing custom config")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("game: [unclosed"), 0o644)

	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"win tile not power of two", func(c *Config) { c.Game.WinTile = 1000 }},
		{"win tile too small", func(c *Config) { c.Game.WinTile = 2 }},
		{"negative probability", func(c *Config) { c.Game.Spawn4Probability = -0.1 }},
		{"probability above one", func(c *Config) { c.Game.Spawn4Probability = 1.5 }},
		{"empty key", func(c *Config) { c.Game.BestScoreKey = "" }},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "etcd" }},
		{"sqlite without path", func(c *Config) { c.Storage.DBPath = "" }},
		{"redis without url", func(c *Config) {
			c.Storage.Backend = BackendRedis
			c.Storage.Redis.URL = ""
		}},
		{"zero session ttl", func(c *Config) { c.API.SessionTTL = 0 }},
		{"zero janitor interval", func(c *Config) { c.API.JanitorInterval = 0 }},
		{"zero tick rate", func(c *Config) { c.Runtime.TickRate = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}

	cfg := Default()
	cfg.Storage.Backend = BackendMemory
	cfg.Storage.DBPath = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("memory backend without db path should be valid: %v", err)
	}
}
