package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Load reads the configuration.
// Search order: customPath -> ~/.t2048/config.yaml -> ./configs/t2048.yaml -> embedded default.
// Values missing from a file keep their defaults.
func Load(customPath string) (Config, error) {
	cfg := Default()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := Default()
		if err := yaml.Unmarshal(data, &candidate); err != nil {
			continue
		}
		return candidate, candidate.Validate()
	}

	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, cfg.Validate()
}

func searchPaths() []string {
	var paths []string
	if p := userConfigPath("config.yaml"); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", "t2048.yaml"))
}

func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".t2048", filename)
}

// Validate checks that every value is usable.
func (c Config) Validate() error {
	g := c.Game
	if g.WinTile < 4 || g.WinTile&(g.WinTile-1) != 0 {
		return fmt.Errorf("%w: game.win_tile must be a power of two >= 4, got %d", ErrInvalid, g.WinTile)
	}
	if g.Spawn4Probability < 0 || g.Spawn4Probability > 1 {
		return fmt.Errorf("%w: game.spawn4_probability must be within [0, 1], got %v", ErrInvalid, g.Spawn4Probability)
	}
	if g.BestScoreKey == "" {
		return fmt.Errorf("%w: game.best_score_key is empty", ErrInvalid)
	}

	switch c.Storage.Backend {
	case BackendSQLite:
		if c.Storage.DBPath == "" {
			return fmt.Errorf("%w: storage.db_path is empty", ErrInvalid)
		}
	case BackendRedis:
		if c.Storage.Redis.URL == "" {
			return fmt.Errorf("%w: storage.redis.url is empty", ErrInvalid)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("%w: unknown storage.backend %q", ErrInvalid, c.Storage.Backend)
	}

	if c.API.SessionTTL <= 0 {
		return fmt.Errorf("%w: api.session_ttl must be positive", ErrInvalid)
	}
	if c.API.JanitorInterval <= 0 {
		return fmt.Errorf("%w: api.janitor_interval must be positive", ErrInvalid)
	}
	if c.Runtime.TickRate <= 0 {
		return fmt.Errorf("%w: runtime.tick_rate must be positive", ErrInvalid)
	}
	return nil
}
