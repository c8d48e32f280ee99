package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Game: GameConfig{
			WinTile:           2048,
			Spawn4Probability: 0.10,
			BestScoreKey:      "t2048:best_score",
		},
		Storage: StorageConfig{
			Backend: BackendSQLite,
			DBPath:  "~/.t2048/t2048.db",
			Redis: RedisConfig{
				URL:          "redis://localhost:6379",
				PoolSize:     10,
				MinIdleConns: 2,
			},
		},
		SSH: SSHConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
		API: APIConfig{
			Address:         ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			SessionTTL:      30 * time.Minute,
			JanitorInterval: time.Minute,
			MaxSessions:     10000,
		},
		Runtime: RuntimeConfig{
			TickRate: 60,
		},
	}
}
