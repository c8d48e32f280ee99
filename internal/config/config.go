// Package config provides YAML-based configuration for the game, its
// storage backends and the SSH and HTTP front ends.
package config

import "time"

// Config is the complete application configuration.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Storage StorageConfig `yaml:"storage"`
	SSH     SSHConfig     `yaml:"ssh"`
	API     APIConfig     `yaml:"api"`
	Runtime RuntimeConfig `yaml:"runtime"`
}

// GameConfig holds board engine parameters.
type GameConfig struct {
	WinTile           int     `yaml:"win_tile"`
	Spawn4Probability float64 `yaml:"spawn4_probability"`
	BestScoreKey      string  `yaml:"best_score_key"`
}

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// StorageConfig selects where the best score lives.
type StorageConfig struct {
	Backend string      `yaml:"backend"` // "sqlite", "redis" or "memory"
	DBPath  string      `yaml:"db_path"`
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	URL          string        `yaml:"url"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	KeyTTL       time.Duration `yaml:"key_ttl"`
}

// SSHConfig holds the Wish server settings.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// APIConfig holds the HTTP server settings.
type APIConfig struct {
	Address         string        `yaml:"address"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	SessionTTL      time.Duration `yaml:"session_ttl"`
	JanitorInterval time.Duration `yaml:"janitor_interval"`
	MaxSessions     int           `yaml:"max_sessions"`
}

// RuntimeConfig holds terminal loop settings.
type RuntimeConfig struct {
	TickRate int `yaml:"tick_rate"`
}
