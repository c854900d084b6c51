package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage backend selectors
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config holds server configuration loaded from the environment
type Config struct {
	Host            string        `env:"CONCLAVE_HOST"`
	Port            int           `env:"CONCLAVE_PORT"             envDefault:"8080"`
	LogLevel        string        `env:"CONCLAVE_LOG_LEVEL"        envDefault:"info"`
	Storage         string        `env:"CONCLAVE_STORAGE"          envDefault:"memory"`
	RedisURL        string        `env:"CONCLAVE_REDIS_URL"        envDefault:"redis://localhost:6379"`
	LobbyIdleTTL    time.Duration `env:"CONCLAVE_LOBBY_IDLE_TTL"   envDefault:"30m"`
	JanitorInterval time.Duration `env:"CONCLAVE_JANITOR_INTERVAL" envDefault:"1m"`
}

// Load parses configuration from environment variables
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Storage != StorageMemory && cfg.Storage != StorageRedis {
		return Config{}, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}

	return cfg, nil
}

// SlogLevel maps the configured log level onto a slog.Level
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
