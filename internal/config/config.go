// Package config loads scoreboard settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds scoreboard configuration
type Config struct {
	// Redis for the match event stream, empty disables publishing
	RedisAddr     string `env:"SCOREBOARD_REDIS_ADDR"`
	RedisPassword string `env:"SCOREBOARD_REDIS_PASSWORD"`

	// Postgres for the finished match archive, empty disables archiving
	PostgresDSN string `env:"SCOREBOARD_POSTGRES_DSN"`

	SnapshotTTL   time.Duration `env:"SCOREBOARD_SNAPSHOT_TTL" envDefault:"30m"`
	FlushInterval time.Duration `env:"SCOREBOARD_FLUSH_INTERVAL" envDefault:"2s"`
	BatchSize     int           `env:"SCOREBOARD_BATCH_SIZE" envDefault:"100"`

	LogLevel     string `env:"SCOREBOARD_LOG_LEVEL" envDefault:"info"`
	DefaultSport string `env:"SCOREBOARD_DEFAULT_SPORT" envDefault:"football"`
}

// Load parses configuration from environment variables
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.BatchSize <= 0 {
		return Config{}, fmt.Errorf("SCOREBOARD_BATCH_SIZE must be positive, got %d", cfg.BatchSize)
	}
	if cfg.FlushInterval <= 0 {
		return Config{}, fmt.Errorf("SCOREBOARD_FLUSH_INTERVAL must be positive, got %v", cfg.FlushInterval)
	}

	return cfg, nil
}

// SlogLevel maps LogLevel to a slog level, defaulting to info
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
