package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the server configuration, loaded from environment
// variables.
type Config struct {
	Addr            string        `env:"GAMEBACKEND_ADDR" envDefault:":8080"`
	DatabasePath    string        `env:"GAMEBACKEND_DB_PATH" envDefault:"gamebackend.db"`
	LogLevel        string        `env:"GAMEBACKEND_LOG_LEVEL" envDefault:"info"`
	RateLimit       int           `env:"GAMEBACKEND_RATE_LIMIT" envDefault:"120"`
	RateLimitWindow time.Duration `env:"GAMEBACKEND_RATE_WINDOW" envDefault:"1m"`
	ReadTimeout     time.Duration `env:"GAMEBACKEND_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"GAMEBACKEND_WRITE_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"GAMEBACKEND_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// SlogLevel maps the configured log level string to a slog.Level.
// Unknown values fall back to info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
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
