// Package config centralizes application configuration into typed structs
// with defaults, overridable through environment variables (optionally
// loaded from a .env file).
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the top-level configuration container.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Dispatch DispatchConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds the SQLite settings for the runs store.
type DatabaseConfig struct {
	Path string
}

// DispatchConfig controls the live dispatch service.
type DispatchConfig struct {
	// DefaultDriverSpeed is used when a driver announces availability
	// without a speed.
	DefaultDriverSpeed int
}

// NewDefaultConfig returns a Config populated with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Path: "data/ridesim.db",
		},
		Dispatch: DispatchConfig{
			DefaultDriverSpeed: 1,
		},
	}
}

// Load builds the configuration from defaults plus environment overrides.
// A .env file in the working directory is read first if present.
func Load() *Config {
	_ = godotenv.Load()

	cfg := NewDefaultConfig()
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = ":" + port
	}
	if path := os.Getenv("DB_PATH"); path != "" {
		cfg.Database.Path = path
	}
	cfg.Server.ReadTimeout = getDurationEnv("READ_TIMEOUT_SECONDS", cfg.Server.ReadTimeout)
	cfg.Server.WriteTimeout = getDurationEnv("WRITE_TIMEOUT_SECONDS", cfg.Server.WriteTimeout)
	cfg.Dispatch.DefaultDriverSpeed = getIntEnv("DEFAULT_DRIVER_SPEED", cfg.Dispatch.DefaultDriverSpeed)
	return cfg
}

func getIntEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Second
		}
	}
	return fallback
}
