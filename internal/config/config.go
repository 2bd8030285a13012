package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string

	// Database
	DatabaseURL   string
	RunMigrations bool

	// Cache
	RedisURL string        // empty disables the shared snapshot cache
	CacheTTL time.Duration // how long a computed bundle is served from the cache

	// Refresh
	RefreshInterval time.Duration // 0 disables background refresh

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Rate limiting
	RateLimit int // requests per minute per IP, 0 disables
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:             getEnv("ENV", "development"),
		ServerAddr:      getEnv("SERVER_ADDR", ":3000"),
		DatabaseURL:     getEnv("DATABASE_URL", "postgres://localhost:5432/jobmetrics?sslmode=disable"),
		RunMigrations:   getEnv("MIGRATE", "") != "",
		RedisURL:        getEnv("REDIS_URL", ""),
		CacheTTL:        getEnvDuration("CACHE_TTL", 60*time.Second),
		RefreshInterval: getEnvDuration("REFRESH_INTERVAL", 60*time.Second),
		CORSOrigins:     getEnv("CORS_ORIGINS", "*"),
		RateLimit:       getEnvInt("RATE_LIMIT", 100),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}
