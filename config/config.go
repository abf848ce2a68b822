package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Database configuration. DatabaseURL selects postgres; when empty the
	// sqlite file at SQLitePath is used instead.
	DatabaseURL string
	SQLitePath  string

	// Redis configuration (rate limiting). Optional: an empty address
	// disables rate limiting.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Rate limit for write endpoints, requests per minute per client IP
	RateLimitPerMinute int

	// S3 configuration for recipe images
	S3Bucket  string
	AWSRegion string
}

// Load builds a Config from the environment. A .env file is honored when
// present so local development needs no exported variables.
func Load() (*Config, error) {
	// Missing .env is the normal case outside development
	_ = godotenv.Load()

	cfg := &Config{
		ServerHost:         getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		SQLitePath:         getEnv("SQLITE_PATH", "cookbook.db"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisURL:           os.Getenv("REDIS_URL"),
		S3Bucket:           os.Getenv("S3_BUCKET_NAME"),
		AWSRegion:          os.Getenv("AWS_REGION"),
		RateLimitPerMinute: 60,
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", v, err)
		}
		cfg.RedisDB = n
	}

	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE %q: %w", v, err)
		}
		cfg.RateLimitPerMinute = n
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Addr returns the host:port the server listens on
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// DBHostForLog extracts the database host for log lines, never credentials
func (c *Config) DBHostForLog() string {
	u, err := url.Parse(c.DatabaseURL)
	if err != nil || u.Host == "" {
		return "(unparsed DSN)"
	}
	return u.Host
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
