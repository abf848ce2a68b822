package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pinEnv forces a known environment so host settings cannot leak in
func pinEnv(t *testing.T, env string) {
	t.Helper()
	t.Setenv("CI", "")
	t.Setenv("ENV", env)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("REDIS_DB", "")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "")
	t.Setenv("SERVER_HOST", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("SQLITE_PATH", "")
}

func TestLoadDefaults(t *testing.T) {
	pinEnv(t, "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "cookbook.db", cfg.SQLitePath)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
}

func TestLoadOverrides(t *testing.T) {
	pinEnv(t, "development")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "10")
	t.Setenv("SQLITE_PATH", "/tmp/test.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 10, cfg.RateLimitPerMinute)
	assert.Equal(t, "/tmp/test.db", cfg.SQLitePath)
}

func TestLoadRejectsBadRateLimit(t *testing.T) {
	pinEnv(t, "development")

	t.Setenv("RATE_LIMIT_PER_MINUTE", "lots")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("RATE_LIMIT_PER_MINUTE", "0")
	_, err = Load()
	assert.Error(t, err)
}

func TestProductionRequiresExternalStores(t *testing.T) {
	pinEnv(t, "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "REDIS_ADDR")

	t.Setenv("DATABASE_URL", "postgres://user:pass@db:5432/cookbook")
	t.Setenv("REDIS_ADDR", "redis:6379")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "db:5432", cfg.DBHostForLog())
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "")

	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())
	assert.True(t, IsProduction())

	t.Setenv("ENV", "test")
	assert.Equal(t, Test, GetEnvironment())
	assert.True(t, IsTest())

	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())
	assert.True(t, IsDevelopment())

	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
}
