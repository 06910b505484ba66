package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("REDIS_DB", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("SEED_DEFAULT_DEPARTMENTS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "employee-service", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Empty(t, cfg.Postgres.DSN)
	assert.True(t, cfg.Postgres.RunMigrations)
	assert.Equal(t, "migrations", cfg.Postgres.MigrationsDir)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 5*time.Minute, cfg.Redis.DepartmentsTTL())
	assert.True(t, cfg.Seed.DefaultDepartments)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "0")
	t.Setenv("POSTGRES_MAX_CONNS", "25")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CACHE_DEPARTMENTS_TTL_SECONDS", "-1")
	t.Setenv("SEED_DEFAULT_DEPARTMENTS", "false")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.App.Addr())
	assert.Zero(t, cfg.App.RequestTimeout())
	assert.Equal(t, int32(25), cfg.Postgres.MaxConns)
	assert.False(t, cfg.Postgres.RunMigrations)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Zero(t, cfg.Redis.DepartmentsTTL())
	assert.False(t, cfg.Seed.DefaultDepartments)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadInvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "zero")

	_, err := Load()
	assert.ErrorContains(t, err, "invalid REDIS_DB")
}

func TestInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("POSTGRES_MIN_CONNS", "many")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "maybe")
	t.Setenv("REDIS_DB", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int32(2), cfg.Postgres.MinConns)
	assert.True(t, cfg.Postgres.RunMigrations)
}
