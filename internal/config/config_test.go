package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "DB_DRIVER", "DB_MAX_OPEN_CONNS", "CACHE_TTL", "RATE_LIMIT_RPS", "AUTO_MIGRATE"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Zero(t, cfg.RateLimitRPS)
	assert.True(t, cfg.AutoMigrate)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "4000")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_MAX_OPEN_CONNS", "3")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("RATE_LIMIT_RPS", "12.5")
	t.Setenv("RESET_DB", "true")

	cfg := Load()

	assert.Equal(t, "4000", cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 3, cfg.DBMaxOpenConns)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.Equal(t, 12.5, cfg.RateLimitRPS)
	assert.True(t, cfg.ResetDB)
}

func TestLoad_MalformedFallsBack(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "many")
	t.Setenv("CACHE_TTL", "soon")
	t.Setenv("AUTO_MIGRATE", "maybe")

	cfg := Load()

	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.True(t, cfg.AutoMigrate)
}
