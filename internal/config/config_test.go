package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "DB_DRIVER", "JWT_TTL", "REDIS_ENABLED", "REDIS_DB", "CACHE_TTL", "BCRYPT_COST", "IS_PROD"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.True(t, cfg.RedisEnabled)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 60*time.Second, cfg.CacheTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.False(t, cfg.IsProd)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("JWT_TTL", "15m")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("IS_PROD", "true")

	cfg := LoadConfig()

	assert.Equal(t, "9000", cfg.AppPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 15*time.Minute, cfg.JWTTTL)
	assert.False(t, cfg.RedisEnabled)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 4, cfg.BcryptCost)
	assert.True(t, cfg.IsProd)
}

func TestLoadConfig_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("JWT_TTL", "soon")
	t.Setenv("REDIS_DB", "x")
	t.Setenv("REDIS_ENABLED", "maybe")

	cfg := LoadConfig()

	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.True(t, cfg.RedisEnabled)
}
