package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_parseEnv_OverridesOnlySetVariables(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6432")
	t.Setenv("DB_POOL_MAX_SIZE", "25")
	t.Setenv("SESSION_TTL_HOURS", "48")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("REDIS_DB", "0")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, 6432, cfg.DBPort)
	assert.Equal(t, 25, cfg.PoolMaxSize)
	assert.Equal(t, 48*time.Hour, cfg.SessionTTL)
	assert.Equal(t, SessionStoreRedis, cfg.SessionStore)
	assert.Equal(t, 0, cfg.RedisDB)

	// untouched by env
	assert.Equal(t, "job_hunter", cfg.DBName)
	assert.Equal(t, 1, cfg.PoolMinSize)
	assert.Equal(t, 5*time.Second, cfg.PoolAcquireTimeout)
}

func Test_parseEnv_AcquireTimeoutAsDuration(t *testing.T) {
	t.Setenv("DB_POOL_ACQUIRE_TIMEOUT", "750ms")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, 750*time.Millisecond, cfg.PoolAcquireTimeout)
}
