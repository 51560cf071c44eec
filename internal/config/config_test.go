package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, c.DBHost, "localhost")
	assert.Equal(t, c.DBPort, 5432)
	assert.Equal(t, c.DBName, "job_hunter")
	assert.Equal(t, c.DBUser, "postgres")
	assert.Equal(t, c.DBPassword, "")
	assert.Equal(t, c.DBSSLMode, "disable")
	assert.Equal(t, c.PoolMinSize, 1)
	assert.Equal(t, c.PoolMaxSize, 10)
	assert.Equal(t, c.PoolAcquireTimeout, 5*time.Second)
	assert.Equal(t, c.SessionTTL, 24*time.Hour)
	assert.Equal(t, c.SessionStore, SessionStoreMemory)
	assert.Equal(t, c.RedisAddr, "localhost:6379")
	assert.Equal(t, c.RedisDB, 0)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")

	assert.Equal(t, c.DBHost, "localhost")
	assert.Equal(t, c.DBName, "job_hunter")
	assert.Equal(t, c.SessionTTL, 24*time.Hour)
	assert.Equal(t, c.SessionStore, SessionStoreMemory)
}
