// Package config handles configuration for the identity subsystem,
// including defaults, environment variables, JSON overlay, and
// command-line flags.
package config

import "time"

// Session store modes recognized by SessionStore.
const (
	SessionStoreMemory   = "memory"
	SessionStorePostgres = "postgres"
	SessionStoreRedis    = "redis"
)

// Config holds runtime settings for the identity subsystem.
//
// Fields:
//   - DBHost/DBPort/DBName/DBUser/DBPassword/DBSSLMode: PostgreSQL target.
//   - PoolMinSize / PoolMaxSize: connection pool bounds. PoolMaxSize caps
//     concurrent connections by construction.
//   - PoolAcquireTimeout: how long an acquisition may wait under contention
//     before failing with a connectivity error.
//   - SessionTTL: validity window of issued session tokens.
//   - SessionStore: one of "memory", "postgres", "redis".
//   - RedisAddr / RedisDB: redis target, used only in "redis" mode.
type Config struct {
	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	PoolMinSize        int
	PoolMaxSize        int
	PoolAcquireTimeout time.Duration

	SessionTTL   time.Duration
	SessionStore string

	RedisAddr string
	RedisDB   int
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.DBHost = "localhost"
	c.DBPort = 5432
	c.DBName = "job_hunter"
	c.DBUser = "postgres"
	c.DBPassword = ""
	c.DBSSLMode = "disable"
	c.PoolMinSize = 1
	c.PoolMaxSize = 10
	c.PoolAcquireTimeout = 5 * time.Second
	c.SessionTTL = 24 * time.Hour
	c.SessionStore = SessionStoreMemory
	c.RedisAddr = "localhost:6379"
	c.RedisDB = 0
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from environment variables, an optional JSON file, and finally
// command-line flags. All values are read once at process start.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
