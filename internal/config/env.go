package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// envConfig is an intermediate DTO for reading environment variables with
// go-envconfig. Only variables that are actually set end up copied into the
// runtime Config, so defaults and later overlays keep working.
type envConfig struct {
	DBHost     string `env:"DB_HOST"`
	DBPort     int    `env:"DB_PORT"`
	DBName     string `env:"DB_NAME"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBSSLMode  string `env:"DB_SSLMODE"`

	PoolMinSize        int           `env:"DB_POOL_MIN_SIZE"`
	PoolMaxSize        int           `env:"DB_POOL_MAX_SIZE"`
	PoolAcquireTimeout time.Duration `env:"DB_POOL_ACQUIRE_TIMEOUT"`

	SessionTTLHours int    `env:"SESSION_TTL_HOURS"`
	SessionStore    string `env:"SESSION_STORE"`

	RedisAddr string `env:"REDIS_ADDR"`
	// Preset to -1 so "DB 0" is distinguishable from "not set"; overwrite
	// makes envconfig replace the sentinel whenever REDIS_DB is present.
	RedisDB int `env:"REDIS_DB, overwrite"`
}

// parseEnv overlays recognized environment variables onto config.
// Unset variables leave the existing values untouched.
func parseEnv(config *Config) {
	e := &envConfig{RedisDB: -1}
	if err := envconfig.Process(context.Background(), e); err != nil {
		panic(err)
	}

	if e.DBHost != "" {
		config.DBHost = e.DBHost
	}
	if e.DBPort != 0 {
		config.DBPort = e.DBPort
	}
	if e.DBName != "" {
		config.DBName = e.DBName
	}
	if e.DBUser != "" {
		config.DBUser = e.DBUser
	}
	if e.DBPassword != "" {
		config.DBPassword = e.DBPassword
	}
	if e.DBSSLMode != "" {
		config.DBSSLMode = e.DBSSLMode
	}
	if e.PoolMinSize != 0 {
		config.PoolMinSize = e.PoolMinSize
	}
	if e.PoolMaxSize != 0 {
		config.PoolMaxSize = e.PoolMaxSize
	}
	if e.PoolAcquireTimeout != 0 {
		config.PoolAcquireTimeout = e.PoolAcquireTimeout
	}
	if e.SessionTTLHours != 0 {
		config.SessionTTL = time.Duration(e.SessionTTLHours) * time.Hour
	}
	if e.SessionStore != "" {
		config.SessionStore = e.SessionStore
	}
	if e.RedisAddr != "" {
		config.RedisAddr = e.RedisAddr
	}
	if e.RedisDB >= 0 {
		config.RedisDB = e.RedisDB
	}
}
