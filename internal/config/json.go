package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/jobhunter/identity/internal/flagx"
	"github.com/jobhunter/identity/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "24h" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, its set fields are copied into
// the runtime Config struct which uses time.Duration.
type JsonConfig struct {
	DBHost     string `json:"db_host"`
	DBPort     int    `json:"db_port"`
	DBName     string `json:"db_name"`
	DBUser     string `json:"db_user"`
	DBPassword string `json:"db_password"`
	DBSSLMode  string `json:"db_sslmode"`

	PoolMinSize        int            `json:"pool_min_size"`
	PoolMaxSize        int            `json:"pool_max_size"`
	PoolAcquireTimeout timex.Duration `json:"pool_acquire_timeout"`

	SessionTTL   timex.Duration `json:"session_ttl"`
	SessionStore string         `json:"session_store"`

	RedisAddr string `json:"redis_addr"`
	RedisDB   int    `json:"redis_db"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path comes from the -c or -config command-line flags; when
// neither is set, no JSON file is loaded. An unreadable or malformed file
// panics, matching the behavior of the flag layer.
//
// Only keys present in the file override earlier layers; absent keys leave
// defaults and environment values in place.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{RedisDB: -1}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.DBHost != "" {
		config.DBHost = c.DBHost
	}
	if c.DBPort != 0 {
		config.DBPort = c.DBPort
	}
	if c.DBName != "" {
		config.DBName = c.DBName
	}
	if c.DBUser != "" {
		config.DBUser = c.DBUser
	}
	if c.DBPassword != "" {
		config.DBPassword = c.DBPassword
	}
	if c.DBSSLMode != "" {
		config.DBSSLMode = c.DBSSLMode
	}
	if c.PoolMinSize != 0 {
		config.PoolMinSize = c.PoolMinSize
	}
	if c.PoolMaxSize != 0 {
		config.PoolMaxSize = c.PoolMaxSize
	}
	if c.PoolAcquireTimeout.Duration != 0 {
		config.PoolAcquireTimeout = time.Duration(c.PoolAcquireTimeout.Duration)
	}
	if c.SessionTTL.Duration != 0 {
		config.SessionTTL = time.Duration(c.SessionTTL.Duration)
	}
	if c.SessionStore != "" {
		config.SessionStore = c.SessionStore
	}
	if c.RedisAddr != "" {
		config.RedisAddr = c.RedisAddr
	}
	if c.RedisDB >= 0 {
		config.RedisDB = c.RedisDB
	}
}
