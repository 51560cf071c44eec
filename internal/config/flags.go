package config

import (
	"flag"
	"os"
	"time"

	"github.com/jobhunter/identity/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-db-host string        PostgreSQL host
//	-db-port int           PostgreSQL port
//	-db-name string        database name
//	-db-user string        database user
//	-db-password string    database password
//	-pool-min int          minimum pool size
//	-pool-max int          maximum pool size
//	-session-ttl int       session token validity, hours
//	-session-store string  session store mode: memory | postgres | redis
//	-redis-addr string     redis address (redis mode only)
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes
//     using flagx.FilterArgs, avoiding collisions with flags defined by the
//     embedding process.
//   - The TTL flag is accepted as an integer in hours and converted to a
//     time.Duration.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-db-host", "-db-port", "-db-name", "-db-user", "-db-password",
		"-pool-min", "-pool-max", "-session-ttl", "-session-store", "-redis-addr",
	})

	fs := flag.NewFlagSet("identity", flag.ContinueOnError)

	fs.StringVar(&config.DBHost, "db-host", config.DBHost, "database host")
	fs.IntVar(&config.DBPort, "db-port", config.DBPort, "database port")
	fs.StringVar(&config.DBName, "db-name", config.DBName, "database name")
	fs.StringVar(&config.DBUser, "db-user", config.DBUser, "database user")
	fs.StringVar(&config.DBPassword, "db-password", config.DBPassword, "database password")

	fs.IntVar(&config.PoolMinSize, "pool-min", config.PoolMinSize, "minimum pool size")
	fs.IntVar(&config.PoolMaxSize, "pool-max", config.PoolMaxSize, "maximum pool size")

	sessionTTLHours := fs.Int("session-ttl", int(config.SessionTTL.Hours()), "session token validity (in hours)")

	fs.StringVar(&config.SessionStore, "session-store", config.SessionStore, "session store mode: memory | postgres | redis")
	fs.StringVar(&config.RedisAddr, "redis-addr", config.RedisAddr, "redis address")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// SessionTTL is rewritten only when the flag was actually passed;
	// converting the default back through whole hours would truncate a
	// sub-hour TTL set by an earlier layer.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "session-ttl" {
			config.SessionTTL = time.Duration(*sessionTTLHours) * time.Hour
		}
	})
}
