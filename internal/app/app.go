// Package app wires the identity subsystem together: configuration, pool,
// schema migrations, repositories, and services. Embedding processes and
// cmd/migrate go through App instead of assembling packages by hand.
package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jobhunter/identity/internal/config"
	"github.com/jobhunter/identity/internal/credentials"
	"github.com/jobhunter/identity/internal/identity"
	"github.com/jobhunter/identity/internal/logging"
	"github.com/jobhunter/identity/internal/migrate"
	"github.com/jobhunter/identity/internal/password"
	"github.com/jobhunter/identity/internal/postgres"
	"github.com/jobhunter/identity/internal/repositories/sessions"
	"github.com/jobhunter/identity/internal/repositories/snapshots"
	"github.com/jobhunter/identity/internal/repositories/users"
)

// App owns the wired subsystem and its teardown order.
type App struct {
	config   *config.Config
	logger   logging.Logger
	pool     *postgres.Pool
	redis    *redis.Client
	identity *identity.Service
	migrator *migrate.Manager
}

// NewApp builds the full subsystem from cfg: logger, connection pool,
// migration manager, repositories, session registry per cfg.SessionStore,
// then the facade. Migrations are NOT applied here; call Migrate or use
// cmd/migrate first.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewDefault()

	pool, err := postgres.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	a := &App{config: cfg, logger: logger, pool: pool}
	a.migrator = migrate.NewManager(pool.DB(), logger)

	usersRepo := users.NewPostgresRepository(pool.DB())
	creds, err := credentials.NewService(usersRepo, password.NewBcryptHasher())
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("credential store init error: %w", err)
	}

	registry, err := a.buildRegistry(ctx)
	if err != nil {
		pool.Close()
		return nil, err
	}

	reader := snapshots.NewPostgresReader(pool.DB())
	a.identity = identity.New(creds, registry, usersRepo, reader, reader, reader, logger)

	logger.Info(ctx, "identity subsystem ready",
		"session_store", cfg.SessionStore, "pool_max", cfg.PoolMaxSize)
	return a, nil
}

func (a *App) buildRegistry(ctx context.Context) (sessions.Registry, error) {
	switch a.config.SessionStore {
	case config.SessionStoreMemory:
		return sessions.NewMemoryRegistry(a.config.SessionTTL), nil
	case config.SessionStorePostgres:
		return sessions.NewPostgresRegistry(a.pool.DB(), a.config.SessionTTL), nil
	case config.SessionStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr: a.config.RedisAddr,
			DB:   a.config.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis init error: %w", err)
		}
		a.redis = client
		return sessions.NewRedisRegistry(client, a.config.SessionTTL), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", a.config.SessionStore)
	}
}

// Identity returns the facade service.
func (a *App) Identity() *identity.Service {
	return a.identity
}

// Migrator returns the schema migration manager.
func (a *App) Migrator() *migrate.Manager {
	return a.migrator
}

// Migrate applies every pending catalog migration.
func (a *App) Migrate(ctx context.Context) error {
	return a.migrator.Up(ctx)
}

// Close releases resources. The pool goes down last so dependents are
// never left with a closed database underneath them.
func (a *App) Close() error {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn(context.Background(), "redis close error", "error", err.Error())
		}
	}
	return a.pool.Close()
}
