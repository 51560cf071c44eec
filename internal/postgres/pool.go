// Package postgres owns the bounded connection pool every storage-backed
// component borrows from. It is created once at startup with fixed bounds
// and passed explicitly to the components that need it; nothing reaches it
// through a global.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/jobhunter/identity/internal/common"
	"github.com/jobhunter/identity/internal/config"
)

// Pool wraps *sql.DB with the subsystem's pool policy. The max size cap is
// enforced by database/sql itself, so callers cannot obtain more live
// connections than configured.
type Pool struct {
	db             *sql.DB
	acquireTimeout time.Duration
}

// BuildDSN assembles a pgx URL-style DSN from the discrete config fields.
func BuildDSN(cfg *config.Config) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.DBUser, cfg.DBPassword),
		Host:   net.JoinHostPort(cfg.DBHost, strconv.Itoa(cfg.DBPort)),
		Path:   cfg.DBName,
	}
	q := url.Values{}
	q.Set("sslmode", cfg.DBSSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// New opens the pool described by cfg and verifies connectivity with a ping
// bounded by the configured acquire timeout.
func New(cfg *config.Config) (*Pool, error) {
	db, err := sql.Open("pgx", BuildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	db.SetMaxOpenConns(cfg.PoolMaxSize)
	db.SetMaxIdleConns(cfg.PoolMinSize)

	p := &Pool{db: db, acquireTimeout: cfg.PoolAcquireTimeout}

	ctx, cancel := context.WithTimeout(context.Background(), p.acquireTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping failed: %v", common.ErrConnectivity, err)
	}

	return p, nil
}

// NewWithDB wraps an existing handle, used by tests and by embedders that
// manage their own *sql.DB lifecycle.
func NewWithDB(db *sql.DB, acquireTimeout time.Duration) *Pool {
	return &Pool{db: db, acquireTimeout: acquireTimeout}
}

// DB returns the pooled handle. Each operation run on it checks a
// connection out of the pool and returns it when the operation finishes.
func (p *Pool) DB() *sql.DB {
	return p.db
}

// Acquire checks a single connection out for exclusive use. It blocks while
// the pool is exhausted and fails with a connectivity error once the
// configured acquire timeout elapses. The caller owns the connection until
// it calls Close on it, which returns it to the pool.
func (p *Pool) Acquire(ctx context.Context) (*sql.Conn, error) {
	ctx, cancel := context.WithTimeout(ctx, p.acquireTimeout)
	defer cancel()

	conn, err := p.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: acquire: %v", common.ErrConnectivity, err)
	}
	return conn, nil
}

// WithConn acquires a connection, runs fn with it, and releases it on every
// exit path including panics.
func (p *Pool) WithConn(ctx context.Context, fn func(ctx context.Context, conn *sql.Conn) error) error {
	conn, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	return fn(ctx, conn)
}

// Stats exposes the underlying pool counters for diagnostics.
func (p *Pool) Stats() sql.DBStats {
	return p.db.Stats()
}

// Close drains and closes the pool. Call it last during teardown, after the
// components borrowing from the pool have stopped.
func (p *Pool) Close() error {
	return p.db.Close()
}
