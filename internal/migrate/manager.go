// Package migrate brings the schema to the latest known version
// deterministically. Applied versions are tracked in the schema_migrations
// ledger; a version is applied at most once no matter how many processes
// race to run the startup routine.
package migrate

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jobhunter/identity/internal/dbx"
	"github.com/jobhunter/identity/internal/logging"
	"github.com/jobhunter/identity/internal/models"
)

// Migration is one versioned schema change. Version must be unique and
// lexically sortable; Statement is executed verbatim.
type Migration struct {
	Version     string
	Description string
	Statement   string
}

// Manager applies migrations and answers ledger queries.
type Manager struct {
	db  *sql.DB
	log logging.Logger
}

func NewManager(db *sql.DB, log logging.Logger) *Manager {
	return &Manager{db: db, log: log}
}

const ledgerDDL = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		description TEXT,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

// EnsureLedger creates the ledger table when it does not exist yet.
func (m *Manager) EnsureLedger(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, ledgerDDL); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Apply executes mig.Statement and records the ledger entry as a single
// atomic unit. When the version is already recorded it returns nil without
// re-executing the statement.
//
// The ledger row is inserted first, inside the same transaction as the DDL.
// The primary key on version is the final arbiter under concurrency: a
// racer blocked on the insert observes the conflict after the winner
// commits, gets zero affected rows, and treats the version as already
// applied. A failing statement rolls the ledger row back with it, so a
// half-applied version is never observable.
func (m *Manager) Apply(ctx context.Context, mig Migration) error {
	if err := m.EnsureLedger(ctx); err != nil {
		return err
	}

	applied := false
	err := dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, description)
			 VALUES ($1, $2)
			 ON CONFLICT (version) DO NOTHING`,
			mig.Version, mig.Description)
		if err != nil {
			return fmt.Errorf("ledger write: %w", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("ledger write: %w", err)
		}
		if n == 0 {
			// Already applied, possibly by a concurrent starter.
			return nil
		}

		if _, err := tx.ExecContext(ctx, mig.Statement); err != nil {
			return fmt.Errorf("statement %s: %w", mig.Version, err)
		}
		applied = true
		return nil
	})
	if err != nil {
		return err
	}

	if applied {
		m.log.Info(ctx, "migration applied", "version", mig.Version, "description", mig.Description)
	} else {
		m.log.Debug(ctx, "migration already applied, skipping", "version", mig.Version)
	}
	return nil
}

// IsApplied reports whether version is recorded in the ledger.
func (m *Manager) IsApplied(ctx context.Context, version string) (bool, error) {
	var n int
	err := m.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM schema_migrations WHERE version = $1`, version).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

// ListApplied returns the ledger contents ordered by application time.
func (m *Manager) ListApplied(ctx context.Context) ([]models.MigrationRecord, error) {
	rows, err := m.db.QueryContext(ctx,
		`SELECT version, description, applied_at
		 FROM schema_migrations
		 ORDER BY applied_at`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var records []models.MigrationRecord
	for rows.Next() {
		var r models.MigrationRecord
		if err := rows.Scan(&r.Version, &r.Description, &r.AppliedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return records, nil
}
