package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jobhunter/identity/internal/common"
	"github.com/jobhunter/identity/internal/dbx"
	"github.com/jobhunter/identity/internal/models"
)

const uniqueViolation = "23505"

// PostgresRegistry stores sessions in the sessions table, required for
// multi-node deployments where any node must validate any token. The token
// primary key is the arbiter of uniqueness under concurrent issuance.
type PostgresRegistry struct {
	db  dbx.DBTX
	ttl time.Duration
	now func() time.Time
}

func NewPostgresRegistry(db dbx.DBTX, ttl time.Duration) *PostgresRegistry {
	return &PostgresRegistry{db: db, ttl: ttl, now: time.Now}
}

func (r *PostgresRegistry) Issue(ctx context.Context, userID string) (*models.SessionToken, error) {
	query := `
		INSERT INTO sessions (token, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`

	for attempt := 0; attempt < maxIssueAttempts; attempt++ {
		token, err := newToken()
		if err != nil {
			return nil, fmt.Errorf("token generation: %w", err)
		}

		createdAt := r.now()
		s := models.SessionToken{
			Token:     token,
			UserID:    userID,
			CreatedAt: createdAt,
			ExpiresAt: createdAt.Add(r.ttl),
		}

		_, err = r.db.ExecContext(ctx, query, s.Token, s.UserID, s.CreatedAt, s.ExpiresAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				// Token collision; regenerate and retry.
				continue
			}
			return nil, fmt.Errorf("db error: %w", err)
		}
		return &s, nil
	}

	return nil, fmt.Errorf("token generation: %w", common.ErrInternal)
}

// Validate filters on expires_at in SQL, so an expired row answers exactly
// like a missing one.
func (r *PostgresRegistry) Validate(ctx context.Context, token string) (string, error) {
	query := `
		SELECT user_id
		FROM sessions
		WHERE token = $1 AND expires_at > $2
	`

	var userID string
	err := r.db.QueryRowContext(ctx, query, token, r.now()).Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrInvalidSession
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return userID, nil
}

func (r *PostgresRegistry) Revoke(ctx context.Context, token string) error {
	query := `
		DELETE FROM sessions
		WHERE token = $1
	`
	if _, err := r.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRegistry) PurgeExpired(ctx context.Context) (int64, error) {
	query := `
		DELETE FROM sessions
		WHERE expires_at <= $1
	`
	res, err := r.db.ExecContext(ctx, query, r.now())
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
