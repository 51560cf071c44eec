package snapshots

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jobhunter/identity/internal/dbx"
	"github.com/jobhunter/identity/internal/models"
)

// PostgresReader implements all three reader interfaces over dbx.DBTX.
type PostgresReader struct {
	db dbx.DBTX
}

func NewPostgresReader(db dbx.DBTX) *PostgresReader {
	return &PostgresReader{db: db}
}

func (r *PostgresReader) Get(ctx context.Context, userID string) (*models.Profile, error) {
	query := `
		SELECT background, career_goals, target_roles, preferences
		FROM user_profiles
		WHERE user_id = $1
	`

	// JSONB columns are scanned through plain []byte: a NULL comes back as
	// a nil slice, which json.RawMessage cannot receive directly.
	var background, careerGoals sql.NullString
	var targetRoles, preferences []byte
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&background, &careerGoals, &targetRoles, &preferences)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// No profile yet; the context simply carries none.
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &models.Profile{
		Background:  background.String,
		CareerGoals: careerGoals.String,
		TargetRoles: json.RawMessage(targetRoles),
		Preferences: json.RawMessage(preferences),
	}, nil
}

// Recent fetches the newest messages and reverses them so the caller gets
// chronological order, mirroring how the conversation is replayed.
func (r *PostgresReader) Recent(ctx context.Context, userID string, limit int) ([]models.ConversationMessage, error) {
	query := `
		SELECT message, role, specialists_consulted, created_at
		FROM conversations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var newestFirst []models.ConversationMessage
	for rows.Next() {
		var m models.ConversationMessage
		var specialists []byte
		if err := rows.Scan(&m.Message, &m.Role, &specialists, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		m.SpecialistsConsulted = json.RawMessage(specialists)
		newestFirst = append(newestFirst, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	messages := make([]models.ConversationMessage, len(newestFirst))
	for i, m := range newestFirst {
		messages[len(newestFirst)-1-i] = m
	}
	return messages, nil
}

func (r *PostgresReader) Unexpired(ctx context.Context, userID string) (map[string]json.RawMessage, error) {
	query := `
		SELECT analysis_type, analysis_data
		FROM cached_analyses
		WHERE user_id = $1
		AND (expires_at IS NULL OR expires_at > CURRENT_TIMESTAMP)
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	analyses := make(map[string]json.RawMessage)
	for rows.Next() {
		var analysisType string
		var data json.RawMessage
		if err := rows.Scan(&analysisType, &data); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		analyses[analysisType] = data
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return analyses, nil
}
