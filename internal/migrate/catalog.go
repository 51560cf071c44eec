package migrate

import (
	"context"
	"fmt"

	"github.com/jobhunter/identity/internal/common"
)

// schemaDDL creates every core table. Statements are idempotent so a
// version recorded in the ledger after a partial historical run does not
// wedge a redeployment.
const schemaDDL = `
	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email VARCHAR(255) UNIQUE NOT NULL,
		password_digest VARCHAR(255) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		last_login_at TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS user_profiles (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID REFERENCES users(id) ON DELETE CASCADE,
		background TEXT,
		career_goals TEXT,
		target_roles JSONB,
		preferences JSONB,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(user_id)
	);

	CREATE TABLE IF NOT EXISTS conversations (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID REFERENCES users(id) ON DELETE CASCADE,
		message TEXT NOT NULL,
		role VARCHAR(50) NOT NULL,
		specialists_consulted JSONB,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS cached_analyses (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID REFERENCES users(id) ON DELETE CASCADE,
		analysis_type VARCHAR(100) NOT NULL,
		analysis_data JSONB NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		expires_at TIMESTAMP,
		UNIQUE(user_id, analysis_type)
	)`

const indexesDDL = `
	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
	CREATE INDEX IF NOT EXISTS idx_profiles_user_id ON user_profiles(user_id);
	CREATE INDEX IF NOT EXISTS idx_conversations_user_id ON conversations(user_id);
	CREATE INDEX IF NOT EXISTS idx_conversations_created_at ON conversations(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_cached_analyses_user_id ON cached_analyses(user_id);
	CREATE INDEX IF NOT EXISTS idx_cached_analyses_expires_at ON cached_analyses(expires_at)`

// sessionsDDL backs the durable session registry. Single-node deployments
// running the in-memory registry still get the table; it stays empty.
const sessionsDDL = `
	CREATE TABLE IF NOT EXISTS sessions (
		token VARCHAR(255) PRIMARY KEY,
		user_id UUID REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		expires_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id);
	CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at)`

// Catalog returns the built-in migrations in application order.
func Catalog() []Migration {
	return []Migration{
		{
			Version:     "001_initial_schema",
			Description: "Create initial database schema with all tables",
			Statement:   schemaDDL,
		},
		{
			Version:     "002_create_indexes",
			Description: "Create performance indexes on all tables",
			Statement:   indexesDDL,
		},
		{
			Version:     "003_create_sessions",
			Description: "Create durable session storage",
			Statement:   sessionsDDL,
		},
	}
}

// Up applies the built-in catalog in order. Any failure halts immediately
// and wraps ErrMigrationFailure: running against an inconsistent schema
// would be worse than not starting.
func (m *Manager) Up(ctx context.Context) error {
	for _, mig := range Catalog() {
		if err := m.Apply(ctx, mig); err != nil {
			return fmt.Errorf("%w: %s: %v", common.ErrMigrationFailure, mig.Version, err)
		}
	}
	return nil
}
