// Package snapshots exposes read-only views of the collaborator-owned data
// that goes into a UserContext: career profile, conversation log, and
// cached analyses. This subsystem never writes these tables; it only reads
// them, keyed by user ID.
package snapshots

import (
	"context"
	"encoding/json"

	"github.com/jobhunter/identity/internal/models"
)

// ProfileReader reads the career profile snapshot.
type ProfileReader interface {
	// Get returns the user's profile, or nil (and no error) when the user
	// has not filled one in yet.
	Get(ctx context.Context, userID string) (*models.Profile, error)
}

// ConversationReader reads the conversation log.
type ConversationReader interface {
	// Recent returns up to limit of the user's latest messages, oldest
	// first.
	Recent(ctx context.Context, userID string, limit int) ([]models.ConversationMessage, error)
}

// AnalysisReader reads the analysis cache.
type AnalysisReader interface {
	// Unexpired returns cached analyses that have no expiry or have not yet
	// expired, keyed by analysis type.
	Unexpired(ctx context.Context, userID string) (map[string]json.RawMessage, error)
}
