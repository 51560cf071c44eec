// Package sessions implements the session token registry: minting
// unguessable tokens, validating them cheaply, and revoking them.
//
// Storage is pluggable. The in-memory variant is process-local and lost on
// restart, acceptable for a single-node deployment; the Postgres and Redis
// variants are durable so any node can validate any token. All variants
// satisfy the same Registry contract and callers never branch on the mode.
package sessions

import (
	"context"

	"github.com/jobhunter/identity/internal/common"
	"github.com/jobhunter/identity/internal/models"
)

// tokenBytes is the raw entropy per token: 32 bytes = 256 bits.
const tokenBytes = 32

// maxIssueAttempts bounds regeneration on the statistically negligible
// token collision case. Hitting the bound means the randomness source is
// broken, not that we were unlucky.
const maxIssueAttempts = 3

// Registry issues, validates, and revokes session tokens.
type Registry interface {
	// Issue mints a token for userID with the configured TTL. It fails only
	// when randomness generation fails or storage is unavailable.
	Issue(ctx context.Context, userID string) (*models.SessionToken, error)

	// Validate returns the owning user ID. Absent, expired, and revoked
	// tokens are all reported as the single common.ErrInvalidSession; no
	// caller can tell the causes apart.
	Validate(ctx context.Context, token string) (string, error)

	// Revoke invalidates a token. Revoking an already-revoked or unknown
	// token is not an error.
	Revoke(ctx context.Context, token string) error
}

// Purger is implemented by registries whose storage does not expire entries
// on its own. Purging is an operational policy; validation-time filtering
// stays authoritative either way.
type Purger interface {
	// PurgeExpired deletes expired entries and returns how many were removed.
	PurgeExpired(ctx context.Context) (int64, error)
}

func newToken() (string, error) {
	return common.MakeRandToken(tokenBytes)
}
