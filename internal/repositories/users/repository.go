// Package users declares the repository contract for durable user identity
// records.
package users

import (
	"context"
	"time"

	"github.com/jobhunter/identity/internal/models"
)

// Repository defines operations over the users relation.
type Repository interface {
	// Create persists a new user. A normalized email collision returns
	// common.ErrDuplicateIdentity.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail looks a user up by normalized email. Returns
	// common.ErrNotFound when absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID looks a user up by identifier. Returns common.ErrNotFound
	// when absent.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// TouchLastLogin stamps last_login_at (and updated_at) for the user and
	// returns the new timestamp.
	TouchLastLogin(ctx context.Context, id string) (time.Time, error)
}
