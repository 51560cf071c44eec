package sessions

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jobhunter/identity/internal/common"
	"github.com/jobhunter/identity/internal/models"
)

// MemoryRegistry keeps sessions in a process-local map. Expired entries are
// dropped lazily when Validate touches them and in bulk by PurgeExpired.
type MemoryRegistry struct {
	mu       sync.RWMutex
	sessions map[string]models.SessionToken
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryRegistry(ttl time.Duration) *MemoryRegistry {
	return &MemoryRegistry{
		sessions: make(map[string]models.SessionToken),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (r *MemoryRegistry) Issue(ctx context.Context, userID string) (*models.SessionToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for attempt := 0; attempt < maxIssueAttempts; attempt++ {
		token, err := newToken()
		if err != nil {
			return nil, fmt.Errorf("token generation: %w", err)
		}
		if _, exists := r.sessions[token]; exists {
			continue
		}

		createdAt := r.now()
		s := models.SessionToken{
			Token:     token,
			UserID:    userID,
			CreatedAt: createdAt,
			ExpiresAt: createdAt.Add(r.ttl),
		}
		r.sessions[token] = s
		return &s, nil
	}

	return nil, fmt.Errorf("token generation: %w", common.ErrInternal)
}

func (r *MemoryRegistry) Validate(ctx context.Context, token string) (string, error) {
	r.mu.RLock()
	s, ok := r.sessions[token]
	r.mu.RUnlock()

	if !ok {
		return "", common.ErrInvalidSession
	}
	if !r.now().Before(s.ExpiresAt) {
		r.mu.Lock()
		delete(r.sessions, token)
		r.mu.Unlock()
		return "", common.ErrInvalidSession
	}
	return s.UserID, nil
}

func (r *MemoryRegistry) Revoke(ctx context.Context, token string) error {
	r.mu.Lock()
	delete(r.sessions, token)
	r.mu.Unlock()
	return nil
}

func (r *MemoryRegistry) PurgeExpired(ctx context.Context) (int64, error) {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for token, s := range r.sessions {
		if !now.Before(s.ExpiresAt) {
			delete(r.sessions, token)
			removed++
		}
	}
	return removed, nil
}
