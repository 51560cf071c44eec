// Package credentials implements durable, collision-free user identity with
// irreversible password storage.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jobhunter/identity/internal/common"
	"github.com/jobhunter/identity/internal/models"
	"github.com/jobhunter/identity/internal/password"
	"github.com/jobhunter/identity/internal/repositories/users"
)

const minPasswordLength = 8

// Service verifies and creates user identities. The digest function is an
// injected capability so the work factor can change without touching this
// code.
type Service struct {
	repo   users.Repository
	hasher password.Hasher

	// dummyDigest is compared against when the email is unknown, so a
	// failed lookup costs the same as a failed password check and the two
	// causes stay indistinguishable to the caller.
	dummyDigest string
}

func NewService(repo users.Repository, hasher password.Hasher) (*Service, error) {
	dummy, err := hasher.Hash("credential-timing-placeholder")
	if err != nil {
		return nil, fmt.Errorf("hasher init: %w", err)
	}
	return &Service{repo: repo, hasher: hasher, dummyDigest: dummy}, nil
}

// NormalizeEmail maps an email to its canonical stored form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create registers a new identity and returns its ID. The plaintext
// password is hashed immediately and never persisted or logged.
func (s *Service) Create(ctx context.Context, email, plaintext string) (string, error) {
	email = NormalizeEmail(email)

	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%w: invalid email format", common.ErrValidation)
	}
	if utf8.RuneCountInString(plaintext) < minPasswordLength {
		return "", fmt.Errorf("%w: password must be at least %d characters long",
			common.ErrValidation, minPasswordLength)
	}

	digest, err := s.hasher.Hash(plaintext)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		ID:             uuid.NewString(),
		Email:          email,
		PasswordDigest: digest,
	}
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateIdentity) {
			return "", common.ErrDuplicateIdentity
		}
		return "", fmt.Errorf("creating user: %w", err)
	}
	return created.ID, nil
}

// Verify checks the email/password pair, stamps last_login_at on success,
// and returns the user ID. An unknown email and a wrong password produce
// the same ErrInvalidCredentials to prevent account enumeration.
func (s *Service) Verify(ctx context.Context, email, plaintext string) (string, error) {
	email = NormalizeEmail(email)

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.hasher.Compare(s.dummyDigest, plaintext)
			return "", common.ErrInvalidCredentials
		}
		return "", fmt.Errorf("looking up user: %w", err)
	}

	if !s.hasher.Compare(user.PasswordDigest, plaintext) {
		return "", common.ErrInvalidCredentials
	}

	if _, err := s.repo.TouchLastLogin(ctx, user.ID); err != nil {
		return "", fmt.Errorf("updating last login: %w", err)
	}
	return user.ID, nil
}
