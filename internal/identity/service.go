// Package identity is the front door of the subsystem: registration,
// authentication, session lifecycle, and user context assembly. Callers in
// the agent orchestration layer depend on this package only; the
// repositories and stores behind it are wiring detail.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/jobhunter/identity/internal/common"
	"github.com/jobhunter/identity/internal/credentials"
	"github.com/jobhunter/identity/internal/logging"
	"github.com/jobhunter/identity/internal/models"
	"github.com/jobhunter/identity/internal/repositories/sessions"
	"github.com/jobhunter/identity/internal/repositories/snapshots"
	"github.com/jobhunter/identity/internal/repositories/users"
)

// conversationLimit caps how much of the conversation log goes into a
// UserContext.
const conversationLimit = 50

// Service composes the credential store, session registry, and snapshot
// readers behind a single API.
type Service struct {
	creds    *credentials.Service
	registry sessions.Registry
	users    users.Repository
	profiles snapshots.ProfileReader
	convs    snapshots.ConversationReader
	analyses snapshots.AnalysisReader
	log      logging.Logger
}

// New assembles the facade. The snapshot readers may share one
// implementation; they are accepted separately so tests can fake each view
// independently.
func New(creds *credentials.Service, registry sessions.Registry, usersRepo users.Repository,
	profiles snapshots.ProfileReader, convs snapshots.ConversationReader,
	analyses snapshots.AnalysisReader, log logging.Logger) *Service {
	return &Service{
		creds:    creds,
		registry: registry,
		users:    usersRepo,
		profiles: profiles,
		convs:    convs,
		analyses: analyses,
		log:      log,
	}
}

// Register creates a new user and returns its ID.
func (s *Service) Register(ctx context.Context, email, password string) (string, error) {
	id, err := s.creds.Create(ctx, email, password)
	if err != nil {
		return "", translate(err)
	}
	s.log.Info(ctx, "user registered", "user_id", id)
	return id, nil
}

// Authenticate verifies credentials and returns the user ID. It does not
// create a session; call CreateSession for that.
func (s *Service) Authenticate(ctx context.Context, email, password string) (string, error) {
	id, err := s.creds.Verify(ctx, email, password)
	if err != nil {
		return "", translate(err)
	}
	return id, nil
}

// CreateSession mints a session token for an already-authenticated user.
func (s *Service) CreateSession(ctx context.Context, userID string) (*models.SessionToken, error) {
	st, err := s.registry.Issue(ctx, userID)
	if err != nil {
		return nil, translate(err)
	}
	s.log.Info(ctx, "session created", "user_id", userID)
	return st, nil
}

// ValidateSession resolves a token to the owning user ID.
func (s *Service) ValidateSession(ctx context.Context, token string) (string, error) {
	id, err := s.registry.Validate(ctx, token)
	if err != nil {
		return "", translate(err)
	}
	return id, nil
}

// Logout revokes a session token. Unknown and already-revoked tokens are
// not errors.
func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.registry.Revoke(ctx, token); err != nil {
		return translate(err)
	}
	return nil
}

// LoadContext assembles the read-only UserContext projection: identity,
// profile snapshot, recent conversation (oldest first), and unexpired
// cached analyses. A missing profile or empty log is not an error.
func (s *Service) LoadContext(ctx context.Context, userID string) (*models.UserContext, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown user", common.ErrValidation)
		}
		return nil, translate(err)
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, translate(err)
	}
	conv, err := s.convs.Recent(ctx, userID, conversationLimit)
	if err != nil {
		return nil, translate(err)
	}
	analyses, err := s.analyses.Unexpired(ctx, userID)
	if err != nil {
		return nil, translate(err)
	}

	return &models.UserContext{
		UserID:         u.ID,
		Email:          u.Email,
		Profile:        profile,
		Conversation:   conv,
		CachedAnalyses: analyses,
		LastLoginAt:    u.LastLoginAt,
	}, nil
}

// translate keeps taxonomy sentinels intact and folds everything else,
// driver errors and internal failures included, into ErrConnectivity so no
// other error kind crosses the package boundary.
func translate(err error) error {
	switch {
	case errors.Is(err, common.ErrValidation),
		errors.Is(err, common.ErrDuplicateIdentity),
		errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrInvalidSession),
		errors.Is(err, common.ErrConnectivity),
		errors.Is(err, common.ErrMigrationFailure):
		return err
	default:
		return fmt.Errorf("%w: %v", common.ErrConnectivity, err)
	}
}
