// Package auth implements authentication operations: password login,
// current-user lookup and password change.
package auth

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/config"
	"github.com/spars/crm-backend/internal/domain"
)

// userRepo defines the user repository interface needed by the auth service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.UserWithRole, error)
	GetByEmail(ctx context.Context, email string) (*domain.UserWithRole, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hashed string) error
}

// activityWriter records audit events. Failures are logged, never
// propagated: an audit hiccup must not fail a login.
type activityWriter interface {
	Record(ctx context.Context, e domain.ActivityLog) error
}

// tokenIssuer defines the JWT management interface needed by the auth service.
type tokenIssuer interface {
	GenerateAccessToken(id auth.Identity) (string, error)
}

// Service implements auth operations.
type Service struct {
	log      *slog.Logger
	users    userRepo
	activity activityWriter
	tokens   tokenIssuer
	cfg      config.AuthConfig
}

// NewService creates a new auth service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	activity activityWriter,
	tokens tokenIssuer,
	cfg config.AuthConfig,
) *Service {
	return &Service{
		log:      logger.With("service", "auth"),
		users:    users,
		activity: activity,
		tokens:   tokens,
		cfg:      cfg,
	}
}
