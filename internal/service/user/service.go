// Package user implements user administration: listing with role-based
// visibility, the assignable pool, the org hierarchy and CRUD guarded by
// the management hierarchy.
package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/config"
	"github.com/spars/crm-backend/internal/domain"
)

// userRepo defines the user repository interface needed by the user service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.UserWithRole, error)
	List(ctx context.Context, filter domain.UserFilter) ([]domain.UserWithRole, error)
	ListAssignable(ctx context.Context, managerID *uuid.UUID) ([]domain.UserWithRole, error)
	Create(ctx context.Context, u *domain.User) (*domain.UserWithRole, error)
	Update(ctx context.Context, u *domain.User) (*domain.UserWithRole, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// roleRepo defines the role repository interface needed by the user service.
type roleRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error)
}

// activityWriter records audit events.
type activityWriter interface {
	Record(ctx context.Context, e domain.ActivityLog) error
}

// Service implements user administration operations.
type Service struct {
	log      *slog.Logger
	users    userRepo
	roles    roleRepo
	activity activityWriter
	cfg      config.AuthConfig
}

// NewService creates a new user service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	roles roleRepo,
	activity activityWriter,
	cfg config.AuthConfig,
) *Service {
	return &Service{
		log:      logger.With("service", "user"),
		users:    users,
		roles:    roles,
		activity: activity,
		cfg:      cfg,
	}
}
