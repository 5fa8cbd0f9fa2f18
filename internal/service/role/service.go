// Package role implements role administration and permission lookup.
package role

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/domain"
)

// roleRepo defines the role repository interface needed by the role service.
type roleRepo interface {
	List(ctx context.Context) ([]domain.Role, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error)
	Create(ctx context.Context, role *domain.Role) error
	Update(ctx context.Context, role *domain.Role) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// userRepo is used to guard against deleting a role still in use.
type userRepo interface {
	List(ctx context.Context, filter domain.UserFilter) ([]domain.UserWithRole, error)
}

// Service implements role operations.
type Service struct {
	log   *slog.Logger
	roles roleRepo
	users userRepo
}

// NewService creates a new role service instance.
func NewService(logger *slog.Logger, roles roleRepo, users userRepo) *Service {
	return &Service{
		log:   logger.With("service", "role"),
		roles: roles,
		users: users,
	}
}

// List returns all roles ordered by seniority.
func (s *Service) List(ctx context.Context, caller auth.Identity) ([]domain.Role, error) {
	if !caller.Permissions.CanRead(domain.PermRoles) {
		return nil, domain.ErrForbidden
	}
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("role.List: %w", err)
	}
	return roles, nil
}

// Get returns one role.
func (s *Service) Get(ctx context.Context, caller auth.Identity, id uuid.UUID) (*domain.Role, error) {
	if !caller.Permissions.CanRead(domain.PermRoles) {
		return nil, domain.ErrForbidden
	}
	r, err := s.roles.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("role.Get: %w", err)
	}
	return r, nil
}

// Create adds a role.
func (s *Service) Create(ctx context.Context, caller auth.Identity, input Input) (*domain.Role, error) {
	if !caller.Permissions.CanWrite(domain.PermRoles) {
		return nil, domain.ErrForbidden
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	r := &domain.Role{
		ID:             uuid.New(),
		Name:           input.Name,
		Description:    input.Description,
		Permissions:    input.Permissions,
		HierarchyLevel: input.HierarchyLevel,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if r.Permissions == nil {
		r.Permissions = domain.Permissions{}
	}

	if err := s.roles.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("role.Create: %w", err)
	}

	s.log.InfoContext(ctx, "role created", slog.String("role", r.Name))
	return r, nil
}

// Update modifies a role. Permission edits take effect on the next login,
// when a fresh token is issued.
func (s *Service) Update(ctx context.Context, caller auth.Identity, id uuid.UUID, input Input) (*domain.Role, error) {
	if !caller.Permissions.CanWrite(domain.PermRoles) {
		return nil, domain.ErrForbidden
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.roles.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("role.Update get role: %w", err)
	}

	existing.Name = input.Name
	existing.Description = input.Description
	existing.HierarchyLevel = input.HierarchyLevel
	if input.Permissions != nil {
		existing.Permissions = input.Permissions
	}
	existing.UpdatedAt = time.Now().UTC()

	if err := s.roles.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("role.Update: %w", err)
	}

	s.log.InfoContext(ctx, "role updated", slog.String("role", existing.Name))
	return existing, nil
}

// Delete removes a role. A role still held by users cannot be deleted.
func (s *Service) Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) error {
	if !caller.Permissions.CanWrite(domain.PermRoles) {
		return domain.ErrForbidden
	}

	r, err := s.roles.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("role.Delete get role: %w", err)
	}

	holders, err := s.users.List(ctx, domain.UserFilter{RoleName: &r.Name})
	if err != nil {
		return fmt.Errorf("role.Delete check holders: %w", err)
	}
	if len(holders) > 0 {
		return fmt.Errorf("role %q still has %d users: %w", r.Name, len(holders), domain.ErrConflict)
	}

	if err := s.roles.Delete(ctx, id); err != nil {
		return fmt.Errorf("role.Delete: %w", err)
	}

	s.log.InfoContext(ctx, "role deleted", slog.String("role", r.Name))
	return nil
}
