package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/domain"
)

// Create adds a user. The caller must hold the users permission and sit
// high enough in the hierarchy to manage the target role. Sales managers
// creating executives always become their manager; marketing users never
// have one.
func (s *Service) Create(ctx context.Context, caller auth.Identity, input CreateInput) (*domain.UserWithRole, error) {
	if !caller.Permissions.CanWrite(domain.PermUsers) {
		return nil, domain.ErrForbidden
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	targetRole, err := s.roles.GetByID(ctx, input.RoleID)
	if err != nil {
		return nil, fmt.Errorf("user.Create get role: %w", err)
	}
	if err := s.checkManages(ctx, caller, *targetRole); err != nil {
		return nil, err
	}

	managerID := input.ManagerID
	switch targetRole.Name {
	case domain.RoleNameSalesExecutive:
		if caller.Class == domain.RoleSalesManager {
			id := caller.UserID
			managerID = &id
		}
	case domain.RoleNameMarketing:
		managerID = nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("user.Create hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		ID:             uuid.New(),
		Name:           input.Name,
		Email:          input.Email,
		HashedPassword: string(hashed),
		RoleID:         input.RoleID,
		ManagerID:      managerID,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return nil, fmt.Errorf("user.Create: %w", err)
	}

	s.recordUserAction(ctx, caller.UserID, domain.ActionCreate,
		fmt.Sprintf("Created user %s (%s)", created.Name, created.RoleName), created.ID)

	s.log.InfoContext(ctx, "user created",
		slog.String("user_id", created.ID.String()),
		slog.String("role", created.RoleName))

	return created, nil
}

// Update modifies a user. A role change requires the caller to manage
// the new role.
func (s *Service) Update(ctx context.Context, caller auth.Identity, id uuid.UUID, input UpdateInput) (*domain.UserWithRole, error) {
	if !caller.Permissions.CanWrite(domain.PermUsers) {
		return nil, domain.ErrForbidden
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user.Update get user: %w", err)
	}

	if input.RoleID != nil && *input.RoleID != existing.RoleID {
		newRole, err := s.roles.GetByID(ctx, *input.RoleID)
		if err != nil {
			return nil, fmt.Errorf("user.Update get role: %w", err)
		}
		if err := s.checkManages(ctx, caller, *newRole); err != nil {
			return nil, err
		}
		existing.RoleID = *input.RoleID
	}

	if input.Name != nil {
		existing.Name = *input.Name
	}
	if input.Email != nil {
		existing.Email = *input.Email
	}
	if input.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), s.cfg.BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("user.Update hash password: %w", err)
		}
		existing.HashedPassword = string(hashed)
	}
	switch {
	case input.ClearManager:
		existing.ManagerID = nil
	case input.ManagerID != nil:
		existing.ManagerID = input.ManagerID
	}
	existing.UpdatedAt = time.Now().UTC()

	updated, err := s.users.Update(ctx, &existing.User)
	if err != nil {
		return nil, fmt.Errorf("user.Update: %w", err)
	}

	s.recordUserAction(ctx, caller.UserID, domain.ActionUpdate,
		fmt.Sprintf("Updated user %s", updated.Name), updated.ID)

	return updated, nil
}

// Delete removes a user.
func (s *Service) Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) error {
	if !caller.Permissions.CanWrite(domain.PermUsers) {
		return domain.ErrForbidden
	}

	target, err := s.users.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("user.Delete get user: %w", err)
	}

	targetRole, err := s.roles.GetByID(ctx, target.RoleID)
	if err != nil {
		return fmt.Errorf("user.Delete get role: %w", err)
	}
	if err := s.checkManages(ctx, caller, *targetRole); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("user.Delete: %w", err)
	}

	s.recordUserAction(ctx, caller.UserID, domain.ActionDelete,
		fmt.Sprintf("Deleted user %s", target.Name), id)

	s.log.InfoContext(ctx, "user deleted", slog.String("user_id", id.String()))
	return nil
}

// checkManages verifies the caller's role outranks the target role.
func (s *Service) checkManages(ctx context.Context, caller auth.Identity, target domain.Role) error {
	me, err := s.users.GetByID(ctx, caller.UserID)
	if err != nil {
		return fmt.Errorf("look up caller: %w", err)
	}
	callerRole := domain.Role{HierarchyLevel: me.HierarchyLevel}
	if !callerRole.CanManage(target) {
		return domain.ErrForbidden
	}
	return nil
}

func (s *Service) recordUserAction(ctx context.Context, actorID uuid.UUID, action domain.ActionType, description string, targetID uuid.UUID) {
	entity := domain.EntityTypeUser
	if err := s.activity.Record(ctx, domain.ActivityLog{
		ID:          uuid.New(),
		UserID:      actorID,
		ActionType:  action,
		Description: description,
		EntityType:  &entity,
		EntityID:    &targetID,
		CreatedAt:   time.Now().UTC(),
	}); err != nil {
		s.log.WarnContext(ctx, "failed to record user activity",
			slog.String("action", action.String()),
			slog.String("error", err.Error()))
	}
}
