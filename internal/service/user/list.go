package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/domain"
)

// List returns users visible to the caller. Administrators see everyone,
// sales managers see only their own team, anyone else needs the users
// permission.
func (s *Service) List(ctx context.Context, caller auth.Identity, filter domain.UserFilter) ([]domain.UserWithRole, error) {
	switch caller.Class {
	case domain.RoleAdmin:
		// unrestricted
	case domain.RoleSalesManager:
		if filter.ManagerID != nil && *filter.ManagerID != caller.UserID {
			return nil, domain.ErrForbidden
		}
		id := caller.UserID
		filter.ManagerID = &id
	default:
		if !caller.Permissions.CanRead(domain.PermUsers) {
			return nil, domain.ErrForbidden
		}
	}

	users, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("user.List: %w", err)
	}
	return users, nil
}

// Get returns one user by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.UserWithRole, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user.Get: %w", err)
	}
	return u, nil
}

// Assignable returns the pool of users leads may be assigned to: sales
// executives only. Sales managers see only executives on their own team.
func (s *Service) Assignable(ctx context.Context, caller auth.Identity) ([]domain.UserWithRole, error) {
	var managerID *uuid.UUID
	if caller.Class == domain.RoleSalesManager {
		id := caller.UserID
		managerID = &id
	}

	users, err := s.users.ListAssignable(ctx, managerID)
	if err != nil {
		return nil, fmt.Errorf("user.Assignable: %w", err)
	}
	return users, nil
}

// Hierarchy builds the org tree: managers with their reporting
// executives, plus admins, marketing users and executives without a
// manager.
func (s *Service) Hierarchy(ctx context.Context, caller auth.Identity) (*domain.Hierarchy, error) {
	if !caller.Permissions.CanRead(domain.PermUsers) {
		return nil, domain.ErrForbidden
	}

	users, err := s.users.List(ctx, domain.UserFilter{})
	if err != nil {
		return nil, fmt.Errorf("user.Hierarchy: %w", err)
	}

	h := &domain.Hierarchy{}
	managerIdx := make(map[uuid.UUID]int)

	for _, u := range users {
		switch u.Class() {
		case domain.RoleAdmin:
			h.Admins = append(h.Admins, u)
		case domain.RoleSalesManager:
			managerIdx[u.ID] = len(h.Managers)
			h.Managers = append(h.Managers, domain.HierarchyNode{User: u})
		case domain.RoleMarketing:
			h.Marketing = append(h.Marketing, u)
		}
	}

	for _, u := range users {
		if u.Class() != domain.RoleSalesExecutive {
			continue
		}
		if u.ManagerID != nil {
			if idx, ok := managerIdx[*u.ManagerID]; ok {
				h.Managers[idx].Reports = append(h.Managers[idx].Reports, u)
				continue
			}
		}
		h.Unassigned = append(h.Unassigned, u)
	}

	return h, nil
}
