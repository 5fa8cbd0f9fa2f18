package lead

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/domain"
)

// scopeFor maps the caller's role class to a repository scope.
// Administrators see every lead, sales managers see their executives'
// leads and everyone else sees only leads assigned to them.
func scopeFor(caller auth.Identity) domain.LeadScope {
	switch {
	case caller.Class.SeesAllLeads():
		return domain.LeadScope{}
	case caller.Class == domain.RoleSalesManager:
		return domain.LeadScope{TeamOf: &caller.UserID}
	default:
		return domain.LeadScope{AssignedTo: &caller.UserID}
	}
}

// List returns the leads visible to the caller, newest first.
func (s *Service) List(ctx context.Context, caller auth.Identity) ([]domain.LeadWithNames, error) {
	leads, err := s.leads.List(ctx, scopeFor(caller))
	if err != nil {
		return nil, fmt.Errorf("lead.List: %w", err)
	}
	for i := range leads {
		domain.NormalizeSource(&leads[i].Lead)
	}
	return leads, nil
}

// Get returns a single lead by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.LeadWithNames, error) {
	l, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lead.Get: %w", err)
	}
	domain.NormalizeSource(&l.Lead)
	return l, nil
}
