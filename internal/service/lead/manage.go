package lead

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/domain"
)

// resolveAssignee validates a prospective lead owner. New leads may go
// to anyone at hierarchy level 2 or below; reassignment is restricted to
// sales executives only. Sales managers may only assign within their
// own team.
func (s *Service) resolveAssignee(ctx context.Context, caller auth.Identity, assigneeID uuid.UUID, executiveOnly bool) (*domain.UserWithRole, error) {
	assignee, err := s.users.GetByID(ctx, assigneeID)
	if err != nil {
		return nil, domain.NewValidationError("assigned_to", "user does not exist")
	}

	if executiveOnly {
		if assignee.HierarchyLevel != 2 {
			return nil, domain.NewValidationError("assigned_to", "leads can only be reassigned to sales executives")
		}
	} else if assignee.HierarchyLevel < 2 {
		return nil, domain.NewValidationError("assigned_to", "leads cannot be assigned to managers or administrators")
	}

	if caller.Class == domain.RoleSalesManager {
		if assignee.ManagerID == nil || *assignee.ManagerID != caller.UserID {
			return nil, fmt.Errorf("assignee %q is not on your team: %w", assignee.Name, domain.ErrForbidden)
		}
	}
	return assignee, nil
}

// Create adds a new lead, optionally assigning it on the way in.
func (s *Service) Create(ctx context.Context, caller auth.Identity, in CreateInput) (*domain.LeadWithNames, error) {
	if !caller.Permissions.CanWrite(domain.PermLeads) {
		return nil, fmt.Errorf("lead.Create: %w", domain.ErrForbidden)
	}
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("lead.Create: %w", err)
	}

	now := time.Now().UTC()
	l := domain.Lead{
		ID:               uuid.New(),
		Name:             in.Name,
		Email:            in.Email,
		Phone:            in.Phone,
		Company:          in.Company,
		Designation:      in.Designation,
		SourceType:       in.SourceType,
		Source:           in.Source,
		Status:           in.Status,
		Stage:            in.Stage,
		Assigned:         domain.UnassignedLabel,
		CreatedBy:        &caller.UserID,
		FollowUpRequired: in.FollowUpRequired,
		FollowUpDate:     in.FollowUpDate,
		FollowUpTime:     in.FollowUpTime,
		FollowUpStatus:   in.FollowUpStatus,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if in.AssignedTo != nil {
		assignee, err := s.resolveAssignee(ctx, caller, *in.AssignedTo, false)
		if err != nil {
			return nil, fmt.Errorf("lead.Create: %w", err)
		}
		l.AssignedTo = &assignee.ID
		l.Assigned = assignee.Name
	}

	created, err := s.leads.Create(ctx, &l)
	if err != nil {
		return nil, fmt.Errorf("lead.Create: %w", err)
	}

	et, eid := leadEntity(created.ID)
	s.record(ctx, domain.ActivityLog{
		UserID:      caller.UserID,
		ActionType:  domain.ActionCreate,
		Description: fmt.Sprintf("Created lead: %s", created.Name),
		EntityType:  et,
		EntityID:    eid,
	})

	domain.NormalizeSource(&created.Lead)
	s.log.InfoContext(ctx, "lead created", "lead_id", created.ID, "assigned", created.Assigned)
	return created, nil
}

// Update modifies a lead. Reassignment moves creator credit to whoever
// performed the assignment; unassigning leaves it untouched.
func (s *Service) Update(ctx context.Context, caller auth.Identity, id uuid.UUID, in UpdateInput) (*domain.LeadWithNames, error) {
	if !caller.Permissions.CanWrite(domain.PermLeadStatusUpdate) {
		return nil, fmt.Errorf("lead.Update: %w", domain.ErrForbidden)
	}
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("lead.Update: %w", err)
	}

	existing, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lead.Update: %w", err)
	}
	l := existing.Lead
	oldStatus := l.Status

	if in.Name != nil {
		l.Name = *in.Name
	}
	if in.Email != nil {
		l.Email = in.Email
	}
	if in.Phone != nil {
		l.Phone = in.Phone
	}
	if in.Company != nil {
		l.Company = in.Company
	}
	if in.Designation != nil {
		l.Designation = in.Designation
	}
	if in.SourceType != nil {
		l.SourceType = *in.SourceType
	}
	if in.Source != nil {
		l.Source = in.Source
	}
	if in.Status != nil {
		l.Status = *in.Status
	}
	if in.Stage != nil {
		l.Stage = *in.Stage
	}

	switch {
	case in.ClearAssignee:
		l.Unassign()
	case in.AssignedTo != nil && (l.AssignedTo == nil || *l.AssignedTo != *in.AssignedTo):
		assignee, err := s.resolveAssignee(ctx, caller, *in.AssignedTo, true)
		if err != nil {
			return nil, fmt.Errorf("lead.Update: %w", err)
		}
		l.AssignedTo = &assignee.ID
		l.Assigned = assignee.Name
		l.CreatedBy = &caller.UserID

		et, eid := leadEntity(l.ID)
		s.record(ctx, domain.ActivityLog{
			UserID:      caller.UserID,
			ActionType:  domain.ActionAssign,
			Description: fmt.Sprintf("Assigned lead %s to %s", l.Name, assignee.Name),
			EntityType:  et,
			EntityID:    eid,
		})
	}

	if in.FollowUpRequired != nil {
		if !*in.FollowUpRequired {
			l.ClearFollowUp()
		} else {
			l.FollowUpRequired = true
		}
	}
	if l.FollowUpRequired {
		if in.FollowUpDate != nil {
			l.FollowUpDate = in.FollowUpDate
		}
		if in.FollowUpTime != nil {
			l.FollowUpTime = in.FollowUpTime
		}
		if in.FollowUpStatus != nil {
			l.FollowUpStatus = in.FollowUpStatus
		}
	}

	l.UpdatedAt = time.Now().UTC()

	updated, err := s.leads.Update(ctx, &l)
	if err != nil {
		return nil, fmt.Errorf("lead.Update: %w", err)
	}

	if l.Status != oldStatus {
		et, eid := leadEntity(l.ID)
		s.record(ctx, domain.ActivityLog{
			UserID:      caller.UserID,
			ActionType:  domain.ActionStatusChange,
			Description: fmt.Sprintf("Changed lead %s status from %s to %s", l.Name, oldStatus, l.Status),
			EntityType:  et,
			EntityID:    eid,
			Metadata:    map[string]any{"old_status": oldStatus.String(), "new_status": l.Status.String()},
		})
	}

	domain.NormalizeSource(&updated.Lead)
	return updated, nil
}
