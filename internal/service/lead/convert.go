package lead

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/domain"
)

// Convert turns a website form submission into a lead. The submission is
// marked Converted and linked to the new lead; input fields override the
// submission's own values where set.
func (s *Service) Convert(ctx context.Context, caller auth.Identity, submissionID uuid.UUID, in ConvertInput) (*domain.LeadWithNames, error) {
	if !caller.Permissions.CanWrite(domain.PermConvertLead) {
		return nil, fmt.Errorf("lead.Convert: %w", domain.ErrForbidden)
	}

	sub, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("lead.Convert: %w", err)
	}
	if sub.Status == domain.SubmissionStatusConverted {
		return nil, fmt.Errorf("lead.Convert: submission already converted: %w", domain.ErrConflict)
	}

	name := in.Name
	if name == "" {
		name = sub.Name
	}
	email := in.Email
	if email == nil {
		email = sub.Email
	}
	company := in.Company
	if company == nil {
		company = sub.Company
	}
	source := domain.SubmissionSource(sub.FormType)

	now := time.Now().UTC()
	l := domain.Lead{
		ID:          uuid.New(),
		Name:        name,
		Email:       email,
		Phone:       in.Phone,
		Company:     company,
		Designation: in.Designation,
		SourceType:  domain.WebsiteSourceType,
		Source:      &source,
		Status:      domain.LeadStatusNew,
		Stage:       domain.LeadStageA,
		Assigned:    domain.UnassignedLabel,
		CreatedBy:   &caller.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if in.AssignedTo != nil {
		assignee, err := s.resolveAssignee(ctx, caller, *in.AssignedTo, true)
		if err != nil {
			return nil, fmt.Errorf("lead.Convert: %w", err)
		}
		l.AssignedTo = &assignee.ID
		l.Assigned = assignee.Name
	}

	var created *domain.LeadWithNames
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		created, err = s.leads.Create(ctx, &l)
		if err != nil {
			return err
		}
		return s.submissions.UpdateStatusAndLead(ctx, sub.ID, domain.SubmissionStatusConverted, &created.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("lead.Convert: %w", err)
	}

	et, eid := leadEntity(created.ID)
	s.record(ctx, domain.ActivityLog{
		UserID:      caller.UserID,
		ActionType:  domain.ActionConvert,
		Description: fmt.Sprintf("Converted %s submission into lead: %s", sub.FormType, created.Name),
		EntityType:  et,
		EntityID:    eid,
		Metadata:    map[string]any{"submission_id": sub.ID.String()},
	})

	s.log.InfoContext(ctx, "submission converted", "submission_id", sub.ID, "lead_id", created.ID)
	return created, nil
}
