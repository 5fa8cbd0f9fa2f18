package lead

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/domain"
)

// AddComment appends a note to a lead. Users without a leads permission
// may still comment on leads assigned to them.
func (s *Service) AddComment(ctx context.Context, caller auth.Identity, leadID uuid.UUID, in CommentInput) (*domain.CommentWithAuthor, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("lead.AddComment: %w", err)
	}

	l, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		return nil, fmt.Errorf("lead.AddComment: %w", err)
	}

	if !caller.Permissions.CanWrite(domain.PermLeadComments) && !ownsLead(caller, l) {
		return nil, fmt.Errorf("lead.AddComment: %w", domain.ErrForbidden)
	}

	c := domain.Comment{
		ID:        uuid.New(),
		LeadID:    leadID,
		Text:      in.Text,
		CreatedBy: caller.UserID,
		CreatedAt: time.Now().UTC(),
	}
	created, err := s.comments.Create(ctx, &c)
	if err != nil {
		return nil, fmt.Errorf("lead.AddComment: %w", err)
	}

	et, eid := leadEntity(leadID)
	s.record(ctx, domain.ActivityLog{
		UserID:      caller.UserID,
		ActionType:  domain.ActionComment,
		Description: fmt.Sprintf("Commented on lead: %s", l.Name),
		EntityType:  et,
		EntityID:    eid,
		Metadata:    map[string]any{"comment_id": created.ID.String()},
	})

	return created, nil
}

// ListComments returns a lead's comments, oldest first.
func (s *Service) ListComments(ctx context.Context, leadID uuid.UUID) ([]domain.CommentWithAuthor, error) {
	comments, err := s.comments.ListByLead(ctx, leadID)
	if err != nil {
		return nil, fmt.Errorf("lead.ListComments: %w", err)
	}
	return comments, nil
}
