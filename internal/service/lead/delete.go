package lead

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/domain"
)

// DeleteResult reports how many dependent rows went away with the lead.
type DeleteResult struct {
	CallLogs    int64
	Reminders   int64
	Comments    int64
	Tags        int64
	Submissions int64
}

// Delete removes a lead and everything hanging off it in one
// transaction. Call logs, reminders, comments and tag associations are
// deleted; linked submissions are detached and reset to New so they can
// be converted again. Sales executives may only delete their own leads.
func (s *Service) Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) (*DeleteResult, error) {
	if !caller.Permissions.CanWrite(domain.PermLeads) {
		return nil, fmt.Errorf("lead.Delete: %w", domain.ErrForbidden)
	}

	l, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lead.Delete: %w", err)
	}

	switch caller.Class {
	case domain.RoleAdmin, domain.RoleSalesManager:
		// Any lead.
	default:
		if !ownsLead(caller, l) {
			return nil, fmt.Errorf("lead.Delete: not assigned to caller: %w", domain.ErrForbidden)
		}
	}

	var res DeleteResult
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if res.CallLogs, err = s.callLogs.DeleteByLead(ctx, id); err != nil {
			return err
		}
		if res.Reminders, err = s.reminders.DeleteByLead(ctx, id); err != nil {
			return err
		}
		if res.Comments, err = s.comments.DeleteByLead(ctx, id); err != nil {
			return err
		}
		if res.Tags, err = s.tags.DeleteByEntity(ctx, domain.EntityTypeLead, id); err != nil {
			return err
		}
		if res.Submissions, err = s.submissions.DetachByLead(ctx, id); err != nil {
			return err
		}

		// Logged inside the transaction so the trail survives only if
		// the delete itself does.
		et, eid := leadEntity(id)
		if err := s.activity.Record(ctx, domain.ActivityLog{
			UserID:      caller.UserID,
			ActionType:  domain.ActionDelete,
			Description: fmt.Sprintf("Deleted lead: %s", l.Name),
			EntityType:  et,
			EntityID:    eid,
			Metadata: map[string]any{
				"call_logs":   res.CallLogs,
				"reminders":   res.Reminders,
				"comments":    res.Comments,
				"tags":        res.Tags,
				"submissions": res.Submissions,
			},
		}); err != nil {
			return err
		}

		return s.leads.Delete(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("lead.Delete: %w", err)
	}

	s.log.InfoContext(ctx, "lead deleted", "lead_id", id,
		"call_logs", res.CallLogs, "reminders", res.Reminders, "comments", res.Comments)
	return &res, nil
}
