// Package calllog implements call log operations: ownership-scoped CRUD
// with stage changes propagating back to the parent lead.
package calllog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/domain"
)

// callLogRepo defines the repository interface needed by the call log service.
type callLogRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CallLogWithNames, error)
	List(ctx context.Context, filter domain.CallLogFilter) ([]domain.CallLogWithNames, error)
	Create(ctx context.Context, c *domain.CallLog) (*domain.CallLogWithNames, error)
	Update(ctx context.Context, c *domain.CallLog) (*domain.CallLogWithNames, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// leadRepo resolves the parent lead and receives stage propagation.
type leadRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.LeadWithNames, error)
	UpdateStage(ctx context.Context, id uuid.UUID, stage domain.LeadStage) error
}

// activityWriter records audit events.
type activityWriter interface {
	Record(ctx context.Context, e domain.ActivityLog) error
}

// Service implements call log operations.
type Service struct {
	log      *slog.Logger
	callLogs callLogRepo
	leads    leadRepo
	activity activityWriter
}

// NewService creates a new call log service instance.
func NewService(logger *slog.Logger, callLogs callLogRepo, leads leadRepo, activity activityWriter) *Service {
	return &Service{
		log:      logger.With("service", "calllog"),
		callLogs: callLogs,
		leads:    leads,
		activity: activity,
	}
}

// List returns call logs visible to the caller. Callers without the
// all permission are pinned to their own logs unless they filter by a
// specific lead they can already see.
func (s *Service) List(ctx context.Context, caller auth.Identity, filter domain.CallLogFilter) ([]domain.CallLogWithNames, error) {
	if !caller.Permissions.All() && filter.UserID == nil && filter.LeadID == nil {
		filter.UserID = &caller.UserID
	}
	logs, err := s.callLogs.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("calllog.List: %w", err)
	}
	return logs, nil
}

// Get returns one call log. Only the owner or an administrator may read
// an individual log.
func (s *Service) Get(ctx context.Context, caller auth.Identity, id uuid.UUID) (*domain.CallLogWithNames, error) {
	c, err := s.callLogs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("calllog.Get: %w", err)
	}
	if err := s.authorize(caller, &c.CallLog); err != nil {
		return nil, fmt.Errorf("calllog.Get: %w", err)
	}
	return c, nil
}

// Create logs a call against a lead. Users without a leads permission
// may only log calls on leads assigned to them. A stage on the log
// advances the lead's stage.
func (s *Service) Create(ctx context.Context, caller auth.Identity, in CreateInput) (*domain.CallLogWithNames, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("calllog.Create: %w", err)
	}

	lead, err := s.leads.GetByID(ctx, in.LeadID)
	if err != nil {
		return nil, fmt.Errorf("calllog.Create: %w", err)
	}
	if !caller.Permissions.CanWrite(domain.PermLeads) {
		if lead.AssignedTo == nil || *lead.AssignedTo != caller.UserID {
			return nil, fmt.Errorf("calllog.Create: lead not assigned to caller: %w", domain.ErrForbidden)
		}
	}

	now := time.Now().UTC()
	c := domain.CallLog{
		ID:               uuid.New(),
		LeadID:           in.LeadID,
		UserID:           caller.UserID,
		Stage:            in.Stage,
		ActivityType:     in.ActivityType,
		Objective:        in.Objective,
		PlanningNotes:    in.PlanningNotes,
		PostMeetingNotes: in.PostMeetingNotes,
		FollowUpNotes:    in.FollowUpNotes,
		Challenges:       in.Challenges,
		SecuredOrder:     in.SecuredOrder,
		DollarValue:      in.DollarValue,
		MeetingDate:      in.MeetingDate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	created, err := s.callLogs.Create(ctx, &c)
	if err != nil {
		return nil, fmt.Errorf("calllog.Create: %w", err)
	}

	if in.Stage != nil && *in.Stage != lead.Stage {
		if err := s.leads.UpdateStage(ctx, lead.ID, *in.Stage); err != nil {
			return nil, fmt.Errorf("calllog.Create: propagate stage: %w", err)
		}
	}

	s.recordEvent(ctx, caller.UserID, domain.ActionCreate,
		fmt.Sprintf("Logged call for lead: %s", lead.Name), created.ID)
	return created, nil
}

// Update modifies a call log owned by the caller. Completed and
// cancelled are mutually exclusive; whichever flag arrives last wins.
func (s *Service) Update(ctx context.Context, caller auth.Identity, id uuid.UUID, in UpdateInput) (*domain.CallLogWithNames, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("calllog.Update: %w", err)
	}

	existing, err := s.callLogs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("calllog.Update: %w", err)
	}
	if err := s.authorize(caller, &existing.CallLog); err != nil {
		return nil, fmt.Errorf("calllog.Update: %w", err)
	}

	c := existing.CallLog
	if in.Stage != nil {
		c.Stage = in.Stage
	}
	if in.ActivityType != nil {
		c.ActivityType = in.ActivityType
	}
	if in.Objective != nil {
		c.Objective = in.Objective
	}
	if in.PlanningNotes != nil {
		c.PlanningNotes = in.PlanningNotes
	}
	if in.PostMeetingNotes != nil {
		c.PostMeetingNotes = in.PostMeetingNotes
	}
	if in.FollowUpNotes != nil {
		c.FollowUpNotes = in.FollowUpNotes
	}
	if in.Challenges != nil {
		c.Challenges = in.Challenges
	}
	if in.SecuredOrder != nil {
		c.SecuredOrder = *in.SecuredOrder
	}
	if in.DollarValue != nil {
		c.DollarValue = in.DollarValue
	}
	if in.MeetingDate != nil {
		c.MeetingDate = in.MeetingDate
	}
	if in.Completed != nil && *in.Completed {
		c.MarkCompleted()
	}
	if in.Cancelled != nil && *in.Cancelled {
		c.MarkCancelled()
	}
	c.UpdatedAt = time.Now().UTC()

	updated, err := s.callLogs.Update(ctx, &c)
	if err != nil {
		return nil, fmt.Errorf("calllog.Update: %w", err)
	}

	if in.Stage != nil {
		if err := s.leads.UpdateStage(ctx, c.LeadID, *in.Stage); err != nil {
			return nil, fmt.Errorf("calllog.Update: propagate stage: %w", err)
		}
	}
	return updated, nil
}

// Delete removes a call log owned by the caller.
func (s *Service) Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) error {
	existing, err := s.callLogs.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("calllog.Delete: %w", err)
	}
	if err := s.authorize(caller, &existing.CallLog); err != nil {
		return fmt.Errorf("calllog.Delete: %w", err)
	}

	if err := s.callLogs.Delete(ctx, id); err != nil {
		return fmt.Errorf("calllog.Delete: %w", err)
	}
	s.recordEvent(ctx, caller.UserID, domain.ActionDelete,
		fmt.Sprintf("Deleted call log for lead: %s", existing.LeadName), id)
	return nil
}

// authorize allows the log's owner and administrators.
func (s *Service) authorize(caller auth.Identity, c *domain.CallLog) error {
	if c.UserID == caller.UserID || caller.Permissions.All() {
		return nil
	}
	return domain.ErrForbidden
}

func (s *Service) recordEvent(ctx context.Context, userID uuid.UUID, action domain.ActionType, description string, id uuid.UUID) {
	et := domain.EntityTypeCallLog
	if err := s.activity.Record(ctx, domain.ActivityLog{
		UserID:      userID,
		ActionType:  action,
		Description: description,
		EntityType:  &et,
		EntityID:    &id,
	}); err != nil {
		s.log.WarnContext(ctx, "recording call log activity failed", "error", err)
	}
}
