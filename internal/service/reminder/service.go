// Package reminder implements reminder operations: dated to-dos,
// optionally attached to leads, scoped to their owner.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/domain"
)

// reminderRepo defines the repository interface needed by the reminder service.
type reminderRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ReminderWithLead, error)
	List(ctx context.Context, filter domain.ReminderFilter) ([]domain.ReminderWithLead, error)
	Create(ctx context.Context, r *domain.Reminder) (*domain.ReminderWithLead, error)
	Update(ctx context.Context, r *domain.Reminder) (*domain.ReminderWithLead, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// leadRepo verifies the lead a reminder points at actually exists.
type leadRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.LeadWithNames, error)
}

// activityWriter records audit events.
type activityWriter interface {
	Record(ctx context.Context, e domain.ActivityLog) error
}

// Service implements reminder operations.
type Service struct {
	log       *slog.Logger
	reminders reminderRepo
	leads     leadRepo
	activity  activityWriter
}

// NewService creates a new reminder service instance.
func NewService(logger *slog.Logger, reminders reminderRepo, leads leadRepo, activity activityWriter) *Service {
	return &Service{
		log:       logger.With("service", "reminder"),
		reminders: reminders,
		leads:     leads,
		activity:  activity,
	}
}

// List returns the caller's reminders matching the filter. Callers with
// the all permission may list anyone's via the UserID filter.
func (s *Service) List(ctx context.Context, caller auth.Identity, filter domain.ReminderFilter) ([]domain.ReminderWithLead, error) {
	if !caller.Permissions.All() {
		filter.UserID = &caller.UserID
	}
	reminders, err := s.reminders.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("reminder.List: %w", err)
	}
	return reminders, nil
}

// Get returns one reminder. Only the owner or an administrator may read it.
func (s *Service) Get(ctx context.Context, caller auth.Identity, id uuid.UUID) (*domain.ReminderWithLead, error) {
	r, err := s.reminders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reminder.Get: %w", err)
	}
	if err := s.authorize(caller, &r.Reminder); err != nil {
		return nil, fmt.Errorf("reminder.Get: %w", err)
	}
	return r, nil
}

// Create adds a reminder owned by the caller.
func (s *Service) Create(ctx context.Context, caller auth.Identity, in CreateInput) (*domain.ReminderWithLead, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("reminder.Create: %w", err)
	}

	if in.LeadID != nil {
		if _, err := s.leads.GetByID(ctx, *in.LeadID); err != nil {
			return nil, fmt.Errorf("reminder.Create: %w", err)
		}
	}

	r := domain.Reminder{
		ID:          uuid.New(),
		LeadID:      in.LeadID,
		UserID:      caller.UserID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      domain.ReminderStatusPending,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.reminders.Create(ctx, &r)
	if err != nil {
		return nil, fmt.Errorf("reminder.Create: %w", err)
	}

	s.recordEvent(ctx, caller.UserID, domain.ActionCreate,
		fmt.Sprintf("Created reminder: %s", created.Title), created.ID)
	return created, nil
}

// Update modifies a reminder owned by the caller. Status changes keep
// the completed flag and timestamp in sync.
func (s *Service) Update(ctx context.Context, caller auth.Identity, id uuid.UUID, in UpdateInput) (*domain.ReminderWithLead, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("reminder.Update: %w", err)
	}

	existing, err := s.reminders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reminder.Update: %w", err)
	}
	if err := s.authorize(caller, &existing.Reminder); err != nil {
		return nil, fmt.Errorf("reminder.Update: %w", err)
	}

	r := existing.Reminder
	if in.Title != nil {
		r.Title = *in.Title
	}
	if in.Description != nil {
		r.Description = in.Description
	}
	if in.DueDate != nil {
		r.DueDate = *in.DueDate
	}
	if in.Status != nil {
		r.SetStatus(*in.Status, time.Now().UTC())
	}

	updated, err := s.reminders.Update(ctx, &r)
	if err != nil {
		return nil, fmt.Errorf("reminder.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a reminder owned by the caller.
func (s *Service) Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) error {
	existing, err := s.reminders.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("reminder.Delete: %w", err)
	}
	if err := s.authorize(caller, &existing.Reminder); err != nil {
		return fmt.Errorf("reminder.Delete: %w", err)
	}

	if err := s.reminders.Delete(ctx, id); err != nil {
		return fmt.Errorf("reminder.Delete: %w", err)
	}
	s.recordEvent(ctx, caller.UserID, domain.ActionDelete,
		fmt.Sprintf("Deleted reminder: %s", existing.Title), id)
	return nil
}

// authorize allows the reminder's owner and administrators.
func (s *Service) authorize(caller auth.Identity, r *domain.Reminder) error {
	if r.UserID == caller.UserID || caller.Permissions.All() {
		return nil
	}
	return domain.ErrForbidden
}

func (s *Service) recordEvent(ctx context.Context, userID uuid.UUID, action domain.ActionType, description string, id uuid.UUID) {
	et := domain.EntityTypeReminder
	if err := s.activity.Record(ctx, domain.ActivityLog{
		UserID:      userID,
		ActionType:  action,
		Description: description,
		EntityType:  &et,
		EntityID:    &id,
	}); err != nil {
		s.log.WarnContext(ctx, "recording reminder activity failed", "error", err)
	}
}
