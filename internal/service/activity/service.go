// Package activity implements the append-only audit feed: recording
// events from other services and role-scoped reads.
package activity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/domain"
)

const (
	defaultLimit = 50
	maxLimit     = 100

	recentDefaultLimit = 10
	recentMaxLimit     = 50
)

// activityRepo defines the repository interface needed by the activity service.
type activityRepo interface {
	Insert(ctx context.Context, a *domain.ActivityLog) error
	List(ctx context.Context, filter domain.ActivityFilter) ([]domain.ActivityWithUser, error)
}

// Service implements activity feed operations. It doubles as the
// activityWriter the mutating services record through.
type Service struct {
	log  *slog.Logger
	repo activityRepo
}

// NewService creates a new activity service instance.
func NewService(logger *slog.Logger, repo activityRepo) *Service {
	return &Service{
		log:  logger.With("service", "activity"),
		repo: repo,
	}
}

// Record appends one event to the feed. Zero ID and CreatedAt are filled
// in; callers treat failures as non-fatal.
func (s *Service) Record(ctx context.Context, e domain.ActivityLog) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if err := s.repo.Insert(ctx, &e); err != nil {
		return fmt.Errorf("activity.Record: %w", err)
	}
	return nil
}

// List returns the activity feed visible to the caller. Admins and sales
// managers see everything; everyone else sees only their own rows.
func (s *Service) List(ctx context.Context, caller auth.Identity, filter domain.ActivityFilter) ([]domain.ActivityWithUser, error) {
	filter = s.scope(caller, filter)
	filter.Limit = clampLimit(filter.Limit, defaultLimit, maxLimit)
	if filter.Skip < 0 {
		filter.Skip = 0
	}

	activities, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("activity.List: %w", err)
	}
	return activities, nil
}

// ForLead returns the activity trail of one lead, scoped like List.
func (s *Service) ForLead(ctx context.Context, caller auth.Identity, leadID uuid.UUID) ([]domain.ActivityWithUser, error) {
	entity := domain.EntityTypeLead
	filter := s.scope(caller, domain.ActivityFilter{
		EntityType: &entity,
		EntityID:   &leadID,
	})

	activities, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("activity.ForLead: %w", err)
	}
	return activities, nil
}

// ForUser returns all events performed by one user.
func (s *Service) ForUser(ctx context.Context, userID uuid.UUID) ([]domain.ActivityWithUser, error) {
	activities, err := s.repo.List(ctx, domain.ActivityFilter{UserID: &userID})
	if err != nil {
		return nil, fmt.Errorf("activity.ForUser: %w", err)
	}
	return activities, nil
}

// Recent returns the newest events visible to the caller.
func (s *Service) Recent(ctx context.Context, caller auth.Identity, limit int) ([]domain.ActivityWithUser, error) {
	filter := s.scope(caller, domain.ActivityFilter{})
	filter.Limit = clampLimit(limit, recentDefaultLimit, recentMaxLimit)

	activities, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("activity.Recent: %w", err)
	}
	return activities, nil
}

func (s *Service) scope(caller auth.Identity, filter domain.ActivityFilter) domain.ActivityFilter {
	if !caller.Class.SeesAllActivity() {
		id := caller.UserID
		filter.UserID = &id
	}
	return filter
}

func clampLimit(limit, def, max int) int {
	switch {
	case limit <= 0:
		return def
	case limit > max:
		return max
	}
	return limit
}
