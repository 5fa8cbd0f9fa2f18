// Package lead implements the core of the pipeline: lead CRUD with
// role-scoped visibility, assignment guarded by the management
// hierarchy, submission conversion, comments and cascading deletion.
package lead

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/domain"
)

// leadRepo defines the lead repository interface needed by the lead service.
type leadRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.LeadWithNames, error)
	List(ctx context.Context, scope domain.LeadScope) ([]domain.LeadWithNames, error)
	Create(ctx context.Context, l *domain.Lead) (*domain.LeadWithNames, error)
	Update(ctx context.Context, l *domain.Lead) (*domain.LeadWithNames, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// userRepo resolves assignees and callers.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.UserWithRole, error)
}

// submissionRepo covers the conversion path and the delete cascade.
type submissionRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	UpdateStatusAndLead(ctx context.Context, id uuid.UUID, status domain.SubmissionStatus, leadID *uuid.UUID) error
	DetachByLead(ctx context.Context, leadID uuid.UUID) (int64, error)
}

// commentRepo defines the comment repository interface needed by the lead service.
type commentRepo interface {
	Create(ctx context.Context, c *domain.Comment) (*domain.CommentWithAuthor, error)
	ListByLead(ctx context.Context, leadID uuid.UUID) ([]domain.CommentWithAuthor, error)
	DeleteByLead(ctx context.Context, leadID uuid.UUID) (int64, error)
}

type callLogRepo interface {
	DeleteByLead(ctx context.Context, leadID uuid.UUID) (int64, error)
}

type reminderRepo interface {
	DeleteByLead(ctx context.Context, leadID uuid.UUID) (int64, error)
}

type tagRepo interface {
	DeleteByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) (int64, error)
}

// txManager runs a function within a database transaction.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// activityWriter records audit events.
type activityWriter interface {
	Record(ctx context.Context, e domain.ActivityLog) error
}

// Service implements lead operations.
type Service struct {
	log         *slog.Logger
	leads       leadRepo
	users       userRepo
	submissions submissionRepo
	comments    commentRepo
	callLogs    callLogRepo
	reminders   reminderRepo
	tags        tagRepo
	tx          txManager
	activity    activityWriter
}

// NewService creates a new lead service instance.
func NewService(
	logger *slog.Logger,
	leads leadRepo,
	users userRepo,
	submissions submissionRepo,
	comments commentRepo,
	callLogs callLogRepo,
	reminders reminderRepo,
	tags tagRepo,
	tx txManager,
	activity activityWriter,
) *Service {
	return &Service{
		log:         logger.With("service", "lead"),
		leads:       leads,
		users:       users,
		submissions: submissions,
		comments:    comments,
		callLogs:    callLogs,
		reminders:   reminders,
		tags:        tags,
		tx:          tx,
		activity:    activity,
	}
}

func (s *Service) record(ctx context.Context, e domain.ActivityLog) {
	if err := s.activity.Record(ctx, e); err != nil {
		s.log.WarnContext(ctx, "recording lead activity failed", "error", err)
	}
}

func leadEntity(id uuid.UUID) (*domain.EntityType, *uuid.UUID) {
	et := domain.EntityTypeLead
	return &et, &id
}

// ownsLead reports whether the caller may act on the lead as its owner.
func ownsLead(caller auth.Identity, l *domain.LeadWithNames) bool {
	return l.AssignedTo != nil && *l.AssignedTo == caller.UserID
}
