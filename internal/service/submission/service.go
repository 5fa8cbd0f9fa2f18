// Package submission implements website form submission triage: public
// intake, listing by status or form type, archiving and deletion.
package submission

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/domain"
)

// submissionRepo defines the repository interface needed by the submission service.
type submissionRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	List(ctx context.Context, status *domain.SubmissionStatus) ([]domain.Submission, error)
	ListByTypes(ctx context.Context, formTypes []string) ([]domain.Submission, error)
	Create(ctx context.Context, s *domain.Submission) error
	UpdateStatusAndLead(ctx context.Context, id uuid.UUID, status domain.SubmissionStatus, leadID *uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// activityWriter records audit events.
type activityWriter interface {
	Record(ctx context.Context, e domain.ActivityLog) error
}

// Service implements submission operations.
type Service struct {
	log         *slog.Logger
	submissions submissionRepo
	activity    activityWriter
}

// NewService creates a new submission service instance.
func NewService(logger *slog.Logger, submissions submissionRepo, activity activityWriter) *Service {
	return &Service{
		log:         logger.With("service", "submission"),
		submissions: submissions,
		activity:    activity,
	}
}

// IntakeInput carries a submission arriving from the public website.
type IntakeInput struct {
	FormType string
	Name     string
	Email    *string
	Company  *string
	Data     map[string]any
}

// Validate checks the input and returns field errors.
func (in *IntakeInput) Validate() error {
	var errs []domain.FieldError

	in.FormType = strings.TrimSpace(in.FormType)
	if in.FormType == "" {
		errs = append(errs, domain.FieldError{Field: "form_type", Message: "is required"})
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "is required"})
	}
	if in.Email != nil {
		if _, err := mail.ParseAddress(*in.Email); err != nil {
			errs = append(errs, domain.FieldError{Field: "email", Message: "is not a valid email address"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Intake stores a form submission from the public website. There is no
// caller; the endpoint is unauthenticated.
func (s *Service) Intake(ctx context.Context, in IntakeInput) (*domain.Submission, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("submission.Intake: %w", err)
	}

	sub := domain.Submission{
		ID:        uuid.New(),
		FormType:  domain.NormalizeFormType(in.FormType),
		Name:      in.Name,
		Email:     in.Email,
		Company:   in.Company,
		Status:    domain.SubmissionStatusNew,
		Data:      in.Data,
		Submitted: time.Now().UTC(),
	}
	if err := s.submissions.Create(ctx, &sub); err != nil {
		return nil, fmt.Errorf("submission.Intake: %w", err)
	}

	s.log.InfoContext(ctx, "form submission received", "submission_id", sub.ID, "form_type", sub.FormType)
	return &sub, nil
}

// List returns submissions, optionally filtered by status, newest first.
func (s *Service) List(ctx context.Context, caller auth.Identity, status *domain.SubmissionStatus) ([]domain.Submission, error) {
	if !caller.Permissions.CanRead(domain.PermSubmissions) {
		return nil, fmt.Errorf("submission.List: %w", domain.ErrForbidden)
	}
	if status != nil && !status.IsValid() {
		return nil, fmt.Errorf("submission.List: %w", domain.NewValidationError("status", "is not a valid submission status"))
	}
	subs, err := s.submissions.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("submission.List: %w", err)
	}
	return subs, nil
}

// ListByType returns submissions for a form type, matching every known
// spelling of it.
func (s *Service) ListByType(ctx context.Context, caller auth.Identity, formType string) ([]domain.Submission, error) {
	if !caller.Permissions.CanRead(domain.PermSubmissions) {
		return nil, fmt.Errorf("submission.ListByType: %w", domain.ErrForbidden)
	}
	subs, err := s.submissions.ListByTypes(ctx, domain.FormTypeVariants(formType))
	if err != nil {
		return nil, fmt.Errorf("submission.ListByType: %w", err)
	}
	return subs, nil
}

// Get returns a single submission by ID.
func (s *Service) Get(ctx context.Context, caller auth.Identity, id uuid.UUID) (*domain.Submission, error) {
	if !caller.Permissions.CanRead(domain.PermSubmissions) {
		return nil, fmt.Errorf("submission.Get: %w", domain.ErrForbidden)
	}
	sub, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("submission.Get: %w", err)
	}
	return sub, nil
}

// Archive moves a submission out of the triage queue. Converted
// submissions stay converted.
func (s *Service) Archive(ctx context.Context, caller auth.Identity, id uuid.UUID) error {
	if !caller.Permissions.CanWrite(domain.PermSubmissions) {
		return fmt.Errorf("submission.Archive: %w", domain.ErrForbidden)
	}

	sub, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("submission.Archive: %w", err)
	}
	if sub.Status == domain.SubmissionStatusConverted {
		return fmt.Errorf("submission.Archive: submission already converted: %w", domain.ErrConflict)
	}

	if err := s.submissions.UpdateStatusAndLead(ctx, id, domain.SubmissionStatusArchived, sub.LeadID); err != nil {
		return fmt.Errorf("submission.Archive: %w", err)
	}
	return nil
}

// Delete permanently removes a submission.
func (s *Service) Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) error {
	if !caller.Permissions.CanWrite(domain.PermDeleteSubmission) {
		return fmt.Errorf("submission.Delete: %w", domain.ErrForbidden)
	}

	sub, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("submission.Delete: %w", err)
	}
	if err := s.submissions.Delete(ctx, id); err != nil {
		return fmt.Errorf("submission.Delete: %w", err)
	}

	et := domain.EntityTypeSubmission
	if err := s.activity.Record(ctx, domain.ActivityLog{
		UserID:      caller.UserID,
		ActionType:  domain.ActionDelete,
		Description: fmt.Sprintf("Deleted %s submission from %s", sub.FormType, sub.Name),
		EntityType:  &et,
		EntityID:    &id,
	}); err != nil {
		s.log.WarnContext(ctx, "recording submission activity failed", "error", err)
	}
	return nil
}
