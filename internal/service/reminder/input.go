package reminder

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/domain"
)

// CreateInput carries the fields for creating a reminder.
type CreateInput struct {
	LeadID      *uuid.UUID
	Title       string
	Description *string
	DueDate     time.Time
}

// Validate checks the input and returns field errors.
func (in *CreateInput) Validate() error {
	var errs []domain.FieldError

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "is required"})
	} else if len(in.Title) > 255 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "must be at most 255 characters"})
	}
	if in.DueDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "due_date", Message: "is required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateInput carries the optional fields for updating a reminder.
type UpdateInput struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Status      *domain.ReminderStatus
}

// Validate checks the input and returns field errors.
func (in *UpdateInput) Validate() error {
	var errs []domain.FieldError

	if in.Title != nil {
		trimmed := strings.TrimSpace(*in.Title)
		in.Title = &trimmed
		if trimmed == "" {
			errs = append(errs, domain.FieldError{Field: "title", Message: "must not be empty"})
		}
	}
	if in.Status != nil && !in.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "is not a valid reminder status"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
