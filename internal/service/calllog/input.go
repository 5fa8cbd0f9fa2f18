package calllog

import (
	"time"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/domain"
)

// CreateInput carries the fields for logging a call.
type CreateInput struct {
	LeadID           uuid.UUID
	Stage            *domain.LeadStage
	ActivityType     *string
	Objective        *string
	PlanningNotes    *string
	PostMeetingNotes *string
	FollowUpNotes    *string
	Challenges       *string
	SecuredOrder     bool
	DollarValue      *float64
	MeetingDate      *time.Time
}

// Validate checks the input and returns field errors.
func (in *CreateInput) Validate() error {
	var errs []domain.FieldError

	if in.LeadID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "lead_id", Message: "is required"})
	}
	if in.Stage != nil && !in.Stage.IsValid() {
		errs = append(errs, domain.FieldError{Field: "stage", Message: "is not a valid lead stage"})
	}
	if in.DollarValue != nil && *in.DollarValue < 0 {
		errs = append(errs, domain.FieldError{Field: "dollar_value", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateInput carries the optional fields for updating a call log. Nil
// pointers leave the field untouched.
type UpdateInput struct {
	Stage            *domain.LeadStage
	ActivityType     *string
	Objective        *string
	PlanningNotes    *string
	PostMeetingNotes *string
	FollowUpNotes    *string
	Challenges       *string
	SecuredOrder     *bool
	DollarValue      *float64
	MeetingDate      *time.Time
	Completed        *bool
	Cancelled        *bool
}

// Validate checks the input and returns field errors.
func (in *UpdateInput) Validate() error {
	var errs []domain.FieldError

	if in.Stage != nil && !in.Stage.IsValid() {
		errs = append(errs, domain.FieldError{Field: "stage", Message: "is not a valid lead stage"})
	}
	if in.DollarValue != nil && *in.DollarValue < 0 {
		errs = append(errs, domain.FieldError{Field: "dollar_value", Message: "must not be negative"})
	}
	if in.Completed != nil && in.Cancelled != nil && *in.Completed && *in.Cancelled {
		errs = append(errs, domain.FieldError{Field: "is_completed", Message: "cannot be both completed and cancelled"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
