package lead

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/domain"
)

// CreateInput carries the fields for creating a lead.
type CreateInput struct {
	Name             string
	Email            *string
	Phone            *string
	Company          *string
	Designation      *string
	SourceType       string
	Source           *string
	Status           domain.LeadStatus
	Stage            domain.LeadStage
	AssignedTo       *uuid.UUID
	FollowUpRequired bool
	FollowUpDate     *time.Time
	FollowUpTime     *string
	FollowUpStatus   *domain.FollowUpStatus
}

// Validate checks the input and returns field errors.
func (in *CreateInput) Validate() error {
	var errs []domain.FieldError

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "is required"})
	} else if len(in.Name) > 255 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "must be at most 255 characters"})
	}

	if in.SourceType == "" {
		in.SourceType = "Manual"
	}
	if in.Status == "" {
		in.Status = domain.LeadStatusNew
	} else if !in.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "is not a valid lead status"})
	}
	if in.Stage == "" {
		in.Stage = domain.LeadStageA
	} else if !in.Stage.IsValid() {
		errs = append(errs, domain.FieldError{Field: "stage", Message: "is not a valid lead stage"})
	}
	if in.FollowUpStatus != nil && !in.FollowUpStatus.IsValid() {
		errs = append(errs, domain.FieldError{Field: "follow_up_status", Message: "is not a valid follow-up status"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateInput carries the optional fields for updating a lead. Nil
// pointers leave the field untouched; ClearAssignee removes the owner.
type UpdateInput struct {
	Name             *string
	Email            *string
	Phone            *string
	Company          *string
	Designation      *string
	SourceType       *string
	Source           *string
	Status           *domain.LeadStatus
	Stage            *domain.LeadStage
	AssignedTo       *uuid.UUID
	ClearAssignee    bool
	FollowUpRequired *bool
	FollowUpDate     *time.Time
	FollowUpTime     *string
	FollowUpStatus   *domain.FollowUpStatus
}

// Validate checks the input and returns field errors.
func (in *UpdateInput) Validate() error {
	var errs []domain.FieldError

	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		in.Name = &trimmed
		if trimmed == "" {
			errs = append(errs, domain.FieldError{Field: "name", Message: "must not be empty"})
		} else if len(trimmed) > 255 {
			errs = append(errs, domain.FieldError{Field: "name", Message: "must be at most 255 characters"})
		}
	}
	if in.Status != nil && !in.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "is not a valid lead status"})
	}
	if in.Stage != nil && !in.Stage.IsValid() {
		errs = append(errs, domain.FieldError{Field: "stage", Message: "is not a valid lead stage"})
	}
	if in.FollowUpStatus != nil && !in.FollowUpStatus.IsValid() {
		errs = append(errs, domain.FieldError{Field: "follow_up_status", Message: "is not a valid follow-up status"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ConvertInput carries overrides applied when converting a submission
// into a lead. Empty fields fall back to the submission's own values.
type ConvertInput struct {
	Name        string
	Email       *string
	Phone       *string
	Company     *string
	Designation *string
	AssignedTo  *uuid.UUID
}

// CommentInput carries the text of a new comment.
type CommentInput struct {
	Text string
}

// Validate checks the input and returns field errors.
func (in *CommentInput) Validate() error {
	in.Text = strings.TrimSpace(in.Text)
	if in.Text == "" {
		return domain.NewValidationError("text", "is required")
	}
	return nil
}
