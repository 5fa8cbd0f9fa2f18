package user

import (
	"net/mail"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/domain"
)

// CreateInput holds parameters for creating a user.
type CreateInput struct {
	Name      string
	Email     string
	Password  string
	RoleID    uuid.UUID
	ManagerID *uuid.UUID
}

// Validate validates the create input.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(i.Name) > 255 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else if _, err := mail.ParseAddress(i.Email); err != nil {
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid email"})
	}

	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	} else if len(i.Password) < 6 {
		errs = append(errs, domain.FieldError{Field: "password", Message: "must be at least 6 characters"})
	}

	if i.RoleID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "role_id", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput holds parameters for updating a user. Nil fields are left
// unchanged.
type UpdateInput struct {
	Name      *string
	Email     *string
	Password  *string
	RoleID    *uuid.UUID
	ManagerID *uuid.UUID
	// ClearManager detaches the user from their manager. Wins over
	// ManagerID.
	ClearManager bool
}

// Validate validates the update input.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.Name != nil && *i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "cannot be empty"})
	}

	if i.Email != nil {
		if _, err := mail.ParseAddress(*i.Email); err != nil {
			errs = append(errs, domain.FieldError{Field: "email", Message: "invalid email"})
		}
	}

	if i.Password != nil && len(*i.Password) < 6 {
		errs = append(errs, domain.FieldError{Field: "password", Message: "must be at least 6 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
