package auth

import (
	"net/mail"

	"github.com/spars/crm-backend/internal/domain"
)

// LoginInput holds parameters for the login operation.
type LoginInput struct {
	Email    string
	Password string
}

// Validate validates the login input.
func (i LoginInput) Validate() error {
	var errs []domain.FieldError

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "username", Message: "required"})
	} else if _, err := mail.ParseAddress(i.Email); err != nil {
		errs = append(errs, domain.FieldError{Field: "username", Message: "invalid email"})
	}

	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ChangePasswordInput holds parameters for the change-password operation.
type ChangePasswordInput struct {
	OldPassword string
	NewPassword string
}

// Validate validates the change-password input.
func (i ChangePasswordInput) Validate() error {
	var errs []domain.FieldError

	if i.OldPassword == "" {
		errs = append(errs, domain.FieldError{Field: "old_password", Message: "required"})
	}

	switch {
	case i.NewPassword == "":
		errs = append(errs, domain.FieldError{Field: "new_password", Message: "required"})
	case len(i.NewPassword) < 6:
		errs = append(errs, domain.FieldError{Field: "new_password", Message: "must be at least 6 characters"})
	case len(i.NewPassword) > 72:
		// bcrypt truncates beyond 72 bytes
		errs = append(errs, domain.FieldError{Field: "new_password", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
