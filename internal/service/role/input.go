package role

import "github.com/spars/crm-backend/internal/domain"

// Input holds parameters for creating or updating a role.
type Input struct {
	Name           string
	Description    *string
	Permissions    domain.Permissions
	HierarchyLevel int
}

// Validate validates the role input.
func (i Input) Validate() error {
	var errs []domain.FieldError

	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "role_name", Message: "required"})
	} else if len(i.Name) > 100 {
		errs = append(errs, domain.FieldError{Field: "role_name", Message: "too long"})
	}

	if i.HierarchyLevel < 0 || i.HierarchyLevel > 3 {
		errs = append(errs, domain.FieldError{Field: "hierarchy_level", Message: "must be between 0 and 3"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
