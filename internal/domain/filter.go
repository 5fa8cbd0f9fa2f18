package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserFilter narrows user listings. Nil fields are ignored.
type UserFilter struct {
	RoleName  *string
	ManagerID *uuid.UUID
}

// LeadScope restricts a lead listing to what the caller may see.
// Exactly one of the fields is set for scoped calls; the zero value
// lists everything.
type LeadScope struct {
	// AssignedTo limits to leads owned by one user.
	AssignedTo *uuid.UUID
	// TeamOf limits to leads assigned to members of one manager's team.
	TeamOf *uuid.UUID
}

// CallLogFilter narrows call log listings. Nil fields are ignored.
type CallLogFilter struct {
	LeadID *uuid.UUID
	UserID *uuid.UUID
}

// ReminderFilter narrows reminder listings. Nil fields are ignored.
type ReminderFilter struct {
	LeadID    *uuid.UUID
	UserID    *uuid.UUID
	Completed *bool
	// DueAfter keeps only reminders due at or after the given instant.
	DueAfter *time.Time
}
