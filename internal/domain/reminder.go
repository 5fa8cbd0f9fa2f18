package domain

import (
	"time"

	"github.com/google/uuid"
)

// Reminder is a dated to-do, optionally attached to a lead.
type Reminder struct {
	ID          uuid.UUID
	LeadID      *uuid.UUID
	UserID      uuid.UUID
	Title       string
	Description *string
	DueDate     time.Time
	Status      ReminderStatus
	Completed   bool
	CompletedAt *time.Time
	CreatedAt   time.Time
}

// SetStatus moves the reminder to status at time now, keeping the
// Completed flag and CompletedAt timestamp in sync. Completed is true
// exactly when the status is Completed.
func (r *Reminder) SetStatus(status ReminderStatus, now time.Time) {
	wasCompleted := r.Status == ReminderStatusCompleted
	r.Status = status
	r.Completed = status == ReminderStatusCompleted
	switch {
	case r.Completed && !wasCompleted:
		r.CompletedAt = &now
	case !r.Completed:
		r.CompletedAt = nil
	}
}

// ReminderWithLead joins the lead name (when attached) for list views.
type ReminderWithLead struct {
	Reminder
	LeadName *string
}
