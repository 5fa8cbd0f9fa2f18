package domain

import (
	"time"

	"github.com/google/uuid"
)

// CallLog records a planned or held sales call against a lead.
type CallLog struct {
	ID               uuid.UUID
	LeadID           uuid.UUID
	UserID           uuid.UUID
	Stage            *LeadStage
	ActivityType     *string
	Objective        *string
	PlanningNotes    *string
	PostMeetingNotes *string
	FollowUpNotes    *string
	Challenges       *string
	SecuredOrder     bool
	DollarValue      *float64
	MeetingDate      *time.Time
	IsCompleted      bool
	IsCancelled      bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// MarkCompleted sets the completed flag. Completed and cancelled are
// mutually exclusive, so cancelling state is dropped.
func (c *CallLog) MarkCompleted() {
	c.IsCompleted = true
	c.IsCancelled = false
}

// MarkCancelled sets the cancelled flag and drops completion.
func (c *CallLog) MarkCancelled() {
	c.IsCancelled = true
	c.IsCompleted = false
}

// CallLogWithNames joins the lead and user display names for list views.
type CallLogWithNames struct {
	CallLog
	LeadName string
	UserName string
}
