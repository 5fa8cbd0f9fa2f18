package domain

import (
	"time"

	"github.com/google/uuid"
)

// UnassignedLabel is the display value for a lead without an owner.
const UnassignedLabel = "Unassigned"

// Lead represents a sales lead.
type Lead struct {
	ID               uuid.UUID
	Name             string
	Email            *string
	Phone            *string
	Company          *string
	Designation      *string
	SourceType       string
	Source           *string
	Status           LeadStatus
	Stage            LeadStage
	Assigned         string
	AssignedTo       *uuid.UUID
	CreatedBy        *uuid.UUID
	FollowUpRequired bool
	FollowUpDate     *time.Time
	FollowUpTime     *string
	FollowUpStatus   *FollowUpStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// LeadWithNames is a lead joined with the display names most list views
// need.
type LeadWithNames struct {
	Lead
	CreatedByName  *string
	AssignedToName *string
}

// ClearFollowUp removes the scheduled follow-up. The three follow-up
// fields always change together with the required flag.
func (l *Lead) ClearFollowUp() {
	l.FollowUpRequired = false
	l.FollowUpDate = nil
	l.FollowUpTime = nil
	l.FollowUpStatus = nil
}

// Unassign detaches the lead from its owner without touching CreatedBy.
func (l *Lead) Unassign() {
	l.AssignedTo = nil
	l.Assigned = UnassignedLabel
}

// Comment is an append-only note on a lead.
type Comment struct {
	ID        uuid.UUID
	LeadID    uuid.UUID
	Text      string
	CreatedBy uuid.UUID
	CreatedAt time.Time
}

// CommentWithAuthor carries the author's display name for list views.
type CommentWithAuthor struct {
	Comment
	AuthorName string
}
