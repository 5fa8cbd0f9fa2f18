package domain

// LeadStatus represents the sales pipeline status of a lead.
type LeadStatus string

const (
	LeadStatusNew          LeadStatus = "New"
	LeadStatusContacted    LeadStatus = "Contacted"
	LeadStatusQualified    LeadStatus = "Qualified"
	LeadStatusProposalSent LeadStatus = "Proposal Sent"
	LeadStatusInDiscussion LeadStatus = "In Discussion"
	LeadStatusClosedWon    LeadStatus = "Closed Won"
	LeadStatusClosedLost   LeadStatus = "Closed Lost"
)

func (s LeadStatus) String() string { return string(s) }

func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusProposalSent,
		LeadStatusInDiscussion, LeadStatusClosedWon, LeadStatusClosedLost:
		return true
	}
	return false
}

// IsClosed reports whether the lead has reached a terminal status.
func (s LeadStatus) IsClosed() bool {
	return s == LeadStatusClosedWon || s == LeadStatusClosedLost
}

// LeadStage represents the engagement stage of a lead (A is earliest).
type LeadStage string

const (
	LeadStageA LeadStage = "A"
	LeadStageB LeadStage = "B"
	LeadStageC LeadStage = "C"
	LeadStageD LeadStage = "D"
	LeadStageE LeadStage = "E"
	LeadStageF LeadStage = "F"
	LeadStageG LeadStage = "G"
	LeadStageH LeadStage = "H"
)

func (s LeadStage) String() string { return string(s) }

func (s LeadStage) IsValid() bool {
	switch s {
	case LeadStageA, LeadStageB, LeadStageC, LeadStageD,
		LeadStageE, LeadStageF, LeadStageG, LeadStageH:
		return true
	}
	return false
}

// FollowUpStatus represents the state of a lead's scheduled follow-up.
type FollowUpStatus string

const (
	FollowUpStatusPending   FollowUpStatus = "Pending"
	FollowUpStatusCompleted FollowUpStatus = "Completed"
	FollowUpStatusCancelled FollowUpStatus = "Cancelled"
)

func (s FollowUpStatus) String() string { return string(s) }

func (s FollowUpStatus) IsValid() bool {
	switch s {
	case FollowUpStatusPending, FollowUpStatusCompleted, FollowUpStatusCancelled:
		return true
	}
	return false
}

// ReminderStatus represents the state of a reminder.
type ReminderStatus string

const (
	ReminderStatusPending   ReminderStatus = "Pending"
	ReminderStatusCompleted ReminderStatus = "Completed"
	ReminderStatusCancelled ReminderStatus = "Cancelled"
)

func (s ReminderStatus) String() string { return string(s) }

func (s ReminderStatus) IsValid() bool {
	switch s {
	case ReminderStatusPending, ReminderStatusCompleted, ReminderStatusCancelled:
		return true
	}
	return false
}

// SubmissionStatus represents the lifecycle state of a form submission.
type SubmissionStatus string

const (
	SubmissionStatusNew       SubmissionStatus = "New"
	SubmissionStatusConverted SubmissionStatus = "Converted"
	SubmissionStatusArchived  SubmissionStatus = "Archived"
)

func (s SubmissionStatus) String() string { return string(s) }

func (s SubmissionStatus) IsValid() bool {
	switch s {
	case SubmissionStatusNew, SubmissionStatusConverted, SubmissionStatusArchived:
		return true
	}
	return false
}

// CalendarItemType discriminates the three sources of calendar items.
type CalendarItemType string

const (
	CalendarItemReminder CalendarItemType = "reminder"
	CalendarItemFollowUp CalendarItemType = "follow-up"
	CalendarItemCallLog  CalendarItemType = "call-log"
)

func (t CalendarItemType) String() string { return string(t) }

func (t CalendarItemType) IsValid() bool {
	switch t {
	case CalendarItemReminder, CalendarItemFollowUp, CalendarItemCallLog:
		return true
	}
	return false
}

// EntityType identifies the kind of domain entity (used in activity logs
// and tag associations).
type EntityType string

const (
	EntityTypeLead       EntityType = "lead"
	EntityTypeUser       EntityType = "user"
	EntityTypeCallLog    EntityType = "call_log"
	EntityTypeReminder   EntityType = "reminder"
	EntityTypeComment    EntityType = "comment"
	EntityTypeSubmission EntityType = "submission"
	EntityTypeNewsletter EntityType = "newsletter"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeLead, EntityTypeUser, EntityTypeCallLog, EntityTypeReminder,
		EntityTypeComment, EntityTypeSubmission, EntityTypeNewsletter:
		return true
	}
	return false
}

// ActionType represents the kind of event recorded in the activity log.
type ActionType string

const (
	ActionLogin          ActionType = "login"
	ActionCreate         ActionType = "create"
	ActionUpdate         ActionType = "update"
	ActionDelete         ActionType = "delete"
	ActionStatusChange   ActionType = "status_change"
	ActionStageChange    ActionType = "stage_change"
	ActionAssign         ActionType = "assign"
	ActionComment        ActionType = "comment"
	ActionConvert        ActionType = "convert"
	ActionPasswordChange ActionType = "password_change"
)

func (a ActionType) String() string { return string(a) }

func (a ActionType) IsValid() bool {
	switch a {
	case ActionLogin, ActionCreate, ActionUpdate, ActionDelete, ActionStatusChange,
		ActionStageChange, ActionAssign, ActionComment, ActionConvert, ActionPasswordChange:
		return true
	}
	return false
}
