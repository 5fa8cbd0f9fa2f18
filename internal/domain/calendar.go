package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// DefaultFollowUpTime is assumed when a follow-up has a date but no
// usable time of day.
var DefaultFollowUpTime = mustClock("09:00")

// CalendarItem is one entry in the unified calendar feed. It is derived
// from reminders, lead follow-ups and call logs and never persisted.
type CalendarItem struct {
	Type        CalendarItemType
	ID          uuid.UUID
	Title       string
	Description *string
	Due         time.Time
	LeadID      *uuid.UUID
	Status      string
	Completed   bool
	Cancelled   bool
}

// CalendarScope restricts the feed to a day or an inclusive date range.
// The zero value matches everything.
type CalendarScope struct {
	start *time.Time
	end   *time.Time
}

// ScopeDay matches items falling on the calendar date of day.
func ScopeDay(day time.Time) CalendarScope {
	d := truncateDay(day)
	return CalendarScope{start: &d, end: &d}
}

// ScopeRange matches items between the dates of start and end inclusive.
func ScopeRange(start, end time.Time) CalendarScope {
	s, e := truncateDay(start), truncateDay(end)
	return CalendarScope{start: &s, end: &e}
}

// ScopeAll matches every item.
func ScopeAll() CalendarScope { return CalendarScope{} }

// Contains reports whether t's calendar date falls inside the scope.
func (s CalendarScope) Contains(t time.Time) bool {
	d := truncateDay(t)
	if s.start != nil && d.Before(*s.start) {
		return false
	}
	if s.end != nil && d.After(*s.end) {
		return false
	}
	return true
}

// Unbounded reports whether the scope matches all dates.
func (s CalendarScope) Unbounded() bool { return s.start == nil && s.end == nil }

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// BuildCalendarFeed merges reminders, lead follow-ups and call logs into
// a single feed filtered by scope. Each source contributes independently
// and items are never deduplicated across types. An unbounded scope
// returns the feed sorted ascending by due time; day and range scopes
// preserve source order (reminders, then follow-ups, then call logs).
func BuildCalendarFeed(scope CalendarScope, reminders []Reminder, leads []Lead, callLogs []CallLog) []CalendarItem {
	items := make([]CalendarItem, 0, len(reminders)+len(leads)+len(callLogs))

	for _, r := range reminders {
		if !scope.Contains(r.DueDate) {
			continue
		}
		items = append(items, CalendarItem{
			Type:        CalendarItemReminder,
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Due:         r.DueDate,
			LeadID:      r.LeadID,
			Status:      r.Status.String(),
			Completed:   r.Completed,
		})
	}

	for _, l := range leads {
		if !l.FollowUpRequired || l.FollowUpDate == nil {
			continue
		}
		due := followUpDue(*l.FollowUpDate, l.FollowUpTime)
		if !scope.Contains(due) {
			continue
		}
		status := FollowUpStatusPending
		if l.FollowUpStatus != nil {
			status = *l.FollowUpStatus
		}
		leadID := l.ID
		items = append(items, CalendarItem{
			Type:      CalendarItemFollowUp,
			ID:        l.ID,
			Title:     "Follow-up: " + l.Name,
			Due:       due,
			LeadID:    &leadID,
			Status:    status.String(),
			Completed: status == FollowUpStatusCompleted,
			Cancelled: status == FollowUpStatusCancelled,
		})
	}

	for _, c := range callLogs {
		if c.MeetingDate == nil || !scope.Contains(*c.MeetingDate) {
			continue
		}
		leadID := c.LeadID
		items = append(items, CalendarItem{
			Type:        CalendarItemCallLog,
			ID:          c.ID,
			Title:       callLogTitle(c),
			Description: c.Objective,
			Due:         *c.MeetingDate,
			LeadID:      &leadID,
			Status:      callLogStatus(c),
			Completed:   c.IsCompleted,
			Cancelled:   c.IsCancelled,
		})
	}

	if scope.Unbounded() {
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Due.Before(items[j].Due)
		})
	}
	return items
}

// followUpDue combines a follow-up date with its "HH:MM" time of day.
// A missing or malformed time falls back to 09:00 rather than dropping
// the item from the feed.
func followUpDue(date time.Time, clock *string) time.Time {
	tod := DefaultFollowUpTime
	if clock != nil {
		if parsed, err := time.Parse("15:04", *clock); err == nil {
			tod = parsed
		}
	}
	y, m, d := date.UTC().Date()
	return time.Date(y, m, d, tod.Hour(), tod.Minute(), 0, 0, time.UTC)
}

func callLogTitle(c CallLog) string {
	if c.ActivityType != nil && *c.ActivityType != "" {
		return *c.ActivityType
	}
	objective := "Meeting"
	if c.Objective != nil && *c.Objective != "" {
		objective = *c.Objective
	}
	return "Call: " + objective
}

func callLogStatus(c CallLog) string {
	switch {
	case c.IsCancelled:
		return "Cancelled"
	case c.IsCompleted:
		return "Completed"
	}
	return "Scheduled"
}

func mustClock(s string) time.Time {
	t, err := time.Parse("15:04", s)
	if err != nil {
		panic(fmt.Sprintf("bad clock constant %q: %v", s, err))
	}
	return t
}
