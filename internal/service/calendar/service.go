// Package calendar assembles the unified calendar feed from reminders,
// lead follow-ups and scheduled call logs.
package calendar

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/domain"
)

type reminderRepo interface {
	List(ctx context.Context, filter domain.ReminderFilter) ([]domain.ReminderWithLead, error)
}

type leadRepo interface {
	List(ctx context.Context, scope domain.LeadScope) ([]domain.LeadWithNames, error)
}

type callLogRepo interface {
	List(ctx context.Context, filter domain.CallLogFilter) ([]domain.CallLogWithNames, error)
}

// Service implements the calendar feed.
type Service struct {
	log       *slog.Logger
	reminders reminderRepo
	leads     leadRepo
	callLogs  callLogRepo
}

// NewService creates a new calendar service instance.
func NewService(logger *slog.Logger, reminders reminderRepo, leads leadRepo, callLogs callLogRepo) *Service {
	return &Service{
		log:       logger.With("service", "calendar"),
		reminders: reminders,
		leads:     leads,
		callLogs:  callLogs,
	}
}

// Feed returns the caller's calendar items inside scope. Administrators
// see everyone's items; sales managers see their team's leads but only
// their own reminders and calls; everyone else sees only their own.
func (s *Service) Feed(ctx context.Context, caller auth.Identity, scope domain.CalendarScope) ([]domain.CalendarItem, error) {
	reminderFilter := domain.ReminderFilter{}
	callLogFilter := domain.CallLogFilter{}
	if !caller.Permissions.All() {
		reminderFilter.UserID = &caller.UserID
		callLogFilter.UserID = &caller.UserID
	}

	leadScope := domain.LeadScope{}
	switch {
	case caller.Class.SeesAllLeads():
	case caller.Class == domain.RoleSalesManager:
		leadScope.TeamOf = &caller.UserID
	default:
		leadScope.AssignedTo = &caller.UserID
	}

	reminders, err := s.reminders.List(ctx, reminderFilter)
	if err != nil {
		return nil, fmt.Errorf("calendar.Feed: reminders: %w", err)
	}
	leads, err := s.leads.List(ctx, leadScope)
	if err != nil {
		return nil, fmt.Errorf("calendar.Feed: leads: %w", err)
	}
	callLogs, err := s.callLogs.List(ctx, callLogFilter)
	if err != nil {
		return nil, fmt.Errorf("calendar.Feed: call logs: %w", err)
	}

	rs := make([]domain.Reminder, len(reminders))
	for i, r := range reminders {
		rs[i] = r.Reminder
	}
	ls := make([]domain.Lead, len(leads))
	for i, l := range leads {
		ls[i] = l.Lead
	}
	cs := make([]domain.CallLog, len(callLogs))
	for i, c := range callLogs {
		cs[i] = c.CallLog
	}

	return domain.BuildCalendarFeed(scope, rs, ls, cs), nil
}
