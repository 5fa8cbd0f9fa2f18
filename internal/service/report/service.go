// Package report computes team and organization performance metrics
// from leads and call logs.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/domain"
)

// Legacy rows predating the current status set count as wins too.
const legacyWonStatus = "Won"

type userRepo interface {
	List(ctx context.Context, filter domain.UserFilter) ([]domain.UserWithRole, error)
	ListAssignable(ctx context.Context, managerID *uuid.UUID) ([]domain.UserWithRole, error)
}

type leadRepo interface {
	ListByAssignees(ctx context.Context, userIDs []uuid.UUID) ([]domain.LeadWithNames, error)
}

type callLogRepo interface {
	ListByUsers(ctx context.Context, userIDs []uuid.UUID) ([]domain.CallLogWithNames, error)
}

// Service implements performance reporting.
type Service struct {
	log      *slog.Logger
	users    userRepo
	leads    leadRepo
	callLogs callLogRepo
}

// NewService creates a new report service instance.
func NewService(logger *slog.Logger, users userRepo, leads leadRepo, callLogs callLogRepo) *Service {
	return &Service{
		log:      logger.With("service", "report"),
		users:    users,
		leads:    leads,
		callLogs: callLogs,
	}
}

// ExecutiveReport aggregates one sales executive's pipeline.
type ExecutiveReport struct {
	UserID            uuid.UUID
	Name              string
	Email             string
	TotalLeads        int
	TotalCalls        int
	ConversionRate    float64
	TotalDollarValue  float64
	SecuredOrders     int
	ClosedWon         int
	StatusCounts      map[string]int
	StageDistribution map[string]int
}

// ManagerReport aggregates a sales manager's team.
type ManagerReport struct {
	ManagerID         uuid.UUID
	Name              string
	Email             string
	Team              []ExecutiveReport
	TotalLeads        int
	TotalCalls        int
	ConversionRate    float64
	TotalDollarValue  float64
	SecuredOrders     int
	ClosedWon         int
	StatusCounts      map[string]int
	StageDistribution map[string]int
}

// TeamPerformance returns per-executive metrics. Sales managers get
// their own team; administrators get every executive.
func (s *Service) TeamPerformance(ctx context.Context, caller auth.Identity) ([]ExecutiveReport, error) {
	if !caller.Permissions.CanRead(domain.PermReports) {
		return nil, fmt.Errorf("report.TeamPerformance: %w", domain.ErrForbidden)
	}

	var managerID *uuid.UUID
	switch caller.Class {
	case domain.RoleAdmin:
	case domain.RoleSalesManager:
		managerID = &caller.UserID
	default:
		return nil, fmt.Errorf("report.TeamPerformance: %w", domain.ErrForbidden)
	}

	executives, err := s.users.ListAssignable(ctx, managerID)
	if err != nil {
		return nil, fmt.Errorf("report.TeamPerformance: %w", err)
	}
	reports, err := s.executiveReports(ctx, executives)
	if err != nil {
		return nil, fmt.Errorf("report.TeamPerformance: %w", err)
	}
	return reports, nil
}

// OrgPerformance returns metrics grouped per sales manager with their
// teams. Administrators only.
func (s *Service) OrgPerformance(ctx context.Context, caller auth.Identity) ([]ManagerReport, error) {
	if !caller.Permissions.CanRead(domain.PermReports) {
		return nil, fmt.Errorf("report.OrgPerformance: %w", domain.ErrForbidden)
	}
	if caller.Class != domain.RoleAdmin {
		return nil, fmt.Errorf("report.OrgPerformance: %w", domain.ErrForbidden)
	}

	managerRole := domain.RoleNameSalesManager
	managers, err := s.users.List(ctx, domain.UserFilter{RoleName: &managerRole})
	if err != nil {
		return nil, fmt.Errorf("report.OrgPerformance: %w", err)
	}
	executives, err := s.users.ListAssignable(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("report.OrgPerformance: %w", err)
	}

	byManager := make(map[uuid.UUID][]domain.UserWithRole)
	for _, e := range executives {
		if e.ManagerID != nil {
			byManager[*e.ManagerID] = append(byManager[*e.ManagerID], e)
		}
	}

	out := make([]ManagerReport, 0, len(managers))
	for _, m := range managers {
		team, err := s.executiveReports(ctx, byManager[m.ID])
		if err != nil {
			return nil, fmt.Errorf("report.OrgPerformance: %w", err)
		}

		mr := ManagerReport{
			ManagerID:         m.ID,
			Name:              m.Name,
			Email:             m.Email,
			Team:              team,
			StatusCounts:      map[string]int{},
			StageDistribution: map[string]int{},
		}
		for _, e := range team {
			mr.TotalLeads += e.TotalLeads
			mr.TotalCalls += e.TotalCalls
			mr.TotalDollarValue += e.TotalDollarValue
			mr.SecuredOrders += e.SecuredOrders
			mr.ClosedWon += e.ClosedWon
			for k, v := range e.StatusCounts {
				mr.StatusCounts[k] += v
			}
			for k, v := range e.StageDistribution {
				mr.StageDistribution[k] += v
			}
		}
		if mr.TotalLeads > 0 {
			mr.ConversionRate = round2(float64(mr.ClosedWon) / float64(mr.TotalLeads) * 100)
		}
		mr.TotalDollarValue = round2(mr.TotalDollarValue)
		out = append(out, mr)
	}
	return out, nil
}

// executiveReports builds per-executive metrics with a single batch
// fetch of leads and call logs.
func (s *Service) executiveReports(ctx context.Context, executives []domain.UserWithRole) ([]ExecutiveReport, error) {
	ids := make([]uuid.UUID, len(executives))
	for i, e := range executives {
		ids[i] = e.ID
	}

	leads, err := s.leads.ListByAssignees(ctx, ids)
	if err != nil {
		return nil, err
	}
	callLogs, err := s.callLogs.ListByUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	leadsByUser := make(map[uuid.UUID][]domain.LeadWithNames)
	for _, l := range leads {
		if l.AssignedTo != nil {
			leadsByUser[*l.AssignedTo] = append(leadsByUser[*l.AssignedTo], l)
		}
	}
	callsByUser := make(map[uuid.UUID][]domain.CallLogWithNames)
	for _, c := range callLogs {
		callsByUser[c.UserID] = append(callsByUser[c.UserID], c)
	}

	out := make([]ExecutiveReport, 0, len(executives))
	for _, e := range executives {
		out = append(out, buildExecutiveReport(e, leadsByUser[e.ID], callsByUser[e.ID]))
	}
	return out, nil
}

func buildExecutiveReport(e domain.UserWithRole, leads []domain.LeadWithNames, calls []domain.CallLogWithNames) ExecutiveReport {
	r := ExecutiveReport{
		UserID:            e.ID,
		Name:              e.Name,
		Email:             e.Email,
		TotalLeads:        len(leads),
		TotalCalls:        len(calls),
		StatusCounts:      map[string]int{},
		StageDistribution: map[string]int{},
	}

	for _, l := range leads {
		r.StatusCounts[l.Status.String()]++
		r.StageDistribution[l.Stage.String()]++
	}
	r.ClosedWon = r.StatusCounts[domain.LeadStatusClosedWon.String()] + r.StatusCounts[legacyWonStatus]
	if r.TotalLeads > 0 {
		r.ConversionRate = round2(float64(r.ClosedWon) / float64(r.TotalLeads) * 100)
	}

	for _, c := range calls {
		if c.DollarValue != nil {
			r.TotalDollarValue += *c.DollarValue
		}
		if c.SecuredOrder {
			r.SecuredOrders++
		}
	}
	r.TotalDollarValue = round2(r.TotalDollarValue)
	return r
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
