package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/service/report"
)

// reportService defines the minimal interface needed by ReportHandler.
type reportService interface {
	TeamPerformance(ctx context.Context, caller auth.Identity) ([]report.ExecutiveReport, error)
	OrgPerformance(ctx context.Context, caller auth.Identity) ([]report.ManagerReport, error)
}

// ReportHandler serves performance report endpoints.
type ReportHandler struct {
	svc reportService
	log *slog.Logger
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(svc reportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{svc: svc, log: logger.With("handler", "report")}
}

type executiveReportResponse struct {
	UserID            uuid.UUID      `json:"user_id"`
	Name              string         `json:"name"`
	Email             string         `json:"email"`
	TotalLeads        int            `json:"total_leads"`
	TotalCalls        int            `json:"total_calls"`
	ConversionRate    float64        `json:"conversion_rate"`
	TotalDollarValue  float64        `json:"total_dollar_value"`
	SecuredOrders     int            `json:"secured_orders"`
	ClosedWon         int            `json:"closed_won"`
	StatusCounts      map[string]int `json:"status_counts"`
	StageDistribution map[string]int `json:"stage_distribution"`
}

type managerReportResponse struct {
	ManagerID         uuid.UUID                 `json:"manager_id"`
	Name              string                    `json:"name"`
	Email             string                    `json:"email"`
	Team              []executiveReportResponse `json:"team"`
	TotalLeads        int                       `json:"total_leads"`
	TotalCalls        int                       `json:"total_calls"`
	ConversionRate    float64                   `json:"conversion_rate"`
	TotalDollarValue  float64                   `json:"total_dollar_value"`
	SecuredOrders     int                       `json:"secured_orders"`
	ClosedWon         int                       `json:"closed_won"`
	StatusCounts      map[string]int            `json:"status_counts"`
	StageDistribution map[string]int            `json:"stage_distribution"`
}

func toExecutiveReportResponse(r report.ExecutiveReport) executiveReportResponse {
	return executiveReportResponse{
		UserID:            r.UserID,
		Name:              r.Name,
		Email:             r.Email,
		TotalLeads:        r.TotalLeads,
		TotalCalls:        r.TotalCalls,
		ConversionRate:    r.ConversionRate,
		TotalDollarValue:  r.TotalDollarValue,
		SecuredOrders:     r.SecuredOrders,
		ClosedWon:         r.ClosedWon,
		StatusCounts:      r.StatusCounts,
		StageDistribution: r.StageDistribution,
	}
}

// TeamPerformance handles GET /reports/team-performance.
func (h *ReportHandler) TeamPerformance(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}

	reports, err := h.svc.TeamPerformance(r.Context(), caller)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	out := make([]executiveReportResponse, 0, len(reports))
	for _, rep := range reports {
		out = append(out, toExecutiveReportResponse(rep))
	}
	writeJSON(w, http.StatusOK, out)
}

// OrgPerformance handles GET /reports/org-performance.
func (h *ReportHandler) OrgPerformance(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}

	reports, err := h.svc.OrgPerformance(r.Context(), caller)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	out := make([]managerReportResponse, 0, len(reports))
	for _, rep := range reports {
		team := make([]executiveReportResponse, 0, len(rep.Team))
		for _, e := range rep.Team {
			team = append(team, toExecutiveReportResponse(e))
		}
		out = append(out, managerReportResponse{
			ManagerID:         rep.ManagerID,
			Name:              rep.Name,
			Email:             rep.Email,
			Team:              team,
			TotalLeads:        rep.TotalLeads,
			TotalCalls:        rep.TotalCalls,
			ConversionRate:    rep.ConversionRate,
			TotalDollarValue:  rep.TotalDollarValue,
			SecuredOrders:     rep.SecuredOrders,
			ClosedWon:         rep.ClosedWon,
			StatusCounts:      rep.StatusCounts,
			StageDistribution: rep.StageDistribution,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
