package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/domain"
	"github.com/spars/crm-backend/internal/service/calllog"
)

// callLogService defines the minimal interface needed by CallLogHandler.
type callLogService interface {
	List(ctx context.Context, caller auth.Identity, filter domain.CallLogFilter) ([]domain.CallLogWithNames, error)
	Get(ctx context.Context, caller auth.Identity, id uuid.UUID) (*domain.CallLogWithNames, error)
	Create(ctx context.Context, caller auth.Identity, in calllog.CreateInput) (*domain.CallLogWithNames, error)
	Update(ctx context.Context, caller auth.Identity, id uuid.UUID, in calllog.UpdateInput) (*domain.CallLogWithNames, error)
	Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) error
}

// CallLogHandler serves call log REST endpoints.
type CallLogHandler struct {
	svc callLogService
	log *slog.Logger
}

// NewCallLogHandler creates a CallLogHandler.
func NewCallLogHandler(svc callLogService, logger *slog.Logger) *CallLogHandler {
	return &CallLogHandler{svc: svc, log: logger.With("handler", "calllog")}
}

type callLogResponse struct {
	ID               uuid.UUID  `json:"id"`
	LeadID           uuid.UUID  `json:"lead_id"`
	LeadName         string     `json:"lead_name"`
	UserID           uuid.UUID  `json:"user_id"`
	UserName         string     `json:"user_name"`
	Stage            *string    `json:"stage,omitempty"`
	ActivityType     *string    `json:"activity_type,omitempty"`
	Objective        *string    `json:"objective,omitempty"`
	PlanningNotes    *string    `json:"planning_notes,omitempty"`
	PostMeetingNotes *string    `json:"post_meeting_notes,omitempty"`
	FollowUpNotes    *string    `json:"follow_up_notes,omitempty"`
	Challenges       *string    `json:"challenges,omitempty"`
	SecuredOrder     bool       `json:"secured_order"`
	DollarValue      *float64   `json:"dollar_value,omitempty"`
	MeetingDate      *time.Time `json:"meeting_date,omitempty"`
	IsCompleted      bool       `json:"is_completed"`
	IsCancelled      bool       `json:"is_cancelled"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func toCallLogResponse(c domain.CallLogWithNames) callLogResponse {
	resp := callLogResponse{
		ID:               c.ID,
		LeadID:           c.LeadID,
		LeadName:         c.LeadName,
		UserID:           c.UserID,
		UserName:         c.UserName,
		ActivityType:     c.ActivityType,
		Objective:        c.Objective,
		PlanningNotes:    c.PlanningNotes,
		PostMeetingNotes: c.PostMeetingNotes,
		FollowUpNotes:    c.FollowUpNotes,
		Challenges:       c.Challenges,
		SecuredOrder:     c.SecuredOrder,
		DollarValue:      c.DollarValue,
		MeetingDate:      c.MeetingDate,
		IsCompleted:      c.IsCompleted,
		IsCancelled:      c.IsCancelled,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
	if c.Stage != nil {
		s := c.Stage.String()
		resp.Stage = &s
	}
	return resp
}

type createCallLogRequest struct {
	LeadID           uuid.UUID         `json:"lead_id"`
	Stage            *domain.LeadStage `json:"stage"`
	ActivityType     *string           `json:"activity_type"`
	Objective        *string           `json:"objective"`
	PlanningNotes    *string           `json:"planning_notes"`
	PostMeetingNotes *string           `json:"post_meeting_notes"`
	FollowUpNotes    *string           `json:"follow_up_notes"`
	Challenges       *string           `json:"challenges"`
	SecuredOrder     bool              `json:"secured_order"`
	DollarValue      *float64          `json:"dollar_value"`
	MeetingDate      *time.Time        `json:"meeting_date"`
}

type updateCallLogRequest struct {
	Stage            *domain.LeadStage `json:"stage"`
	ActivityType     *string           `json:"activity_type"`
	Objective        *string           `json:"objective"`
	PlanningNotes    *string           `json:"planning_notes"`
	PostMeetingNotes *string           `json:"post_meeting_notes"`
	FollowUpNotes    *string           `json:"follow_up_notes"`
	Challenges       *string           `json:"challenges"`
	SecuredOrder     *bool             `json:"secured_order"`
	DollarValue      *float64          `json:"dollar_value"`
	MeetingDate      *time.Time        `json:"meeting_date"`
	IsCompleted      *bool             `json:"is_completed"`
	IsCancelled      *bool             `json:"is_cancelled"`
}

// List handles GET /call-logs. Optional query parameters "lead_id" and
// "user_id" narrow the listing.
func (h *CallLogHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}

	var filter domain.CallLogFilter
	if raw := r.URL.Query().Get("lead_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid lead_id")
			return
		}
		filter.LeadID = &id
	}
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid user_id")
			return
		}
		filter.UserID = &id
	}

	logs, err := h.svc.List(r.Context(), caller, filter)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	out := make([]callLogResponse, 0, len(logs))
	for _, c := range logs {
		out = append(out, toCallLogResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /call-logs/{id}.
func (h *CallLogHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	c, err := h.svc.Get(r.Context(), caller, id)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCallLogResponse(*c))
}

// Create handles POST /call-logs.
func (h *CallLogHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}

	var req createCallLogRequest
	if !decodeBody(w, r, &req) {
		return
	}

	c, err := h.svc.Create(r.Context(), caller, calllog.CreateInput{
		LeadID:           req.LeadID,
		Stage:            req.Stage,
		ActivityType:     req.ActivityType,
		Objective:        req.Objective,
		PlanningNotes:    req.PlanningNotes,
		PostMeetingNotes: req.PostMeetingNotes,
		FollowUpNotes:    req.FollowUpNotes,
		Challenges:       req.Challenges,
		SecuredOrder:     req.SecuredOrder,
		DollarValue:      req.DollarValue,
		MeetingDate:      req.MeetingDate,
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCallLogResponse(*c))
}

// Update handles PATCH /call-logs/{id}.
func (h *CallLogHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updateCallLogRequest
	if !decodeBody(w, r, &req) {
		return
	}

	c, err := h.svc.Update(r.Context(), caller, id, calllog.UpdateInput{
		Stage:            req.Stage,
		ActivityType:     req.ActivityType,
		Objective:        req.Objective,
		PlanningNotes:    req.PlanningNotes,
		PostMeetingNotes: req.PostMeetingNotes,
		FollowUpNotes:    req.FollowUpNotes,
		Challenges:       req.Challenges,
		SecuredOrder:     req.SecuredOrder,
		DollarValue:      req.DollarValue,
		MeetingDate:      req.MeetingDate,
		Completed:        req.IsCompleted,
		Cancelled:        req.IsCancelled,
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCallLogResponse(*c))
}

// Delete handles DELETE /call-logs/{id}.
func (h *CallLogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), caller, id); err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "call log deleted"})
}
