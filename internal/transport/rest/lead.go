package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/domain"
	"github.com/spars/crm-backend/internal/service/lead"
)

// leadService defines the minimal interface needed by LeadHandler.
type leadService interface {
	List(ctx context.Context, caller auth.Identity) ([]domain.LeadWithNames, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.LeadWithNames, error)
	Create(ctx context.Context, caller auth.Identity, in lead.CreateInput) (*domain.LeadWithNames, error)
	Update(ctx context.Context, caller auth.Identity, id uuid.UUID, in lead.UpdateInput) (*domain.LeadWithNames, error)
	Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) (*lead.DeleteResult, error)
	Convert(ctx context.Context, caller auth.Identity, submissionID uuid.UUID, in lead.ConvertInput) (*domain.LeadWithNames, error)
	AddComment(ctx context.Context, caller auth.Identity, leadID uuid.UUID, in lead.CommentInput) (*domain.CommentWithAuthor, error)
	ListComments(ctx context.Context, leadID uuid.UUID) ([]domain.CommentWithAuthor, error)
}

// LeadHandler serves lead REST endpoints, including comments and
// submission conversion.
type LeadHandler struct {
	svc leadService
	log *slog.Logger
}

// NewLeadHandler creates a LeadHandler.
func NewLeadHandler(svc leadService, logger *slog.Logger) *LeadHandler {
	return &LeadHandler{svc: svc, log: logger.With("handler", "lead")}
}

type leadResponse struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Email            *string    `json:"email,omitempty"`
	Phone            *string    `json:"phone,omitempty"`
	Company          *string    `json:"company,omitempty"`
	Designation      *string    `json:"designation,omitempty"`
	SourceType       string     `json:"source_type"`
	Source           *string    `json:"source,omitempty"`
	Status           string     `json:"status"`
	Stage            string     `json:"stage"`
	Assigned         string     `json:"assigned"`
	AssignedTo       *uuid.UUID `json:"assigned_to,omitempty"`
	AssignedToName   *string    `json:"assigned_to_name,omitempty"`
	CreatedBy        *uuid.UUID `json:"created_by,omitempty"`
	CreatedByName    *string    `json:"created_by_name,omitempty"`
	FollowUpRequired bool       `json:"follow_up_required"`
	FollowUpDate     *time.Time `json:"follow_up_date,omitempty"`
	FollowUpTime     *string    `json:"follow_up_time,omitempty"`
	FollowUpStatus   *string    `json:"follow_up_status,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func toLeadResponse(l domain.LeadWithNames) leadResponse {
	resp := leadResponse{
		ID:               l.ID,
		Name:             l.Name,
		Email:            l.Email,
		Phone:            l.Phone,
		Company:          l.Company,
		Designation:      l.Designation,
		SourceType:       l.SourceType,
		Source:           l.Source,
		Status:           l.Status.String(),
		Stage:            l.Stage.String(),
		Assigned:         l.Assigned,
		AssignedTo:       l.AssignedTo,
		AssignedToName:   l.AssignedToName,
		CreatedBy:        l.CreatedBy,
		CreatedByName:    l.CreatedByName,
		FollowUpRequired: l.FollowUpRequired,
		FollowUpDate:     l.FollowUpDate,
		FollowUpTime:     l.FollowUpTime,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
	if l.FollowUpStatus != nil {
		s := l.FollowUpStatus.String()
		resp.FollowUpStatus = &s
	}
	return resp
}

type createLeadRequest struct {
	Name             string                 `json:"name"`
	Email            *string                `json:"email"`
	Phone            *string                `json:"phone"`
	Company          *string                `json:"company"`
	Designation      *string                `json:"designation"`
	SourceType       string                 `json:"source_type"`
	Source           *string                `json:"source"`
	Status           domain.LeadStatus      `json:"status"`
	Stage            domain.LeadStage       `json:"stage"`
	AssignedTo       *uuid.UUID             `json:"assigned_to"`
	FollowUpRequired bool                   `json:"follow_up_required"`
	FollowUpDate     *time.Time             `json:"follow_up_date"`
	FollowUpTime     *string                `json:"follow_up_time"`
	FollowUpStatus   *domain.FollowUpStatus `json:"follow_up_status"`
}

type updateLeadRequest struct {
	Name             *string                `json:"name"`
	Email            *string                `json:"email"`
	Phone            *string                `json:"phone"`
	Company          *string                `json:"company"`
	Designation      *string                `json:"designation"`
	SourceType       *string                `json:"source_type"`
	Source           *string                `json:"source"`
	Status           *domain.LeadStatus     `json:"status"`
	Stage            *domain.LeadStage      `json:"stage"`
	AssignedTo       *uuid.UUID             `json:"assigned_to"`
	ClearAssignee    bool                   `json:"clear_assignee"`
	FollowUpRequired *bool                  `json:"follow_up_required"`
	FollowUpDate     *time.Time             `json:"follow_up_date"`
	FollowUpTime     *string                `json:"follow_up_time"`
	FollowUpStatus   *domain.FollowUpStatus `json:"follow_up_status"`
}

type convertLeadRequest struct {
	Name        string     `json:"name"`
	Email       *string    `json:"email"`
	Phone       *string    `json:"phone"`
	Company     *string    `json:"company"`
	Designation *string    `json:"designation"`
	AssignedTo  *uuid.UUID `json:"assigned_to"`
}

type deleteLeadResponse struct {
	Message string `json:"message"`
	Deleted struct {
		CallLogs    int64 `json:"call_logs"`
		Reminders   int64 `json:"reminders"`
		Comments    int64 `json:"comments"`
		Tags        int64 `json:"tags"`
		Submissions int64 `json:"submissions_detached"`
	} `json:"deleted"`
}

type commentResponse struct {
	ID         uuid.UUID `json:"id"`
	LeadID     uuid.UUID `json:"lead_id"`
	Text       string    `json:"text"`
	CreatedBy  uuid.UUID `json:"created_by"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

func toCommentResponse(c domain.CommentWithAuthor) commentResponse {
	return commentResponse{
		ID:         c.ID,
		LeadID:     c.LeadID,
		Text:       c.Text,
		CreatedBy:  c.CreatedBy,
		AuthorName: c.AuthorName,
		CreatedAt:  c.CreatedAt,
	}
}

// List handles GET /leads.
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}

	leads, err := h.svc.List(r.Context(), caller)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	out := make([]leadResponse, 0, len(leads))
	for _, l := range leads {
		out = append(out, toLeadResponse(l))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /leads/{id}.
func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	l, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toLeadResponse(*l))
}

// Create handles POST /leads.
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}

	var req createLeadRequest
	if !decodeBody(w, r, &req) {
		return
	}

	l, err := h.svc.Create(r.Context(), caller, lead.CreateInput{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		Company:          req.Company,
		Designation:      req.Designation,
		SourceType:       req.SourceType,
		Source:           req.Source,
		Status:           req.Status,
		Stage:            req.Stage,
		AssignedTo:       req.AssignedTo,
		FollowUpRequired: req.FollowUpRequired,
		FollowUpDate:     req.FollowUpDate,
		FollowUpTime:     req.FollowUpTime,
		FollowUpStatus:   req.FollowUpStatus,
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toLeadResponse(*l))
}

// Update handles PATCH /leads/{id}.
func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updateLeadRequest
	if !decodeBody(w, r, &req) {
		return
	}

	l, err := h.svc.Update(r.Context(), caller, id, lead.UpdateInput{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		Company:          req.Company,
		Designation:      req.Designation,
		SourceType:       req.SourceType,
		Source:           req.Source,
		Status:           req.Status,
		Stage:            req.Stage,
		AssignedTo:       req.AssignedTo,
		ClearAssignee:    req.ClearAssignee,
		FollowUpRequired: req.FollowUpRequired,
		FollowUpDate:     req.FollowUpDate,
		FollowUpTime:     req.FollowUpTime,
		FollowUpStatus:   req.FollowUpStatus,
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toLeadResponse(*l))
}

// Delete handles DELETE /leads/{id}. The response reports how many
// dependent rows went with the lead.
func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.svc.Delete(r.Context(), caller, id)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	resp := deleteLeadResponse{Message: "lead deleted"}
	resp.Deleted.CallLogs = result.CallLogs
	resp.Deleted.Reminders = result.Reminders
	resp.Deleted.Comments = result.Comments
	resp.Deleted.Tags = result.Tags
	resp.Deleted.Submissions = result.Submissions
	writeJSON(w, http.StatusOK, resp)
}

// Convert handles POST /leads/convert/{submissionID}.
func (h *LeadHandler) Convert(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}
	submissionID, ok := pathID(w, r, "submissionID")
	if !ok {
		return
	}

	var req convertLeadRequest
	if !decodeBody(w, r, &req) {
		return
	}

	l, err := h.svc.Convert(r.Context(), caller, submissionID, lead.ConvertInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Company:     req.Company,
		Designation: req.Designation,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toLeadResponse(*l))
}

// ListComments handles GET /comments/{leadID}.
func (h *LeadHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "leadID")
	if !ok {
		return
	}

	comments, err := h.svc.ListComments(r.Context(), id)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	out := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

// AddComment handles POST /comments.
func (h *LeadHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}

	var req struct {
		LeadID uuid.UUID `json:"lead_id"`
		Text   string    `json:"text"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.LeadID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "lead_id is required")
		return
	}

	c, err := h.svc.AddComment(r.Context(), caller, req.LeadID, lead.CommentInput{Text: req.Text})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCommentResponse(*c))
}
