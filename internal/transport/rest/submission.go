package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/domain"
	"github.com/spars/crm-backend/internal/service/submission"
)

// submissionService defines the minimal interface needed by SubmissionHandler.
type submissionService interface {
	Intake(ctx context.Context, in submission.IntakeInput) (*domain.Submission, error)
	List(ctx context.Context, caller auth.Identity, status *domain.SubmissionStatus) ([]domain.Submission, error)
	ListByType(ctx context.Context, caller auth.Identity, formType string) ([]domain.Submission, error)
	Get(ctx context.Context, caller auth.Identity, id uuid.UUID) (*domain.Submission, error)
	Archive(ctx context.Context, caller auth.Identity, id uuid.UUID) error
	Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) error
}

// SubmissionHandler serves website form submission endpoints. Intake is
// public; everything else sits behind auth.
type SubmissionHandler struct {
	svc submissionService
	log *slog.Logger
}

// NewSubmissionHandler creates a SubmissionHandler.
func NewSubmissionHandler(svc submissionService, logger *slog.Logger) *SubmissionHandler {
	return &SubmissionHandler{svc: svc, log: logger.With("handler", "submission")}
}

type submissionResponse struct {
	ID          uuid.UUID      `json:"id"`
	FormType    string         `json:"form_type"`
	Name        string         `json:"name"`
	Email       *string        `json:"email,omitempty"`
	Company     *string        `json:"company,omitempty"`
	Status      string         `json:"status"`
	LeadID      *uuid.UUID     `json:"lead_id,omitempty"`
	Data        map[string]any `json:"data,omitempty"`
	SubmittedAt time.Time      `json:"submitted_at"`
}

func toSubmissionResponse(s domain.Submission) submissionResponse {
	return submissionResponse{
		ID:          s.ID,
		FormType:    s.FormType,
		Name:        s.Name,
		Email:       s.Email,
		Company:     s.Company,
		Status:      s.Status.String(),
		LeadID:      s.LeadID,
		Data:        s.Data,
		SubmittedAt: s.Submitted,
	}
}

func toSubmissionResponses(subs []domain.Submission) []submissionResponse {
	out := make([]submissionResponse, 0, len(subs))
	for _, s := range subs {
		out = append(out, toSubmissionResponse(s))
	}
	return out
}

type intakeRequest struct {
	FormType string         `json:"form_type"`
	Name     string         `json:"name"`
	Email    *string        `json:"email"`
	Company  *string        `json:"company"`
	Data     map[string]any `json:"data"`
}

// Intake handles POST /form-submissions. Unauthenticated: this is the
// website-facing intake endpoint.
func (h *SubmissionHandler) Intake(w http.ResponseWriter, r *http.Request) {
	var req intakeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sub, err := h.svc.Intake(r.Context(), submission.IntakeInput{
		FormType: req.FormType,
		Name:     req.Name,
		Email:    req.Email,
		Company:  req.Company,
		Data:     req.Data,
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSubmissionResponse(*sub))
}

// List handles GET /form-submissions. The optional "status" query
// parameter narrows the listing.
func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}

	var status *domain.SubmissionStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := domain.SubmissionStatus(raw)
		status = &s
	}

	subs, err := h.svc.List(r.Context(), caller, status)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSubmissionResponses(subs))
}

// ListByType handles GET /form-submissions/type/{formType}.
func (h *SubmissionHandler) ListByType(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}

	formType := chi.URLParam(r, "formType")
	subs, err := h.svc.ListByType(r.Context(), caller, formType)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSubmissionResponses(subs))
}

// Get handles GET /form-submissions/{id}.
func (h *SubmissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	sub, err := h.svc.Get(r.Context(), caller, id)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSubmissionResponse(*sub))
}

// Archive handles POST /form-submissions/{id}/archive.
func (h *SubmissionHandler) Archive(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Archive(r.Context(), caller, id); err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "submission archived"})
}

// Delete handles DELETE /form-submissions/{id}.
func (h *SubmissionHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, map[string]string{"message": "submission deleted"})
}
