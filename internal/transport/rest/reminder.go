package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/domain"
	"github.com/spars/crm-backend/internal/service/reminder"
)

// reminderService defines the minimal interface needed by ReminderHandler.
type reminderService interface {
	List(ctx context.Context, caller auth.Identity, filter domain.ReminderFilter) ([]domain.ReminderWithLead, error)
	Get(ctx context.Context, caller auth.Identity, id uuid.UUID) (*domain.ReminderWithLead, error)
	Create(ctx context.Context, caller auth.Identity, in reminder.CreateInput) (*domain.ReminderWithLead, error)
	Update(ctx context.Context, caller auth.Identity, id uuid.UUID, in reminder.UpdateInput) (*domain.ReminderWithLead, error)
	Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) error
}

// ReminderHandler serves reminder REST endpoints.
type ReminderHandler struct {
	svc reminderService
	log *slog.Logger
}

// NewReminderHandler creates a ReminderHandler.
func NewReminderHandler(svc reminderService, logger *slog.Logger) *ReminderHandler {
	return &ReminderHandler{svc: svc, log: logger.With("handler", "reminder")}
}

type reminderResponse struct {
	ID          uuid.UUID  `json:"id"`
	LeadID      *uuid.UUID `json:"lead_id,omitempty"`
	LeadName    *string    `json:"lead_name,omitempty"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	DueDate     time.Time  `json:"due_date"`
	Status      string     `json:"status"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toReminderResponse(rm domain.ReminderWithLead) reminderResponse {
	return reminderResponse{
		ID:          rm.ID,
		LeadID:      rm.LeadID,
		LeadName:    rm.LeadName,
		UserID:      rm.UserID,
		Title:       rm.Title,
		Description: rm.Description,
		DueDate:     rm.DueDate,
		Status:      rm.Status.String(),
		Completed:   rm.Completed,
		CompletedAt: rm.CompletedAt,
		CreatedAt:   rm.CreatedAt,
	}
}

type createReminderRequest struct {
	LeadID      *uuid.UUID `json:"lead_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     time.Time  `json:"due_date"`
}

type updateReminderRequest struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	DueDate     *time.Time             `json:"due_date"`
	Status      *domain.ReminderStatus `json:"status"`
}

// List handles GET /reminders. Optional query parameters "lead_id",
// "user_id", "completed" and "due_after" narrow the listing.
func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}

	var filter domain.ReminderFilter
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
	if raw := r.URL.Query().Get("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid completed")
			return
		}
		filter.Completed = &completed
	}
	if raw := r.URL.Query().Get("due_after"); raw != "" {
		due, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid due_after")
			return
		}
		filter.DueAfter = &due
	}

	reminders, err := h.svc.List(r.Context(), caller, filter)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	out := make([]reminderResponse, 0, len(reminders))
	for _, rm := range reminders {
		out = append(out, toReminderResponse(rm))
	}
	writeJSON(w, http.StatusOK, out)
}

// MyUpcoming handles GET /reminders/my/upcoming: the caller's pending
// reminders due from now on.
func (h *ReminderHandler) MyUpcoming(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}

	completed := false
	now := time.Now().UTC()
	reminders, err := h.svc.List(r.Context(), caller, domain.ReminderFilter{
		UserID:    &caller.UserID,
		Completed: &completed,
		DueAfter:  &now,
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	out := make([]reminderResponse, 0, len(reminders))
	for _, rm := range reminders {
		out = append(out, toReminderResponse(rm))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /reminders/{id}.
func (h *ReminderHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	rm, err := h.svc.Get(r.Context(), caller, id)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toReminderResponse(*rm))
}

// Create handles POST /reminders.
func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}

	var req createReminderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rm, err := h.svc.Create(r.Context(), caller, reminder.CreateInput{
		LeadID:      req.LeadID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toReminderResponse(*rm))
}

// Update handles PATCH /reminders/{id}.
func (h *ReminderHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updateReminderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rm, err := h.svc.Update(r.Context(), caller, id, reminder.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      req.Status,
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toReminderResponse(*rm))
}

// Delete handles DELETE /reminders/{id}.
func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, map[string]string{"message": "reminder deleted"})
}
