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
)

// activityService defines the minimal interface needed by ActivityHandler.
type activityService interface {
	List(ctx context.Context, caller auth.Identity, filter domain.ActivityFilter) ([]domain.ActivityWithUser, error)
	Recent(ctx context.Context, caller auth.Identity, limit int) ([]domain.ActivityWithUser, error)
	ForLead(ctx context.Context, caller auth.Identity, leadID uuid.UUID) ([]domain.ActivityWithUser, error)
	ForUser(ctx context.Context, userID uuid.UUID) ([]domain.ActivityWithUser, error)
}

// ActivityHandler serves the activity feed REST endpoints.
type ActivityHandler struct {
	svc activityService
	log *slog.Logger
}

// NewActivityHandler creates an ActivityHandler.
func NewActivityHandler(svc activityService, logger *slog.Logger) *ActivityHandler {
	return &ActivityHandler{svc: svc, log: logger.With("handler", "activity")}
}

type activityResponse struct {
	ID          uuid.UUID      `json:"id"`
	UserID      uuid.UUID      `json:"user_id"`
	UserName    string         `json:"user_name"`
	ActionType  string         `json:"action_type"`
	Description string         `json:"description"`
	EntityType  *string        `json:"entity_type,omitempty"`
	EntityID    *uuid.UUID     `json:"entity_id,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

func toActivityResponses(entries []domain.ActivityWithUser) []activityResponse {
	out := make([]activityResponse, 0, len(entries))
	for _, e := range entries {
		resp := activityResponse{
			ID:          e.ID,
			UserID:      e.UserID,
			UserName:    e.UserName,
			ActionType:  e.ActionType.String(),
			Description: e.Description,
			EntityID:    e.EntityID,
			Metadata:    e.Metadata,
			CreatedAt:   e.CreatedAt,
		}
		if e.EntityType != nil {
			s := e.EntityType.String()
			resp.EntityType = &s
		}
		out = append(out, resp)
	}
	return out
}

// List handles GET /activities. Optional query parameters "action",
// "entity_type", "skip" and "limit" narrow the feed.
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}

	var filter domain.ActivityFilter
	q := r.URL.Query()
	if raw := q.Get("action"); raw != "" {
		action := domain.ActionType(raw)
		if !action.IsValid() {
			writeError(w, http.StatusBadRequest, "invalid action")
			return
		}
		filter.ActionType = &action
	}
	if raw := q.Get("entity_type"); raw != "" {
		entity := domain.EntityType(raw)
		if !entity.IsValid() {
			writeError(w, http.StatusBadRequest, "invalid entity_type")
			return
		}
		filter.EntityType = &entity
	}
	if raw := q.Get("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil || skip < 0 {
			writeError(w, http.StatusBadRequest, "invalid skip")
			return
		}
		filter.Skip = skip
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = limit
	}

	entries, err := h.svc.List(r.Context(), caller, filter)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toActivityResponses(entries))
}

// Recent handles GET /activities/recent.
func (h *ActivityHandler) Recent(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	entries, err := h.svc.Recent(r.Context(), caller, limit)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toActivityResponses(entries))
}

// ForLead handles GET /activities/lead/{id}.
func (h *ActivityHandler) ForLead(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	entries, err := h.svc.ForLead(r.Context(), caller, id)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toActivityResponses(entries))
}

// ForUser handles GET /activities/user/{id}. The caller may fetch their
// own trail; anyone else's requires the admin view.
func (h *ActivityHandler) ForUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if id != caller.UserID && !caller.Permissions.All() {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	entries, err := h.svc.ForUser(r.Context(), id)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toActivityResponses(entries))
}
