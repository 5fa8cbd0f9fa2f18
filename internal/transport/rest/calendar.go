package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/domain"
)

// calendarService defines the minimal interface needed by CalendarHandler.
type calendarService interface {
	Feed(ctx context.Context, caller auth.Identity, scope domain.CalendarScope) ([]domain.CalendarItem, error)
}

// CalendarHandler serves the unified calendar feed.
type CalendarHandler struct {
	svc calendarService
	log *slog.Logger
}

// NewCalendarHandler creates a CalendarHandler.
func NewCalendarHandler(svc calendarService, logger *slog.Logger) *CalendarHandler {
	return &CalendarHandler{svc: svc, log: logger.With("handler", "calendar")}
}

type calendarItemResponse struct {
	Type        string     `json:"type"`
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Due         time.Time  `json:"due"`
	LeadID      *uuid.UUID `json:"lead_id,omitempty"`
	Status      string     `json:"status"`
	Completed   bool       `json:"completed"`
	Cancelled   bool       `json:"cancelled"`
}

// Feed handles GET /calendar/feed. "date" scopes to one day, "start" plus
// "end" to an inclusive range; without parameters the full feed comes
// back sorted by due time. Dates are "2006-01-02".
func (h *CalendarHandler) Feed(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}

	scope, ok := h.parseScope(w, r)
	if !ok {
		return
	}

	items, err := h.svc.Feed(r.Context(), caller, scope)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	out := make([]calendarItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, calendarItemResponse{
			Type:        item.Type.String(),
			ID:          item.ID,
			Title:       item.Title,
			Description: item.Description,
			Due:         item.Due,
			LeadID:      item.LeadID,
			Status:      item.Status,
			Completed:   item.Completed,
			Cancelled:   item.Cancelled,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *CalendarHandler) parseScope(w http.ResponseWriter, r *http.Request) (domain.CalendarScope, bool) {
	q := r.URL.Query()

	if raw := q.Get("date"); raw != "" {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date")
			return domain.CalendarScope{}, false
		}
		return domain.ScopeDay(day), true
	}

	rawStart, rawEnd := q.Get("start"), q.Get("end")
	if rawStart == "" && rawEnd == "" {
		return domain.ScopeAll(), true
	}
	if rawStart == "" || rawEnd == "" {
		writeError(w, http.StatusBadRequest, "start and end must be given together")
		return domain.CalendarScope{}, false
	}

	start, err := time.Parse("2006-01-02", rawStart)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start")
		return domain.CalendarScope{}, false
	}
	end, err := time.Parse("2006-01-02", rawEnd)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end")
		return domain.CalendarScope{}, false
	}
	if end.Before(start) {
		writeError(w, http.StatusBadRequest, "end must not precede start")
		return domain.CalendarScope{}, false
	}
	return domain.ScopeRange(start, end), true
}
