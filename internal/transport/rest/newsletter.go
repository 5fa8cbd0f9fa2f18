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

// newsletterService defines the minimal interface needed by NewsletterHandler.
type newsletterService interface {
	Subscribe(ctx context.Context, email string) (*domain.NewsletterSubscriber, error)
	List(ctx context.Context, caller auth.Identity) ([]domain.NewsletterSubscriber, error)
	SetActive(ctx context.Context, caller auth.Identity, id uuid.UUID, active bool) error
	Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) error
}

// NewsletterHandler serves newsletter endpoints. Subscribe is public;
// the rest is administrative.
type NewsletterHandler struct {
	svc newsletterService
	log *slog.Logger
}

// NewNewsletterHandler creates a NewsletterHandler.
func NewNewsletterHandler(svc newsletterService, logger *slog.Logger) *NewsletterHandler {
	return &NewsletterHandler{svc: svc, log: logger.With("handler", "newsletter")}
}

type subscriberResponse struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Active       bool      `json:"active"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

func toSubscriberResponse(s domain.NewsletterSubscriber) subscriberResponse {
	return subscriberResponse{
		ID:           s.ID,
		Email:        s.Email,
		Active:       s.Active,
		SubscribedAt: s.SubscribedAt,
	}
}

// Subscribe handles POST /newsletter. Unauthenticated.
func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	sub, err := h.svc.Subscribe(r.Context(), req.Email)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSubscriberResponse(*sub))
}

// List handles GET /newsletter.
func (h *NewsletterHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}

	subs, err := h.svc.List(r.Context(), caller)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	out := make([]subscriberResponse, 0, len(subs))
	for _, s := range subs {
		out = append(out, toSubscriberResponse(s))
	}
	writeJSON(w, http.StatusOK, out)
}

// SetActive handles PATCH /newsletter/{id}.
func (h *NewsletterHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Active bool `json:"active"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.svc.SetActive(r.Context(), caller, id, req.Active); err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "subscriber updated"})
}

// Delete handles DELETE /newsletter/{id}.
func (h *NewsletterHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, map[string]string{"message": "subscriber deleted"})
}
