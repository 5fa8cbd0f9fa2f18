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
	"github.com/spars/crm-backend/internal/service/tag"
)

// tagService defines the minimal interface needed by TagHandler.
type tagService interface {
	List(ctx context.Context, caller auth.Identity, entityType domain.EntityType) ([]domain.Tag, error)
	Create(ctx context.Context, caller auth.Identity, in tag.Input) (*domain.Tag, error)
	Update(ctx context.Context, caller auth.Identity, id uuid.UUID, in tag.Input) (*domain.Tag, error)
	Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) error
	ForEntity(ctx context.Context, caller auth.Identity, entityType domain.EntityType, entityID uuid.UUID) ([]domain.Tag, error)
	Attach(ctx context.Context, caller auth.Identity, tagID uuid.UUID, entityType domain.EntityType, entityID uuid.UUID) error
	Detach(ctx context.Context, caller auth.Identity, tagID uuid.UUID, entityType domain.EntityType, entityID uuid.UUID) error
}

// TagHandler serves tag REST endpoints.
type TagHandler struct {
	svc tagService
	log *slog.Logger
}

// NewTagHandler creates a TagHandler.
func NewTagHandler(svc tagService, logger *slog.Logger) *TagHandler {
	return &TagHandler{svc: svc, log: logger.With("handler", "tag")}
}

type tagResponse struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Color      string     `json:"color"`
	EntityType string     `json:"entity_type"`
	CreatedBy  *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func toTagResponse(t domain.Tag) tagResponse {
	return tagResponse{
		ID:         t.ID,
		Name:       t.Name,
		Color:      t.Color,
		EntityType: t.EntityType.String(),
		CreatedBy:  t.CreatedBy,
		CreatedAt:  t.CreatedAt,
	}
}

func toTagResponses(tags []domain.Tag) []tagResponse {
	out := make([]tagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, toTagResponse(t))
	}
	return out
}

type tagRequest struct {
	Name       string `json:"name"`
	Color      string `json:"color"`
	EntityType string `json:"entity_type"`
}

type attachRequest struct {
	TagID uuid.UUID `json:"tag_id"`
}

// pathEntity parses the {entityType}/{entityID} pair shared by the
// entity-tag routes.
func pathEntity(w http.ResponseWriter, r *http.Request) (domain.EntityType, uuid.UUID, bool) {
	entityType := domain.EntityType(chi.URLParam(r, "entityType"))
	if !entityType.IsValid() {
		writeError(w, http.StatusBadRequest, "invalid entity type")
		return "", uuid.Nil, false
	}
	entityID, ok := pathID(w, r, "entityID")
	if !ok {
		return "", uuid.Nil, false
	}
	return entityType, entityID, true
}

// List handles GET /tags. The "entity_type" query parameter is required.
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}

	entityType := domain.EntityType(r.URL.Query().Get("entity_type"))
	if !entityType.IsValid() {
		writeError(w, http.StatusBadRequest, "invalid entity_type")
		return
	}

	tags, err := h.svc.List(r.Context(), caller, entityType)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTagResponses(tags))
}

// ForEntity handles GET /tags/entity/{entityType}/{entityID}.
func (h *TagHandler) ForEntity(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}

	entityType, entityID, ok := pathEntity(w, r)
	if !ok {
		return
	}

	tags, err := h.svc.ForEntity(r.Context(), caller, entityType, entityID)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTagResponses(tags))
}

// Create handles POST /tags.
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}

	var req tagRequest
	if !decodeBody(w, r, &req) {
		return
	}

	t, err := h.svc.Create(r.Context(), caller, tag.Input{
		Name:       req.Name,
		Color:      req.Color,
		EntityType: domain.EntityType(req.EntityType),
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTagResponse(*t))
}

// Update handles PATCH /tags/{id}.
func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req tagRequest
	if !decodeBody(w, r, &req) {
		return
	}

	t, err := h.svc.Update(r.Context(), caller, id, tag.Input{
		Name:       req.Name,
		Color:      req.Color,
		EntityType: domain.EntityType(req.EntityType),
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTagResponse(*t))
}

// Delete handles DELETE /tags/{id}.
func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, map[string]string{"message": "tag deleted"})
}

// Attach handles POST /tags/entity/{entityType}/{entityID}. The body
// names the tag to attach.
func (h *TagHandler) Attach(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}
	entityType, entityID, ok := pathEntity(w, r)
	if !ok {
		return
	}

	var req attachRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.TagID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "tag_id is required")
		return
	}

	err := h.svc.Attach(r.Context(), caller, req.TagID, entityType, entityID)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "tag attached"})
}

// Detach handles DELETE /tags/entity/{entityType}/{entityID}/{tagID}.
func (h *TagHandler) Detach(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}
	entityType, entityID, ok := pathEntity(w, r)
	if !ok {
		return
	}
	tagID, ok := pathID(w, r, "tagID")
	if !ok {
		return
	}

	err := h.svc.Detach(r.Context(), caller, tagID, entityType, entityID)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "tag detached"})
}
