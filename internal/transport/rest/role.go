package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/domain"
	"github.com/spars/crm-backend/internal/service/role"
)

// roleService defines the minimal interface needed by RoleHandler.
type roleService interface {
	List(ctx context.Context, caller auth.Identity) ([]domain.Role, error)
	Get(ctx context.Context, caller auth.Identity, id uuid.UUID) (*domain.Role, error)
	Create(ctx context.Context, caller auth.Identity, input role.Input) (*domain.Role, error)
	Update(ctx context.Context, caller auth.Identity, id uuid.UUID, input role.Input) (*domain.Role, error)
	Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) error
}

// RoleHandler serves role management REST endpoints.
type RoleHandler struct {
	svc roleService
	log *slog.Logger
}

// NewRoleHandler creates a RoleHandler.
func NewRoleHandler(svc roleService, logger *slog.Logger) *RoleHandler {
	return &RoleHandler{svc: svc, log: logger.With("handler", "role")}
}

type roleResponse struct {
	ID             uuid.UUID          `json:"id"`
	Name           string             `json:"name"`
	Description    *string            `json:"description,omitempty"`
	Permissions    domain.Permissions `json:"permissions"`
	HierarchyLevel int                `json:"hierarchy_level"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

func toRoleResponse(r domain.Role) roleResponse {
	return roleResponse{
		ID:             r.ID,
		Name:           r.Name,
		Description:    r.Description,
		Permissions:    r.Permissions,
		HierarchyLevel: r.HierarchyLevel,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

type roleRequest struct {
	Name           string             `json:"name"`
	Description    *string            `json:"description"`
	Permissions    domain.Permissions `json:"permissions"`
	HierarchyLevel int                `json:"hierarchy_level"`
}

func (req roleRequest) toInput() role.Input {
	return role.Input{
		Name:           req.Name,
		Description:    req.Description,
		Permissions:    req.Permissions,
		HierarchyLevel: req.HierarchyLevel,
	}
}

// List handles GET /roles.
func (h *RoleHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}

	roles, err := h.svc.List(r.Context(), caller)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	out := make([]roleResponse, 0, len(roles))
	for _, rl := range roles {
		out = append(out, toRoleResponse(rl))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /roles/{id}.
func (h *RoleHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	rl, err := h.svc.Get(r.Context(), caller, id)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toRoleResponse(*rl))
}

// Create handles POST /roles.
func (h *RoleHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}

	var req roleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rl, err := h.svc.Create(r.Context(), caller, req.toInput())
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toRoleResponse(*rl))
}

// Update handles PATCH /roles/{id}.
func (h *RoleHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req roleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rl, err := h.svc.Update(r.Context(), caller, id, req.toInput())
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toRoleResponse(*rl))
}

// Delete handles DELETE /roles/{id}.
func (h *RoleHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, map[string]string{"message": "role deleted"})
}
