package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/domain"
	"github.com/spars/crm-backend/internal/service/user"
)

// userService defines the minimal interface needed by UserHandler.
type userService interface {
	List(ctx context.Context, caller auth.Identity, filter domain.UserFilter) ([]domain.UserWithRole, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.UserWithRole, error)
	Assignable(ctx context.Context, caller auth.Identity) ([]domain.UserWithRole, error)
	Hierarchy(ctx context.Context, caller auth.Identity) (*domain.Hierarchy, error)
	Create(ctx context.Context, caller auth.Identity, input user.CreateInput) (*domain.UserWithRole, error)
	Update(ctx context.Context, caller auth.Identity, id uuid.UUID, input user.UpdateInput) (*domain.UserWithRole, error)
	Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) error
}

// UserHandler serves user management REST endpoints.
type UserHandler struct {
	svc userService
	log *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc userService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: logger.With("handler", "user")}
}

type userResponse struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	RoleID         uuid.UUID  `json:"role_id"`
	RoleName       string     `json:"role_name"`
	HierarchyLevel int        `json:"hierarchy_level"`
	ManagerID      *uuid.UUID `json:"manager_id,omitempty"`
	ManagerName    *string    `json:"manager_name,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func toUserResponse(u domain.UserWithRole) userResponse {
	return userResponse{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		RoleID:         u.RoleID,
		RoleName:       u.RoleName,
		HierarchyLevel: u.HierarchyLevel,
		ManagerID:      u.ManagerID,
		ManagerName:    u.ManagerName,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func toUserResponses(users []domain.UserWithRole) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

type createUserRequest struct {
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Password  string     `json:"password"`
	RoleID    uuid.UUID  `json:"role_id"`
	ManagerID *uuid.UUID `json:"manager_id"`
}

type updateUserRequest struct {
	Name         *string    `json:"name"`
	Email        *string    `json:"email"`
	Password     *string    `json:"password"`
	RoleID       *uuid.UUID `json:"role_id"`
	ManagerID    *uuid.UUID `json:"manager_id"`
	ClearManager bool       `json:"clear_manager"`
}

type hierarchyNodeResponse struct {
	User    userResponse   `json:"user"`
	Reports []userResponse `json:"reports"`
}

type hierarchyResponse struct {
	Admins     []userResponse          `json:"admins"`
	Managers   []hierarchyNodeResponse `json:"managers"`
	Marketing  []userResponse          `json:"marketing"`
	Unassigned []userResponse          `json:"unassigned"`
}

// List handles GET /users. Optional query parameters "role" and
// "manager_id" narrow the listing.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}

	var filter domain.UserFilter
	if role := r.URL.Query().Get("role"); role != "" {
		filter.RoleName = &role
	}
	if raw := r.URL.Query().Get("manager_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid manager_id")
			return
		}
		filter.ManagerID = &id
	}

	users, err := h.svc.List(r.Context(), caller, filter)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponses(users))
}

// Assignable handles GET /users/assignable.
func (h *UserHandler) Assignable(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}

	users, err := h.svc.Assignable(r.Context(), caller)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponses(users))
}

// Hierarchy handles GET /users/hierarchy.
func (h *UserHandler) Hierarchy(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}

	tree, err := h.svc.Hierarchy(r.Context(), caller)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	resp := hierarchyResponse{
		Admins:     toUserResponses(tree.Admins),
		Managers:   make([]hierarchyNodeResponse, 0, len(tree.Managers)),
		Marketing:  toUserResponses(tree.Marketing),
		Unassigned: toUserResponses(tree.Unassigned),
	}
	for _, node := range tree.Managers {
		resp.Managers = append(resp.Managers, hierarchyNodeResponse{
			User:    toUserResponse(node.User),
			Reports: toUserResponses(node.Reports),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	u, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(*u))
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}

	var req createUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := h.svc.Create(r.Context(), caller, user.CreateInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		RoleID:    req.RoleID,
		ManagerID: req.ManagerID,
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(*u))
}

// Update handles PATCH /users/{id}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := h.svc.Update(r.Context(), caller, id, user.UpdateInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		RoleID:       req.RoleID,
		ManagerID:    req.ManagerID,
		ClearManager: req.ClearManager,
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(*u))
}

// Delete handles DELETE /users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}
