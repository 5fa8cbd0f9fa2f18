package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/domain"
)

// Identity is the authenticated caller as carried by a validated access
// token: who they are, how their role classifies, and what they may do.
type Identity struct {
	UserID      uuid.UUID
	Email       string
	RoleName    string
	Class       domain.RoleClass
	Permissions domain.Permissions
}

// IsAdmin reports whether the caller classifies as an administrator.
func (i Identity) IsAdmin() bool { return i.Class == domain.RoleAdmin }

type identityCtxKey struct{}

// WithIdentity stores the caller's identity in the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, id)
}

// IdentityFromCtx extracts the caller's identity from the context.
func IdentityFromCtx(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityCtxKey{}).(Identity)
	if !ok || id.UserID == uuid.Nil {
		return Identity{}, false
	}
	return id, true
}
