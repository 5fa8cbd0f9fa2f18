package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a named permission set with a position in the
// management hierarchy. Lower hierarchy levels are more senior:
// 0 is the administrator, 1 manages level 2, level 3 is standalone.
type Role struct {
	ID             uuid.UUID
	Name           string
	Description    *string
	Permissions    Permissions
	HierarchyLevel int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CanManage reports whether a holder of this role may create, modify or
// delete users holding other. Administrators manage everyone; level-1
// managers manage levels 2 and below; everyone else manages nobody.
func (r Role) CanManage(other Role) bool {
	switch r.HierarchyLevel {
	case 0:
		return true
	case 1:
		return other.HierarchyLevel >= 2
	}
	return false
}

// User represents an authenticated application user.
type User struct {
	ID             uuid.UUID
	Name           string
	Email          string
	HashedPassword string
	RoleID         uuid.UUID
	ManagerID      *uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// UserWithRole is a user joined with their role and manager display name,
// the shape most read paths need.
type UserWithRole struct {
	User
	RoleName       string
	HierarchyLevel int
	Permissions    Permissions
	ManagerName    *string
}

// Class derives the role classification for this user.
func (u UserWithRole) Class() RoleClass {
	return ClassifyRole(u.RoleName, u.HierarchyLevel, u.Permissions)
}

// HierarchyNode is one entry in the org tree: a manager (or standalone
// user) with the users reporting to them.
type HierarchyNode struct {
	User    UserWithRole
	Reports []UserWithRole
}

// Hierarchy is the full org tree grouped the way the team page renders it.
type Hierarchy struct {
	Admins     []UserWithRole
	Managers   []HierarchyNode
	Marketing  []UserWithRole
	Unassigned []UserWithRole
}
