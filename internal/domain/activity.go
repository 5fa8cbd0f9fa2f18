package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivityLog is one append-only row in the activity feed.
type ActivityLog struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ActionType  ActionType
	Description string
	EntityType  *EntityType
	EntityID    *uuid.UUID
	Metadata    map[string]any
	CreatedAt   time.Time
}

// ActivityWithUser carries the actor's display name for feed views.
type ActivityWithUser struct {
	ActivityLog
	UserName string
}

// ActivityFilter narrows activity feed queries. Zero values are ignored.
type ActivityFilter struct {
	UserID     *uuid.UUID
	EntityType *EntityType
	EntityID   *uuid.UUID
	ActionType *ActionType
	Skip       int
	Limit      int
}
