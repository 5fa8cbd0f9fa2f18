package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTagColor is used when a tag is created without a color.
const DefaultTagColor = "#1E73FF"

// Tag is a colored label scoped to one entity type.
type Tag struct {
	ID         uuid.UUID
	Name       string
	Color      string
	EntityType EntityType
	CreatedBy  *uuid.UUID
	CreatedAt  time.Time
}

// EntityTag attaches a tag to a concrete entity. The (tag, entity type,
// entity id) triple is unique.
type EntityTag struct {
	TagID      uuid.UUID
	EntityType EntityType
	EntityID   uuid.UUID
	CreatedAt  time.Time
}
