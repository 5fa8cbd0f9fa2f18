// Package tag implements colored labels scoped to an entity type and
// their attachment to concrete entities.
package tag

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/domain"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// tagRepo defines the repository interface needed by the tag service.
type tagRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tag, error)
	List(ctx context.Context, entityType domain.EntityType) ([]domain.Tag, error)
	Create(ctx context.Context, t *domain.Tag) error
	Update(ctx context.Context, t *domain.Tag) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListForEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) ([]domain.Tag, error)
	Attach(ctx context.Context, et *domain.EntityTag) error
	Detach(ctx context.Context, tagID uuid.UUID, entityType domain.EntityType, entityID uuid.UUID) error
}

// Service implements tag operations.
type Service struct {
	log  *slog.Logger
	tags tagRepo
}

// NewService creates a new tag service instance.
func NewService(logger *slog.Logger, tags tagRepo) *Service {
	return &Service{
		log:  logger.With("service", "tag"),
		tags: tags,
	}
}

// Input carries the fields for creating or updating a tag.
type Input struct {
	Name       string
	Color      string
	EntityType domain.EntityType
}

// Validate checks the input and returns field errors. An empty color
// falls back to the default.
func (in *Input) Validate() error {
	var errs []domain.FieldError

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "is required"})
	} else if len(in.Name) > 50 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "must be at most 50 characters"})
	}
	if in.Color == "" {
		in.Color = domain.DefaultTagColor
	} else if !hexColor.MatchString(in.Color) {
		errs = append(errs, domain.FieldError{Field: "color", Message: "must be a #RRGGBB hex color"})
	}
	if !in.EntityType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "entity_type", Message: "is not a valid entity type"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// List returns tags for one entity type, alphabetically.
func (s *Service) List(ctx context.Context, caller auth.Identity, entityType domain.EntityType) ([]domain.Tag, error) {
	if !caller.Permissions.CanRead(domain.PermTags) {
		return nil, fmt.Errorf("tag.List: %w", domain.ErrForbidden)
	}
	tags, err := s.tags.List(ctx, entityType)
	if err != nil {
		return nil, fmt.Errorf("tag.List: %w", err)
	}
	return tags, nil
}

// Create adds a new tag.
func (s *Service) Create(ctx context.Context, caller auth.Identity, in Input) (*domain.Tag, error) {
	if !caller.Permissions.CanWrite(domain.PermTags) {
		return nil, fmt.Errorf("tag.Create: %w", domain.ErrForbidden)
	}
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("tag.Create: %w", err)
	}

	t := domain.Tag{
		ID:         uuid.New(),
		Name:       in.Name,
		Color:      in.Color,
		EntityType: in.EntityType,
		CreatedBy:  &caller.UserID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.tags.Create(ctx, &t); err != nil {
		return nil, fmt.Errorf("tag.Create: %w", err)
	}
	return &t, nil
}

// Update renames or recolors a tag. The entity type is fixed at
// creation.
func (s *Service) Update(ctx context.Context, caller auth.Identity, id uuid.UUID, in Input) (*domain.Tag, error) {
	if !caller.Permissions.CanWrite(domain.PermTags) {
		return nil, fmt.Errorf("tag.Update: %w", domain.ErrForbidden)
	}

	t, err := s.tags.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("tag.Update: %w", err)
	}
	in.EntityType = t.EntityType
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("tag.Update: %w", err)
	}

	t.Name = in.Name
	t.Color = in.Color
	if err := s.tags.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("tag.Update: %w", err)
	}
	return t, nil
}

// Delete removes a tag and all its attachments.
func (s *Service) Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) error {
	if !caller.Permissions.CanWrite(domain.PermTags) {
		return fmt.Errorf("tag.Delete: %w", domain.ErrForbidden)
	}
	if err := s.tags.Delete(ctx, id); err != nil {
		return fmt.Errorf("tag.Delete: %w", err)
	}
	return nil
}

// ForEntity returns the tags attached to one entity.
func (s *Service) ForEntity(ctx context.Context, caller auth.Identity, entityType domain.EntityType, entityID uuid.UUID) ([]domain.Tag, error) {
	if !caller.Permissions.CanRead(domain.PermTags) {
		return nil, fmt.Errorf("tag.ForEntity: %w", domain.ErrForbidden)
	}
	tags, err := s.tags.ListForEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("tag.ForEntity: %w", err)
	}
	return tags, nil
}

// Attach labels an entity with a tag. The tag's entity type must match
// the entity being labeled. Attaching twice is a no-op.
func (s *Service) Attach(ctx context.Context, caller auth.Identity, tagID uuid.UUID, entityType domain.EntityType, entityID uuid.UUID) error {
	if !caller.Permissions.CanWrite(domain.PermTags) {
		return fmt.Errorf("tag.Attach: %w", domain.ErrForbidden)
	}

	t, err := s.tags.GetByID(ctx, tagID)
	if err != nil {
		return fmt.Errorf("tag.Attach: %w", err)
	}
	if t.EntityType != entityType {
		return fmt.Errorf("tag.Attach: tag %q is for %s entities: %w", t.Name, t.EntityType, domain.ErrValidation)
	}

	et := domain.EntityTag{
		TagID:      tagID,
		EntityType: entityType,
		EntityID:   entityID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.tags.Attach(ctx, &et); err != nil {
		return fmt.Errorf("tag.Attach: %w", err)
	}
	return nil
}

// Detach removes one tag from one entity.
func (s *Service) Detach(ctx context.Context, caller auth.Identity, tagID uuid.UUID, entityType domain.EntityType, entityID uuid.UUID) error {
	if !caller.Permissions.CanWrite(domain.PermTags) {
		return fmt.Errorf("tag.Detach: %w", domain.ErrForbidden)
	}
	if err := s.tags.Detach(ctx, tagID, entityType, entityID); err != nil {
		return fmt.Errorf("tag.Detach: %w", err)
	}
	return nil
}
