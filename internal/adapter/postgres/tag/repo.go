// Package tag implements the tag and entity tag repository using PostgreSQL.
package tag

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/spars/crm-backend/internal/adapter/postgres"
	"github.com/spars/crm-backend/internal/domain"
)

const tagColumns = `id, name, color, entity_type, created_by, created_at`

// Repo provides tag persistence backed by PostgreSQL. It owns both the
// tags table and the entity_tags association table.
type Repo struct {
	db postgres.Querier
}

// New creates a new tag repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}

// GetByID returns one tag by its id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tag, error) {
	row := r.q(ctx).QueryRow(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE id = $1`, id)

	t, err := scanTag(row)
	if err != nil {
		return nil, postgres.MapError(err, "tag", id)
	}
	return t, nil
}

// List returns every tag scoped to one entity type, alphabetically.
func (r *Repo) List(ctx context.Context, entityType domain.EntityType) ([]domain.Tag, error) {
	rows, err := r.q(ctx).Query(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE entity_type = $1 ORDER BY name`,
		entityType.String())
	if err != nil {
		return nil, postgres.MapError(err, "tag", uuid.Nil)
	}
	defer rows.Close()
	return collectTags(rows)
}

// Create inserts a new tag. A duplicate (name, entity type) pair reports
// domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, t *domain.Tag) error {
	_, err := r.q(ctx).Exec(ctx,
		`INSERT INTO tags (id, name, color, entity_type, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.Name, t.Color, t.EntityType.String(), t.CreatedBy, t.CreatedAt)
	if err != nil {
		return postgres.MapError(err, "tag", t.ID)
	}
	return nil
}

// Update renames or recolors a tag.
func (r *Repo) Update(ctx context.Context, t *domain.Tag) error {
	tag, err := r.q(ctx).Exec(ctx,
		`UPDATE tags SET name = $2, color = $3 WHERE id = $1`,
		t.ID, t.Name, t.Color)
	if err != nil {
		return postgres.MapError(err, "tag", t.ID)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "tag", t.ID)
	}
	return nil
}

// Delete removes a tag and all its associations.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.q(ctx).Exec(ctx,
		`DELETE FROM entity_tags WHERE tag_id = $1`, id); err != nil {
		return postgres.MapError(err, "tag", id)
	}

	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "tag", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "tag", id)
	}
	return nil
}

// ListForEntity returns the tags attached to one entity, alphabetically.
func (r *Repo) ListForEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) ([]domain.Tag, error) {
	rows, err := r.q(ctx).Query(ctx,
		`SELECT t.id, t.name, t.color, t.entity_type, t.created_by, t.created_at
		 FROM tags t
		 JOIN entity_tags et ON et.tag_id = t.id
		 WHERE et.entity_type = $1 AND et.entity_id = $2
		 ORDER BY t.name`,
		entityType.String(), entityID)
	if err != nil {
		return nil, postgres.MapError(err, "tag", entityID)
	}
	defer rows.Close()
	return collectTags(rows)
}

// Attach links a tag to an entity. Attaching the same tag twice reports
// domain.ErrAlreadyExists.
func (r *Repo) Attach(ctx context.Context, et *domain.EntityTag) error {
	_, err := r.q(ctx).Exec(ctx,
		`INSERT INTO entity_tags (tag_id, entity_type, entity_id, created_at)
		 VALUES ($1, $2, $3, $4)`,
		et.TagID, et.EntityType.String(), et.EntityID, et.CreatedAt)
	if err != nil {
		return postgres.MapError(err, "tag", et.TagID)
	}
	return nil
}

// Detach removes one tag from one entity.
func (r *Repo) Detach(ctx context.Context, tagID uuid.UUID, entityType domain.EntityType, entityID uuid.UUID) error {
	tag, err := r.q(ctx).Exec(ctx,
		`DELETE FROM entity_tags WHERE tag_id = $1 AND entity_type = $2 AND entity_id = $3`,
		tagID, entityType.String(), entityID)
	if err != nil {
		return postgres.MapError(err, "tag", tagID)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "tag", tagID)
	}
	return nil
}

// DeleteByEntity removes every tag association an entity holds,
// returning the number of rows removed. Used when the entity is deleted.
func (r *Repo) DeleteByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) (int64, error) {
	tag, err := r.q(ctx).Exec(ctx,
		`DELETE FROM entity_tags WHERE entity_type = $1 AND entity_id = $2`,
		entityType.String(), entityID)
	if err != nil {
		return 0, postgres.MapError(err, "tag", entityID)
	}
	return tag.RowsAffected(), nil
}

func collectTags(rows pgx.Rows) ([]domain.Tag, error) {
	tags := make([]domain.Tag, 0)
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, postgres.MapError(err, "tag", uuid.Nil)
		}
		tags = append(tags, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "tag", uuid.Nil)
	}
	return tags, nil
}

func scanTag(row pgx.Row) (*domain.Tag, error) {
	var (
		t          domain.Tag
		entityType string
	)
	err := row.Scan(&t.ID, &t.Name, &t.Color, &entityType, &t.CreatedBy, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	t.EntityType = domain.EntityType(entityType)
	return &t, nil
}
