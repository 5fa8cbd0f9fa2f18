// Package activity implements the activity log repository using PostgreSQL.
package activity

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/spars/crm-backend/internal/adapter/postgres"
	"github.com/spars/crm-backend/internal/domain"
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const activityColumns = `a.id, a.user_id, a.action_type, a.description, a.entity_type,
	a.entity_id, a.metadata, a.created_at, u.name AS user_name`

const activityFrom = `activity_logs a
	JOIN users u ON u.id = a.user_id`

// Repo provides activity log persistence backed by PostgreSQL. The log
// is append-only: there is no update or delete.
type Repo struct {
	db postgres.Querier
}

// New creates a new activity log repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}

// Insert appends one activity row.
func (r *Repo) Insert(ctx context.Context, a *domain.ActivityLog) error {
	var metadata []byte
	if a.Metadata != nil {
		var err error
		metadata, err = json.Marshal(a.Metadata)
		if err != nil {
			return fmt.Errorf("encode metadata: %w", err)
		}
	}

	_, err := r.q(ctx).Exec(ctx,
		`INSERT INTO activity_logs (id, user_id, action_type, description, entity_type, entity_id, metadata, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.UserID, a.ActionType.String(), a.Description,
		entityTypeArg(a.EntityType), a.EntityID, metadata, a.CreatedAt)
	if err != nil {
		return postgres.MapError(err, "activity", a.ID)
	}
	return nil
}

// List returns activity rows matching the filter, newest first.
func (r *Repo) List(ctx context.Context, filter domain.ActivityFilter) ([]domain.ActivityWithUser, error) {
	b := qb.Select(activityColumns).From(activityFrom).OrderBy("a.created_at DESC")
	if filter.UserID != nil {
		b = b.Where(sq.Eq{"a.user_id": *filter.UserID})
	}
	if filter.EntityType != nil {
		b = b.Where(sq.Eq{"a.entity_type": filter.EntityType.String()})
	}
	if filter.EntityID != nil {
		b = b.Where(sq.Eq{"a.entity_id": *filter.EntityID})
	}
	if filter.ActionType != nil {
		b = b.Where(sq.Eq{"a.action_type": filter.ActionType.String()})
	}
	if filter.Limit > 0 {
		b = b.Limit(uint64(filter.Limit))
	}
	if filter.Skip > 0 {
		b = b.Offset(uint64(filter.Skip))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build activity list query: %w", err)
	}

	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "activity", uuid.Nil)
	}
	defer rows.Close()

	activities := make([]domain.ActivityWithUser, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, postgres.MapError(err, "activity", uuid.Nil)
		}
		activities = append(activities, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "activity", uuid.Nil)
	}
	return activities, nil
}

// ListByUsers returns activity rows produced by any of the given users,
// newest first. An empty user set yields an empty result.
func (r *Repo) ListByUsers(ctx context.Context, userIDs []uuid.UUID, skip, limit int) ([]domain.ActivityWithUser, error) {
	if len(userIDs) == 0 {
		return []domain.ActivityWithUser{}, nil
	}

	b := qb.Select(activityColumns).From(activityFrom).
		Where(sq.Eq{"a.user_id": userIDs}).
		OrderBy("a.created_at DESC")
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	if skip > 0 {
		b = b.Offset(uint64(skip))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build activity list query: %w", err)
	}

	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "activity", uuid.Nil)
	}
	defer rows.Close()

	activities := make([]domain.ActivityWithUser, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, postgres.MapError(err, "activity", uuid.Nil)
		}
		activities = append(activities, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "activity", uuid.Nil)
	}
	return activities, nil
}

func entityTypeArg(e *domain.EntityType) *string {
	if e == nil {
		return nil
	}
	v := e.String()
	return &v
}

func scanActivity(row pgx.Row) (*domain.ActivityWithUser, error) {
	var (
		a           domain.ActivityWithUser
		actionType  string
		entityType  *string
		rawMetadata []byte
	)
	err := row.Scan(&a.ID, &a.UserID, &actionType, &a.Description, &entityType,
		&a.EntityID, &rawMetadata, &a.CreatedAt, &a.UserName)
	if err != nil {
		return nil, err
	}

	a.ActionType = domain.ActionType(actionType)
	if entityType != nil {
		e := domain.EntityType(*entityType)
		a.EntityType = &e
	}
	if len(rawMetadata) > 0 {
		if err := json.Unmarshal(rawMetadata, &a.Metadata); err != nil {
			return nil, fmt.Errorf("decode metadata: %w", err)
		}
	}
	return &a, nil
}
