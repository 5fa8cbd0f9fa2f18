// Package user implements the User repository using PostgreSQL.
package user

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

// userColumns is the joined projection every read query returns.
const userColumns = `u.id, u.name, u.email, u.hashed_password, u.role_id, u.manager_id,
	u.created_at, u.updated_at, r.role_name, r.hierarchy_level, r.permissions, m.name AS manager_name`

const userFrom = `users u
	JOIN roles r ON r.id = u.role_id
	LEFT JOIN users m ON m.id = u.manager_id`

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}

// GetByID returns a user with role and manager name by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserWithRole, error) {
	row := r.q(ctx).QueryRow(ctx,
		`SELECT `+userColumns+` FROM `+userFrom+` WHERE u.id = $1`, id)

	u, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return u, nil
}

// GetByEmail returns a user with role and manager name by email.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.UserWithRole, error) {
	row := r.q(ctx).QueryRow(ctx,
		`SELECT `+userColumns+` FROM `+userFrom+` WHERE u.email = $1`, email)

	u, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", uuid.Nil)
	}
	return u, nil
}

// List returns users matching the filter, ordered by name.
func (r *Repo) List(ctx context.Context, filter domain.UserFilter) ([]domain.UserWithRole, error) {
	b := qb.Select(userColumns).From(userFrom).OrderBy("u.name")
	if filter.RoleName != nil {
		b = b.Where(sq.Eq{"r.role_name": *filter.RoleName})
	}
	if filter.ManagerID != nil {
		b = b.Where(sq.Eq{"u.manager_id": *filter.ManagerID})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user list query: %w", err)
	}

	return r.queryUsers(ctx, query, args...)
}

// ListAssignable returns users eligible for lead assignment: hierarchy
// level 2 only. A non-nil managerID restricts the result to one team.
func (r *Repo) ListAssignable(ctx context.Context, managerID *uuid.UUID) ([]domain.UserWithRole, error) {
	b := qb.Select(userColumns).From(userFrom).
		Where(sq.Eq{"r.hierarchy_level": 2}).
		OrderBy("u.name")
	if managerID != nil {
		b = b.Where(sq.Eq{"u.manager_id": *managerID})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build assignable users query: %w", err)
	}

	return r.queryUsers(ctx, query, args...)
}

// Create inserts a new user and returns it with the role joined in.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.UserWithRole, error) {
	_, err := r.q(ctx).Exec(ctx,
		`INSERT INTO users (id, name, email, hashed_password, role_id, manager_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Name, u.Email, u.HashedPassword, u.RoleID, u.ManagerID, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "user", u.ID)
	}

	return r.GetByID(ctx, u.ID)
}

// Update persists the mutable user fields and returns the fresh row.
func (r *Repo) Update(ctx context.Context, u *domain.User) (*domain.UserWithRole, error) {
	tag, err := r.q(ctx).Exec(ctx,
		`UPDATE users
		 SET name = $2, email = $3, hashed_password = $4, role_id = $5, manager_id = $6, updated_at = $7
		 WHERE id = $1`,
		u.ID, u.Name, u.Email, u.HashedPassword, u.RoleID, u.ManagerID, u.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "user", u.ID)
	}
	if tag.RowsAffected() == 0 {
		return nil, postgres.MapError(pgx.ErrNoRows, "user", u.ID)
	}

	return r.GetByID(ctx, u.ID)
}

// Delete removes a user.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "user", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "user", id)
	}
	return nil
}

// UpdatePassword replaces the stored password hash.
func (r *Repo) UpdatePassword(ctx context.Context, id uuid.UUID, hashed string) error {
	tag, err := r.q(ctx).Exec(ctx,
		`UPDATE users SET hashed_password = $2, updated_at = now() WHERE id = $1`, id, hashed)
	if err != nil {
		return postgres.MapError(err, "user", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "user", id)
	}
	return nil
}

func (r *Repo) queryUsers(ctx context.Context, query string, args ...any) ([]domain.UserWithRole, error) {
	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "user", uuid.Nil)
	}
	defer rows.Close()

	users := make([]domain.UserWithRole, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, postgres.MapError(err, "user", uuid.Nil)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "user", uuid.Nil)
	}
	return users, nil
}

// scanUser maps one joined row into the domain shape. Permissions are
// stored as jsonb and decoded here.
func scanUser(row pgx.Row) (*domain.UserWithRole, error) {
	var (
		u        domain.UserWithRole
		rawPerms []byte
	)
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.HashedPassword, &u.RoleID, &u.ManagerID,
		&u.CreatedAt, &u.UpdatedAt, &u.RoleName, &u.HierarchyLevel, &rawPerms, &u.ManagerName,
	)
	if err != nil {
		return nil, err
	}

	u.Permissions = domain.Permissions{}
	if len(rawPerms) > 0 {
		if err := json.Unmarshal(rawPerms, &u.Permissions); err != nil {
			return nil, fmt.Errorf("decode permissions: %w", err)
		}
	}
	return &u, nil
}
