// Package role implements the Role repository using PostgreSQL.
package role

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/spars/crm-backend/internal/adapter/postgres"
	"github.com/spars/crm-backend/internal/domain"
)

const roleColumns = `id, role_name, description, permissions, hierarchy_level, created_at, updated_at`

// Repo provides role persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new role repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}

// List returns all roles ordered by hierarchy level, then name.
func (r *Repo) List(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.q(ctx).Query(ctx,
		`SELECT `+roleColumns+` FROM roles ORDER BY hierarchy_level, role_name`)
	if err != nil {
		return nil, postgres.MapError(err, "role", uuid.Nil)
	}
	defer rows.Close()

	roles := make([]domain.Role, 0)
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, postgres.MapError(err, "role", uuid.Nil)
		}
		roles = append(roles, *role)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "role", uuid.Nil)
	}
	return roles, nil
}

// GetByID returns a role by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	row := r.q(ctx).QueryRow(ctx,
		`SELECT `+roleColumns+` FROM roles WHERE id = $1`, id)

	role, err := scanRole(row)
	if err != nil {
		return nil, postgres.MapError(err, "role", id)
	}
	return role, nil
}

// GetByName returns a role by its unique name.
func (r *Repo) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	row := r.q(ctx).QueryRow(ctx,
		`SELECT `+roleColumns+` FROM roles WHERE role_name = $1`, name)

	role, err := scanRole(row)
	if err != nil {
		return nil, postgres.MapError(err, "role", uuid.Nil)
	}
	return role, nil
}

// Create inserts a new role.
func (r *Repo) Create(ctx context.Context, role *domain.Role) error {
	perms, err := json.Marshal(role.Permissions)
	if err != nil {
		return fmt.Errorf("encode permissions: %w", err)
	}

	_, err = r.q(ctx).Exec(ctx,
		`INSERT INTO roles (id, role_name, description, permissions, hierarchy_level, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		role.ID, role.Name, role.Description, perms, role.HierarchyLevel, role.CreatedAt, role.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "role", role.ID)
	}
	return nil
}

// Update persists role name, description, permissions and level.
func (r *Repo) Update(ctx context.Context, role *domain.Role) error {
	perms, err := json.Marshal(role.Permissions)
	if err != nil {
		return fmt.Errorf("encode permissions: %w", err)
	}

	tag, err := r.q(ctx).Exec(ctx,
		`UPDATE roles
		 SET role_name = $2, description = $3, permissions = $4, hierarchy_level = $5, updated_at = $6
		 WHERE id = $1`,
		role.ID, role.Name, role.Description, perms, role.HierarchyLevel, role.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "role", role.ID)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "role", role.ID)
	}
	return nil
}

// Delete removes a role. Roles still referenced by users fail with a
// foreign key violation.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "role", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "role", id)
	}
	return nil
}

func scanRole(row pgx.Row) (*domain.Role, error) {
	var (
		role     domain.Role
		rawPerms []byte
	)
	err := row.Scan(&role.ID, &role.Name, &role.Description, &rawPerms,
		&role.HierarchyLevel, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		return nil, err
	}

	role.Permissions = domain.Permissions{}
	if len(rawPerms) > 0 {
		if err := json.Unmarshal(rawPerms, &role.Permissions); err != nil {
			return nil, fmt.Errorf("decode permissions: %w", err)
		}
	}
	return &role, nil
}
