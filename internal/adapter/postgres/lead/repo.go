// Package lead implements the Lead repository using PostgreSQL.
package lead

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/spars/crm-backend/internal/adapter/postgres"
	"github.com/spars/crm-backend/internal/domain"
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const leadColumns = `l.id, l.name, l.email, l.phone, l.company, l.designation,
	l.source_type, l.source, l.status, l.stage, l.assigned, l.assigned_to, l.created_by,
	l.follow_up_required, l.follow_up_date, l.follow_up_time, l.follow_up_status,
	l.created_at, l.updated_at, c.name AS created_by_name, a.name AS assigned_to_name`

const leadFrom = `leads l
	LEFT JOIN users c ON c.id = l.created_by
	LEFT JOIN users a ON a.id = l.assigned_to`

// Repo provides lead persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new lead repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}

// GetByID returns a lead with creator and assignee names.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.LeadWithNames, error) {
	row := r.q(ctx).QueryRow(ctx,
		`SELECT `+leadColumns+` FROM `+leadFrom+` WHERE l.id = $1`, id)

	l, err := scanLead(row)
	if err != nil {
		return nil, postgres.MapError(err, "lead", id)
	}
	return l, nil
}

// List returns leads visible in the scope, newest first.
func (r *Repo) List(ctx context.Context, scope domain.LeadScope) ([]domain.LeadWithNames, error) {
	b := qb.Select(leadColumns).From(leadFrom).OrderBy("l.created_at DESC")
	switch {
	case scope.AssignedTo != nil:
		b = b.Where(sq.Eq{"l.assigned_to": *scope.AssignedTo})
	case scope.TeamOf != nil:
		b = b.Where(`l.assigned_to IN (SELECT id FROM users WHERE manager_id = ?)`, *scope.TeamOf)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lead list query: %w", err)
	}

	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "lead", uuid.Nil)
	}
	defer rows.Close()

	leads := make([]domain.LeadWithNames, 0)
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, postgres.MapError(err, "lead", uuid.Nil)
		}
		leads = append(leads, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "lead", uuid.Nil)
	}
	return leads, nil
}

// ListByAssignees returns leads owned by any of the given users, newest
// first. Used by the reports aggregation.
func (r *Repo) ListByAssignees(ctx context.Context, userIDs []uuid.UUID) ([]domain.LeadWithNames, error) {
	if len(userIDs) == 0 {
		return []domain.LeadWithNames{}, nil
	}

	query, args, err := qb.Select(leadColumns).From(leadFrom).
		Where(sq.Eq{"l.assigned_to": userIDs}).
		OrderBy("l.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build leads by assignees query: %w", err)
	}

	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "lead", uuid.Nil)
	}
	defer rows.Close()

	leads := make([]domain.LeadWithNames, 0)
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, postgres.MapError(err, "lead", uuid.Nil)
		}
		leads = append(leads, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "lead", uuid.Nil)
	}
	return leads, nil
}

// Create inserts a new lead and returns it with names joined in.
func (r *Repo) Create(ctx context.Context, l *domain.Lead) (*domain.LeadWithNames, error) {
	_, err := r.q(ctx).Exec(ctx,
		`INSERT INTO leads (id, name, email, phone, company, designation, source_type, source,
			status, stage, assigned, assigned_to, created_by,
			follow_up_required, follow_up_date, follow_up_time, follow_up_status,
			created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		l.ID, l.Name, l.Email, l.Phone, l.Company, l.Designation, l.SourceType, l.Source,
		l.Status.String(), l.Stage.String(), l.Assigned, l.AssignedTo, l.CreatedBy,
		l.FollowUpRequired, l.FollowUpDate, l.FollowUpTime, followUpStatusArg(l.FollowUpStatus),
		l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "lead", l.ID)
	}

	return r.GetByID(ctx, l.ID)
}

// Update persists all mutable lead fields and returns the fresh row.
func (r *Repo) Update(ctx context.Context, l *domain.Lead) (*domain.LeadWithNames, error) {
	tag, err := r.q(ctx).Exec(ctx,
		`UPDATE leads
		 SET name = $2, email = $3, phone = $4, company = $5, designation = $6,
			source_type = $7, source = $8, status = $9, stage = $10,
			assigned = $11, assigned_to = $12, created_by = $13,
			follow_up_required = $14, follow_up_date = $15, follow_up_time = $16, follow_up_status = $17,
			updated_at = $18
		 WHERE id = $1`,
		l.ID, l.Name, l.Email, l.Phone, l.Company, l.Designation,
		l.SourceType, l.Source, l.Status.String(), l.Stage.String(),
		l.Assigned, l.AssignedTo, l.CreatedBy,
		l.FollowUpRequired, l.FollowUpDate, l.FollowUpTime, followUpStatusArg(l.FollowUpStatus),
		l.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "lead", l.ID)
	}
	if tag.RowsAffected() == 0 {
		return nil, postgres.MapError(pgx.ErrNoRows, "lead", l.ID)
	}

	return r.GetByID(ctx, l.ID)
}

// UpdateStage advances only the stage column. Call logs carrying a stage
// propagate it here without racing other lead fields.
func (r *Repo) UpdateStage(ctx context.Context, id uuid.UUID, stage domain.LeadStage) error {
	tag, err := r.q(ctx).Exec(ctx,
		`UPDATE leads SET stage = $2, updated_at = now() WHERE id = $1`, id, stage.String())
	if err != nil {
		return postgres.MapError(err, "lead", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "lead", id)
	}
	return nil
}

// Delete removes the lead row itself. Cascading cleanup of dependent
// rows is orchestrated by the service inside one transaction.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "lead", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "lead", id)
	}
	return nil
}

func followUpStatusArg(s *domain.FollowUpStatus) *string {
	if s == nil {
		return nil
	}
	v := s.String()
	return &v
}

func scanLead(row pgx.Row) (*domain.LeadWithNames, error) {
	var (
		l              domain.LeadWithNames
		status, stage  string
		followUpStatus *string
	)
	err := row.Scan(
		&l.ID, &l.Name, &l.Email, &l.Phone, &l.Company, &l.Designation,
		&l.SourceType, &l.Source, &status, &stage, &l.Assigned, &l.AssignedTo, &l.CreatedBy,
		&l.FollowUpRequired, &l.FollowUpDate, &l.FollowUpTime, &followUpStatus,
		&l.CreatedAt, &l.UpdatedAt, &l.CreatedByName, &l.AssignedToName,
	)
	if err != nil {
		return nil, err
	}

	l.Status = domain.LeadStatus(status)
	l.Stage = domain.LeadStage(stage)
	if followUpStatus != nil {
		fs := domain.FollowUpStatus(*followUpStatus)
		l.FollowUpStatus = &fs
	}
	return &l, nil
}
