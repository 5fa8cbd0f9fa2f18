// Package reminder implements the Reminder repository using PostgreSQL.
package reminder

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

const reminderColumns = `r.id, r.lead_id, r.user_id, r.title, r.description, r.due_date,
	r.status, r.completed, r.completed_at, r.created_at, l.name AS lead_name`

// The LEFT JOIN keeps standalone reminders; the lead filter below hides
// rows whose lead was deleted out from under them.
const reminderFrom = `reminders r
	LEFT JOIN leads l ON l.id = r.lead_id`

const leadStillExists = `(r.lead_id IS NULL OR l.id IS NOT NULL)`

// Repo provides reminder persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new reminder repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}

// GetByID returns a reminder with its lead name when attached.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReminderWithLead, error) {
	row := r.q(ctx).QueryRow(ctx,
		`SELECT `+reminderColumns+` FROM `+reminderFrom+` WHERE r.id = $1`, id)

	rem, err := scanReminder(row)
	if err != nil {
		return nil, postgres.MapError(err, "reminder", id)
	}
	return rem, nil
}

// List returns reminders matching the filter ordered by due date.
func (r *Repo) List(ctx context.Context, filter domain.ReminderFilter) ([]domain.ReminderWithLead, error) {
	b := qb.Select(reminderColumns).From(reminderFrom).
		Where(leadStillExists).
		OrderBy("r.due_date ASC")
	if filter.LeadID != nil {
		b = b.Where(sq.Eq{"r.lead_id": *filter.LeadID})
	}
	if filter.UserID != nil {
		b = b.Where(sq.Eq{"r.user_id": *filter.UserID})
	}
	if filter.Completed != nil {
		b = b.Where(sq.Eq{"r.completed": *filter.Completed})
	}
	if filter.DueAfter != nil {
		b = b.Where(sq.GtOrEq{"r.due_date": *filter.DueAfter})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build reminder list query: %w", err)
	}

	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "reminder", uuid.Nil)
	}
	defer rows.Close()

	reminders := make([]domain.ReminderWithLead, 0)
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, postgres.MapError(err, "reminder", uuid.Nil)
		}
		reminders = append(reminders, *rem)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "reminder", uuid.Nil)
	}
	return reminders, nil
}

// Create inserts a new reminder and returns it with the lead name.
func (r *Repo) Create(ctx context.Context, rem *domain.Reminder) (*domain.ReminderWithLead, error) {
	_, err := r.q(ctx).Exec(ctx,
		`INSERT INTO reminders (id, lead_id, user_id, title, description, due_date,
			status, completed, completed_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rem.ID, rem.LeadID, rem.UserID, rem.Title, rem.Description, rem.DueDate,
		rem.Status.String(), rem.Completed, rem.CompletedAt, rem.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "reminder", rem.ID)
	}

	return r.GetByID(ctx, rem.ID)
}

// Update persists the mutable reminder fields and returns the fresh row.
func (r *Repo) Update(ctx context.Context, rem *domain.Reminder) (*domain.ReminderWithLead, error) {
	tag, err := r.q(ctx).Exec(ctx,
		`UPDATE reminders
		 SET title = $2, description = $3, due_date = $4, status = $5,
			completed = $6, completed_at = $7
		 WHERE id = $1`,
		rem.ID, rem.Title, rem.Description, rem.DueDate, rem.Status.String(),
		rem.Completed, rem.CompletedAt)
	if err != nil {
		return nil, postgres.MapError(err, "reminder", rem.ID)
	}
	if tag.RowsAffected() == 0 {
		return nil, postgres.MapError(pgx.ErrNoRows, "reminder", rem.ID)
	}

	return r.GetByID(ctx, rem.ID)
}

// Delete removes a reminder.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM reminders WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "reminder", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "reminder", id)
	}
	return nil
}

// DeleteByLead removes every reminder attached to a lead and reports how
// many rows went away. Part of the lead delete cascade.
func (r *Repo) DeleteByLead(ctx context.Context, leadID uuid.UUID) (int64, error) {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM reminders WHERE lead_id = $1`, leadID)
	if err != nil {
		return 0, postgres.MapError(err, "reminder", leadID)
	}
	return tag.RowsAffected(), nil
}

func scanReminder(row pgx.Row) (*domain.ReminderWithLead, error) {
	var (
		rem    domain.ReminderWithLead
		status string
	)
	err := row.Scan(
		&rem.ID, &rem.LeadID, &rem.UserID, &rem.Title, &rem.Description, &rem.DueDate,
		&status, &rem.Completed, &rem.CompletedAt, &rem.CreatedAt, &rem.LeadName,
	)
	if err != nil {
		return nil, err
	}

	rem.Status = domain.ReminderStatus(status)
	return &rem, nil
}
