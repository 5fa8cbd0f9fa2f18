// Package calllog implements the CallLog repository using PostgreSQL.
package calllog

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

const callLogColumns = `cl.id, cl.lead_id, cl.user_id, cl.stage, cl.activity_type, cl.objective,
	cl.planning_notes, cl.post_meeting_notes, cl.follow_up_notes, cl.challenges,
	cl.secured_order, cl.dollar_value, cl.meeting_date, cl.is_completed, cl.is_cancelled,
	cl.created_at, cl.updated_at, l.name AS lead_name, u.name AS user_name`

// Rows whose lead vanished mid-delete are invisible; the JOIN drops them.
const callLogFrom = `call_logs cl
	JOIN leads l ON l.id = cl.lead_id
	JOIN users u ON u.id = cl.user_id`

// Repo provides call log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new call log repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}

// GetByID returns a call log with lead and user names.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CallLogWithNames, error) {
	row := r.q(ctx).QueryRow(ctx,
		`SELECT `+callLogColumns+` FROM `+callLogFrom+` WHERE cl.id = $1`, id)

	c, err := scanCallLog(row)
	if err != nil {
		return nil, postgres.MapError(err, "call_log", id)
	}
	return c, nil
}

// List returns call logs matching the filter, most recent meeting first,
// ties broken by creation time.
func (r *Repo) List(ctx context.Context, filter domain.CallLogFilter) ([]domain.CallLogWithNames, error) {
	b := qb.Select(callLogColumns).From(callLogFrom).
		OrderBy("cl.meeting_date DESC NULLS LAST", "cl.created_at DESC")
	if filter.LeadID != nil {
		b = b.Where(sq.Eq{"cl.lead_id": *filter.LeadID})
	}
	if filter.UserID != nil {
		b = b.Where(sq.Eq{"cl.user_id": *filter.UserID})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build call log list query: %w", err)
	}

	return r.queryCallLogs(ctx, query, args...)
}

// ListByUsers returns call logs made by any of the given users. Used by
// the reports aggregation.
func (r *Repo) ListByUsers(ctx context.Context, userIDs []uuid.UUID) ([]domain.CallLogWithNames, error) {
	if len(userIDs) == 0 {
		return []domain.CallLogWithNames{}, nil
	}

	query, args, err := qb.Select(callLogColumns).From(callLogFrom).
		Where(sq.Eq{"cl.user_id": userIDs}).
		OrderBy("cl.meeting_date DESC NULLS LAST", "cl.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build call logs by users query: %w", err)
	}

	return r.queryCallLogs(ctx, query, args...)
}

// Create inserts a new call log and returns it with names joined in.
func (r *Repo) Create(ctx context.Context, c *domain.CallLog) (*domain.CallLogWithNames, error) {
	_, err := r.q(ctx).Exec(ctx,
		`INSERT INTO call_logs (id, lead_id, user_id, stage, activity_type, objective,
			planning_notes, post_meeting_notes, follow_up_notes, challenges,
			secured_order, dollar_value, meeting_date, is_completed, is_cancelled,
			created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		c.ID, c.LeadID, c.UserID, stageArg(c.Stage), c.ActivityType, c.Objective,
		c.PlanningNotes, c.PostMeetingNotes, c.FollowUpNotes, c.Challenges,
		c.SecuredOrder, c.DollarValue, c.MeetingDate, c.IsCompleted, c.IsCancelled,
		c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "call_log", c.ID)
	}

	return r.GetByID(ctx, c.ID)
}

// Update persists all mutable call log fields and returns the fresh row.
func (r *Repo) Update(ctx context.Context, c *domain.CallLog) (*domain.CallLogWithNames, error) {
	tag, err := r.q(ctx).Exec(ctx,
		`UPDATE call_logs
		 SET stage = $2, activity_type = $3, objective = $4, planning_notes = $5,
			post_meeting_notes = $6, follow_up_notes = $7, challenges = $8,
			secured_order = $9, dollar_value = $10, meeting_date = $11,
			is_completed = $12, is_cancelled = $13, updated_at = $14
		 WHERE id = $1`,
		c.ID, stageArg(c.Stage), c.ActivityType, c.Objective, c.PlanningNotes,
		c.PostMeetingNotes, c.FollowUpNotes, c.Challenges,
		c.SecuredOrder, c.DollarValue, c.MeetingDate,
		c.IsCompleted, c.IsCancelled, c.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "call_log", c.ID)
	}
	if tag.RowsAffected() == 0 {
		return nil, postgres.MapError(pgx.ErrNoRows, "call_log", c.ID)
	}

	return r.GetByID(ctx, c.ID)
}

// Delete removes a call log.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM call_logs WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "call_log", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "call_log", id)
	}
	return nil
}

// DeleteByLead removes every call log attached to a lead and reports how
// many rows went away. Part of the lead delete cascade.
func (r *Repo) DeleteByLead(ctx context.Context, leadID uuid.UUID) (int64, error) {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM call_logs WHERE lead_id = $1`, leadID)
	if err != nil {
		return 0, postgres.MapError(err, "call_log", leadID)
	}
	return tag.RowsAffected(), nil
}

func (r *Repo) queryCallLogs(ctx context.Context, query string, args ...any) ([]domain.CallLogWithNames, error) {
	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "call_log", uuid.Nil)
	}
	defer rows.Close()

	logs := make([]domain.CallLogWithNames, 0)
	for rows.Next() {
		c, err := scanCallLog(rows)
		if err != nil {
			return nil, postgres.MapError(err, "call_log", uuid.Nil)
		}
		logs = append(logs, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "call_log", uuid.Nil)
	}
	return logs, nil
}

func stageArg(s *domain.LeadStage) *string {
	if s == nil {
		return nil
	}
	v := s.String()
	return &v
}

func scanCallLog(row pgx.Row) (*domain.CallLogWithNames, error) {
	var (
		c     domain.CallLogWithNames
		stage *string
	)
	err := row.Scan(
		&c.ID, &c.LeadID, &c.UserID, &stage, &c.ActivityType, &c.Objective,
		&c.PlanningNotes, &c.PostMeetingNotes, &c.FollowUpNotes, &c.Challenges,
		&c.SecuredOrder, &c.DollarValue, &c.MeetingDate, &c.IsCompleted, &c.IsCancelled,
		&c.CreatedAt, &c.UpdatedAt, &c.LeadName, &c.UserName,
	)
	if err != nil {
		return nil, err
	}

	if stage != nil {
		s := domain.LeadStage(*stage)
		c.Stage = &s
	}
	return &c, nil
}
