// Package submission implements the form submission repository using PostgreSQL.
package submission

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

const submissionColumns = `id, form_type, name, email, company, status, lead_id, data, submitted_at`

// Repo provides form submission persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new submission repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}

// GetByID returns one submission by its id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	row := r.q(ctx).QueryRow(ctx,
		`SELECT `+submissionColumns+` FROM submissions WHERE id = $1`, id)

	s, err := scanSubmission(row)
	if err != nil {
		return nil, postgres.MapError(err, "submission", id)
	}
	return s, nil
}

// List returns submissions, newest first, optionally narrowed to one
// status.
func (r *Repo) List(ctx context.Context, status *domain.SubmissionStatus) ([]domain.Submission, error) {
	b := qb.Select(submissionColumns).From("submissions").OrderBy("submitted_at DESC")
	if status != nil {
		b = b.Where(sq.Eq{"status": status.String()})
	}
	return r.querySubmissions(ctx, b)
}

// ListByTypes returns submissions whose stored form type matches any of
// the given spellings, newest first.
func (r *Repo) ListByTypes(ctx context.Context, formTypes []string) ([]domain.Submission, error) {
	if len(formTypes) == 0 {
		return []domain.Submission{}, nil
	}
	b := qb.Select(submissionColumns).From("submissions").
		Where(sq.Eq{"form_type": formTypes}).
		OrderBy("submitted_at DESC")
	return r.querySubmissions(ctx, b)
}

// Create inserts a new submission.
func (r *Repo) Create(ctx context.Context, s *domain.Submission) error {
	var data []byte
	if s.Data != nil {
		var err error
		data, err = json.Marshal(s.Data)
		if err != nil {
			return fmt.Errorf("encode submission data: %w", err)
		}
	}

	_, err := r.q(ctx).Exec(ctx,
		`INSERT INTO submissions (id, form_type, name, email, company, status, lead_id, data, submitted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.FormType, s.Name, s.Email, s.Company, s.Status.String(),
		s.LeadID, data, s.Submitted)
	if err != nil {
		return postgres.MapError(err, "submission", s.ID)
	}
	return nil
}

// UpdateStatusAndLead marks a submission's status and links it to a lead.
// Passing a nil leadID clears the link.
func (r *Repo) UpdateStatusAndLead(ctx context.Context, id uuid.UUID, status domain.SubmissionStatus, leadID *uuid.UUID) error {
	tag, err := r.q(ctx).Exec(ctx,
		`UPDATE submissions SET status = $2, lead_id = $3 WHERE id = $1`,
		id, status.String(), leadID)
	if err != nil {
		return postgres.MapError(err, "submission", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "submission", id)
	}
	return nil
}

// Delete removes a submission.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM submissions WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "submission", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "submission", id)
	}
	return nil
}

// DetachByLead unlinks every submission tied to a lead and returns them
// to triage. Used when a lead is deleted. Returns the number of rows
// touched.
func (r *Repo) DetachByLead(ctx context.Context, leadID uuid.UUID) (int64, error) {
	tag, err := r.q(ctx).Exec(ctx,
		`UPDATE submissions SET lead_id = NULL, status = $2 WHERE lead_id = $1`,
		leadID, domain.SubmissionStatusNew.String())
	if err != nil {
		return 0, postgres.MapError(err, "submission", leadID)
	}
	return tag.RowsAffected(), nil
}

func (r *Repo) querySubmissions(ctx context.Context, b sq.SelectBuilder) ([]domain.Submission, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build submission list query: %w", err)
	}

	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "submission", uuid.Nil)
	}
	defer rows.Close()

	submissions := make([]domain.Submission, 0)
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, postgres.MapError(err, "submission", uuid.Nil)
		}
		submissions = append(submissions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "submission", uuid.Nil)
	}
	return submissions, nil
}

func scanSubmission(row pgx.Row) (*domain.Submission, error) {
	var (
		s       domain.Submission
		status  string
		rawData []byte
	)
	err := row.Scan(&s.ID, &s.FormType, &s.Name, &s.Email, &s.Company,
		&status, &s.LeadID, &rawData, &s.Submitted)
	if err != nil {
		return nil, err
	}

	s.Status = domain.SubmissionStatus(status)
	if len(rawData) > 0 {
		if err := json.Unmarshal(rawData, &s.Data); err != nil {
			return nil, fmt.Errorf("decode submission data: %w", err)
		}
	}
	return &s, nil
}
