// Package comment implements the lead comment repository using PostgreSQL.
package comment

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/spars/crm-backend/internal/adapter/postgres"
	"github.com/spars/crm-backend/internal/domain"
)

const commentColumns = `c.id, c.lead_id, c.text, c.created_by, c.created_at, u.name AS author_name`

const commentFrom = `comments c
	JOIN users u ON u.id = c.created_by`

// Repo provides comment persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new comment repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}

// Create inserts a comment and returns it with the author name.
func (r *Repo) Create(ctx context.Context, c *domain.Comment) (*domain.CommentWithAuthor, error) {
	_, err := r.q(ctx).Exec(ctx,
		`INSERT INTO comments (id, lead_id, text, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.LeadID, c.Text, c.CreatedBy, c.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "comment", c.ID)
	}

	row := r.q(ctx).QueryRow(ctx,
		`SELECT `+commentColumns+` FROM `+commentFrom+` WHERE c.id = $1`, c.ID)
	out, err := scanComment(row)
	if err != nil {
		return nil, postgres.MapError(err, "comment", c.ID)
	}
	return out, nil
}

// ListByLead returns a lead's comments, oldest first.
func (r *Repo) ListByLead(ctx context.Context, leadID uuid.UUID) ([]domain.CommentWithAuthor, error) {
	rows, err := r.q(ctx).Query(ctx,
		`SELECT `+commentColumns+` FROM `+commentFrom+`
		 WHERE c.lead_id = $1 ORDER BY c.created_at ASC`, leadID)
	if err != nil {
		return nil, postgres.MapError(err, "comment", leadID)
	}
	defer rows.Close()

	comments := make([]domain.CommentWithAuthor, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, postgres.MapError(err, "comment", leadID)
		}
		comments = append(comments, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "comment", leadID)
	}
	return comments, nil
}

// DeleteByLead removes every comment on a lead and reports how many rows
// went away. Part of the lead delete cascade.
func (r *Repo) DeleteByLead(ctx context.Context, leadID uuid.UUID) (int64, error) {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM comments WHERE lead_id = $1`, leadID)
	if err != nil {
		return 0, postgres.MapError(err, "comment", leadID)
	}
	return tag.RowsAffected(), nil
}

func scanComment(row pgx.Row) (*domain.CommentWithAuthor, error) {
	var c domain.CommentWithAuthor
	err := row.Scan(&c.ID, &c.LeadID, &c.Text, &c.CreatedBy, &c.CreatedAt, &c.AuthorName)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
