// Package newsletter implements the newsletter subscriber repository
// using PostgreSQL.
package newsletter

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/spars/crm-backend/internal/adapter/postgres"
	"github.com/spars/crm-backend/internal/domain"
)

const subscriberColumns = `id, email, is_active, subscribed_at`

// Repo provides newsletter subscriber persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new newsletter repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}

// GetByID returns one subscriber by its id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.NewsletterSubscriber, error) {
	row := r.q(ctx).QueryRow(ctx,
		`SELECT `+subscriberColumns+` FROM newsletter_subscribers WHERE id = $1`, id)

	var s domain.NewsletterSubscriber
	if err := row.Scan(&s.ID, &s.Email, &s.Active, &s.SubscribedAt); err != nil {
		return nil, postgres.MapError(err, "subscriber", id)
	}
	return &s, nil
}

// List returns all subscribers, newest first.
func (r *Repo) List(ctx context.Context) ([]domain.NewsletterSubscriber, error) {
	rows, err := r.q(ctx).Query(ctx,
		`SELECT `+subscriberColumns+` FROM newsletter_subscribers ORDER BY subscribed_at DESC`)
	if err != nil {
		return nil, postgres.MapError(err, "subscriber", uuid.Nil)
	}
	defer rows.Close()

	subscribers := make([]domain.NewsletterSubscriber, 0)
	for rows.Next() {
		var s domain.NewsletterSubscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.Active, &s.SubscribedAt); err != nil {
			return nil, postgres.MapError(err, "subscriber", uuid.Nil)
		}
		subscribers = append(subscribers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "subscriber", uuid.Nil)
	}
	return subscribers, nil
}

// Create inserts a new subscriber. A duplicate email reports
// domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, s *domain.NewsletterSubscriber) error {
	_, err := r.q(ctx).Exec(ctx,
		`INSERT INTO newsletter_subscribers (id, email, is_active, subscribed_at)
		 VALUES ($1, $2, $3, $4)`,
		s.ID, s.Email, s.Active, s.SubscribedAt)
	if err != nil {
		return postgres.MapError(err, "subscriber", s.ID)
	}
	return nil
}

// SetActive flips a subscriber's active flag.
func (r *Repo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	tag, err := r.q(ctx).Exec(ctx,
		`UPDATE newsletter_subscribers SET is_active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return postgres.MapError(err, "subscriber", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "subscriber", id)
	}
	return nil
}

// Delete removes a subscriber.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q(ctx).Exec(ctx,
		`DELETE FROM newsletter_subscribers WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "subscriber", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "subscriber", id)
	}
	return nil
}
