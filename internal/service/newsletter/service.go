// Package newsletter manages newsletter subscribers: public signup and
// administrative list, activation and removal.
package newsletter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/domain"
)

// subscriberRepo defines the repository interface needed by the newsletter service.
type subscriberRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.NewsletterSubscriber, error)
	List(ctx context.Context) ([]domain.NewsletterSubscriber, error)
	Create(ctx context.Context, s *domain.NewsletterSubscriber) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service implements newsletter operations.
type Service struct {
	log         *slog.Logger
	subscribers subscriberRepo
}

// NewService creates a new newsletter service instance.
func NewService(logger *slog.Logger, subscribers subscriberRepo) *Service {
	return &Service{
		log:         logger.With("service", "newsletter"),
		subscribers: subscribers,
	}
}

// Subscribe registers an email from the public website. Subscribing an
// address that is already registered succeeds silently.
func (s *Service) Subscribe(ctx context.Context, email string) (*domain.NewsletterSubscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("newsletter.Subscribe: %w", domain.NewValidationError("email", "is not a valid email address"))
	}

	sub := domain.NewsletterSubscriber{
		ID:           uuid.New(),
		Email:        email,
		Active:       true,
		SubscribedAt: time.Now().UTC(),
	}
	if err := s.subscribers.Create(ctx, &sub); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return &sub, nil
		}
		return nil, fmt.Errorf("newsletter.Subscribe: %w", err)
	}

	s.log.InfoContext(ctx, "newsletter subscription", "subscriber_id", sub.ID)
	return &sub, nil
}

// List returns every subscriber, newest first.
func (s *Service) List(ctx context.Context, caller auth.Identity) ([]domain.NewsletterSubscriber, error) {
	if !caller.Permissions.CanRead(domain.PermNewsletter) {
		return nil, fmt.Errorf("newsletter.List: %w", domain.ErrForbidden)
	}
	subs, err := s.subscribers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("newsletter.List: %w", err)
	}
	return subs, nil
}

// SetActive toggles a subscriber without losing their history.
func (s *Service) SetActive(ctx context.Context, caller auth.Identity, id uuid.UUID, active bool) error {
	if !caller.Permissions.CanWrite(domain.PermNewsletter) {
		return fmt.Errorf("newsletter.SetActive: %w", domain.ErrForbidden)
	}
	if err := s.subscribers.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("newsletter.SetActive: %w", err)
	}
	return nil
}

// Delete permanently removes a subscriber.
func (s *Service) Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) error {
	if !caller.Permissions.CanWrite(domain.PermNewsletter) {
		return fmt.Errorf("newsletter.Delete: %w", domain.ErrForbidden)
	}
	if err := s.subscribers.Delete(ctx, id); err != nil {
		return fmt.Errorf("newsletter.Delete: %w", err)
	}
	return nil
}
