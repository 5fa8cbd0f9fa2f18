package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/domain"
)

// LoginResult is returned by a successful Login.
type LoginResult struct {
	AccessToken string
	User        *domain.UserWithRole
}

// Login authenticates a user with email + password and issues an access
// token carrying the role name and permission map.
// Returns ErrUnauthorized if the email is unknown or the password is wrong.
func (s *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	input.Email = strings.TrimSpace(input.Email)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.Login get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(input.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := s.tokens.GenerateAccessToken(auth.Identity{
		UserID:      user.ID,
		Email:       user.Email,
		RoleName:    user.RoleName,
		Class:       user.Class(),
		Permissions: user.Permissions,
	})
	if err != nil {
		return nil, fmt.Errorf("auth.Login generate token: %w", err)
	}

	// Best effort: a failed audit write must not fail the login.
	if err := s.activity.Record(ctx, domain.ActivityLog{
		ID:          uuid.New(),
		UserID:      user.ID,
		ActionType:  domain.ActionLogin,
		Description: fmt.Sprintf("%s logged in", user.Name),
		CreatedAt:   time.Now().UTC(),
	}); err != nil {
		s.log.WarnContext(ctx, "failed to record login activity",
			slog.String("user_id", user.ID.String()),
			slog.String("error", err.Error()))
	}

	s.log.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID.String()),
		slog.String("role", user.RoleName))

	return &LoginResult{AccessToken: token, User: user}, nil
}

// Me returns the authenticated user's profile.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*domain.UserWithRole, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("auth.Me: %w", err)
	}
	return user, nil
}
