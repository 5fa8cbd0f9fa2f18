package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/spars/crm-backend/internal/domain"
)

// ChangePassword replaces the caller's password after verifying the old
// one. Returns ErrUnauthorized when the old password does not match.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, input ChangePasswordInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("auth.ChangePassword get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(input.OldPassword)); err != nil {
		return domain.ErrUnauthorized
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("auth.ChangePassword hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		return fmt.Errorf("auth.ChangePassword update: %w", err)
	}

	entity := domain.EntityTypeUser
	if err := s.activity.Record(ctx, domain.ActivityLog{
		ID:          uuid.New(),
		UserID:      userID,
		ActionType:  domain.ActionPasswordChange,
		Description: fmt.Sprintf("%s changed their password", user.Name),
		EntityType:  &entity,
		EntityID:    &userID,
		CreatedAt:   time.Now().UTC(),
	}); err != nil {
		s.log.WarnContext(ctx, "failed to record password change activity",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
	}

	s.log.InfoContext(ctx, "password changed",
		slog.String("user_id", userID.String()))

	return nil
}
