package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/kanban-backend/internal/auth"
	"github.com/heartmarshall/kanban-backend/internal/domain"
	"github.com/heartmarshall/kanban-backend/pkg/ctxutil"
)

// ChangePassword replaces the authenticated user's password after checking
// the current one. A wrong current password yields ErrUnauthorized.
func (s *Service) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("auth.ChangePassword: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.CurrentPassword); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return fmt.Errorf("current password is incorrect: %w", domain.ErrUnauthorized)
		}
		return fmt.Errorf("auth.ChangePassword: %w", err)
	}

	hash, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return fmt.Errorf("auth.ChangePassword: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("auth.ChangePassword: %w", err)
	}

	s.log.InfoContext(ctx, "password changed",
		slog.String("user_id", userID.String()))

	return nil
}
