package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/kanban-backend/internal/domain"
	"github.com/heartmarshall/kanban-backend/pkg/ctxutil"
)

// GetProfile returns the authenticated user's profile with the number of
// boards they own and the number they are a member of.
// Returns ErrUnauthorized if no userID is found in context.
func (s *Service) GetProfile(ctx context.Context) (*domain.UserProfile, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user.GetProfile: %w", err)
	}

	owned, member, err := s.users.BoardCounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user.GetProfile counts: %w", err)
	}

	return &domain.UserProfile{User: *user, OwnedBoards: owned, MemberBoards: member}, nil
}

// UpdateProfile changes the authenticated user's name and/or avatar.
// Returns ErrUnauthorized if no userID is found in context.
func (s *Service) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.User, error) {
	if input.Name != nil {
		name := domain.NormalizeName(*input.Name)
		input.Name = &name
	}
	if input.AvatarURL != nil && *input.AvatarURL == "" {
		input.AvatarURL = nil
		input.ClearAvatar = true
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	upd := domain.UserUpdate{
		Name:        input.Name,
		AvatarURL:   input.AvatarURL,
		ClearAvatar: input.ClearAvatar,
	}
	if upd.IsEmpty() {
		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("user.UpdateProfile: %w", err)
		}
		return user, nil
	}

	user, err := s.users.Update(ctx, userID, upd)
	if err != nil {
		return nil, fmt.Errorf("user.UpdateProfile: %w", err)
	}

	s.log.InfoContext(ctx, "profile updated",
		slog.String("user_id", userID.String()))

	return user, nil
}
