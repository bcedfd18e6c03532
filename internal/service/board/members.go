package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/kanban-backend/internal/domain"
	"github.com/heartmarshall/kanban-backend/internal/service/access"
)

// AddMember grants the user registered under input.Email member access to
// the board. Adding an existing member is a no-op. Owner only.
func (s *Service) AddMember(ctx context.Context, boardID uuid.UUID, input AddMemberInput) (*domain.BoardDetail, error) {
	input.Email = domain.NormalizeEmail(input.Email)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	b, _, err := s.gate.Authorize(ctx, boardID, access.ActionManage)
	if err != nil {
		return nil, fmt.Errorf("board.AddMember: %w", err)
	}
	actor := b.OwnerID

	member, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("board.AddMember: user with this email: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("board.AddMember: %w", err)
	}
	if member.ID == b.OwnerID {
		return nil, domain.NewValidationError("email", "the owner already has access to this board")
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		added, err := s.boards.AddMember(txCtx, boardID, member.ID)
		if err != nil {
			return fmt.Errorf("add member: %w", err)
		}
		if !added {
			return nil
		}

		if err := s.boards.Touch(txCtx, boardID); err != nil {
			return fmt.Errorf("touch board: %w", err)
		}
		return s.record(txCtx, domain.ActivityMemberAdded, actor, boardID, map[string]any{
			"memberName":  member.Name,
			"memberEmail": member.Email,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("board.AddMember: %w", err)
	}

	s.log.InfoContext(ctx, "board member added",
		slog.String("board_id", boardID.String()),
		slog.String("member_id", member.ID.String()))

	d, err := s.detail(ctx, b, false)
	if err != nil {
		return nil, fmt.Errorf("board.AddMember: %w", err)
	}
	return d, nil
}

// RemoveMember revokes a member's access and drops their card assignments
// on the board. Owner only.
func (s *Service) RemoveMember(ctx context.Context, boardID, memberID uuid.UUID) (*domain.BoardDetail, error) {
	b, _, err := s.gate.Authorize(ctx, boardID, access.ActionManage)
	if err != nil {
		return nil, fmt.Errorf("board.RemoveMember: %w", err)
	}
	actor := b.OwnerID

	if memberID == b.OwnerID {
		return nil, domain.NewValidationError("memberId", "the owner cannot be removed from the board")
	}

	member, err := s.users.GetByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("board.RemoveMember: %w", err)
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		removed, err := s.boards.RemoveMember(txCtx, boardID, memberID)
		if err != nil {
			return fmt.Errorf("remove member: %w", err)
		}
		if !removed {
			return fmt.Errorf("member %s: %w", memberID, domain.ErrNotFound)
		}

		if err := s.boards.Touch(txCtx, boardID); err != nil {
			return fmt.Errorf("touch board: %w", err)
		}
		return s.record(txCtx, domain.ActivityMemberRemoved, actor, boardID, map[string]any{
			"memberName":  member.Name,
			"memberEmail": member.Email,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("board.RemoveMember: %w", err)
	}

	s.log.InfoContext(ctx, "board member removed",
		slog.String("board_id", boardID.String()),
		slog.String("member_id", memberID.String()))

	d, err := s.detail(ctx, b, false)
	if err != nil {
		return nil, fmt.Errorf("board.RemoveMember: %w", err)
	}
	return d, nil
}
