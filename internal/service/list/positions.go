package list

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/kanban-backend/internal/domain"
	"github.com/heartmarshall/kanban-backend/internal/position"
	"github.com/heartmarshall/kanban-backend/internal/service/access"
)

// Archive removes a list from the board's active sequence and closes the
// gap it leaves. Its cards stay reachable by id. Archiving an archived list
// is a no-op.
func (s *Service) Archive(ctx context.Context, boardID, id uuid.UUID) (*domain.List, error) {
	actor, err := s.authorize(ctx, boardID, access.ActionEdit)
	if err != nil {
		return nil, fmt.Errorf("list.Archive: %w", err)
	}

	var archived *domain.List
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		l, err := s.lockedList(txCtx, boardID, id)
		if err != nil {
			return err
		}
		if l.IsArchived {
			archived = l
			return nil
		}

		archived, err = s.lists.SetArchived(txCtx, id, true, l.Position)
		if err != nil {
			return fmt.Errorf("archive list: %w", err)
		}
		if err := s.lists.ShiftPositions(txCtx, boardID, position.Remove(l.Position)); err != nil {
			return fmt.Errorf("close gap: %w", err)
		}

		return s.record(txCtx, domain.ActivityListArchived, actor, boardID, map[string]any{
			"listTitle": l.Title,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list.Archive: %w", err)
	}

	s.log.InfoContext(ctx, "list archived",
		slog.String("board_id", boardID.String()),
		slog.String("list_id", id.String()))

	return archived, nil
}

// Restore puts an archived list back at the end of the board.
// Restoring an active list is a no-op.
func (s *Service) Restore(ctx context.Context, boardID, id uuid.UUID) (*domain.List, error) {
	actor, err := s.authorize(ctx, boardID, access.ActionEdit)
	if err != nil {
		return nil, fmt.Errorf("list.Restore: %w", err)
	}

	var restored *domain.List
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		l, err := s.lockedList(txCtx, boardID, id)
		if err != nil {
			return err
		}
		if !l.IsArchived {
			restored = l
			return nil
		}

		maxPos, err := s.lists.MaxPosition(txCtx, boardID)
		if err != nil {
			return fmt.Errorf("max position: %w", err)
		}

		restored, err = s.lists.SetArchived(txCtx, id, false, position.Append(maxPos))
		if err != nil {
			return fmt.Errorf("restore list: %w", err)
		}

		return s.record(txCtx, domain.ActivityListRestored, actor, boardID, map[string]any{
			"listTitle": l.Title,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list.Restore: %w", err)
	}

	s.log.InfoContext(ctx, "list restored",
		slog.String("board_id", boardID.String()),
		slog.String("list_id", id.String()),
		slog.Int("position", restored.Position))

	return restored, nil
}

// Delete removes a list and its cards. Deleting an active list closes the
// gap it leaves.
func (s *Service) Delete(ctx context.Context, boardID, id uuid.UUID) error {
	actor, err := s.authorize(ctx, boardID, access.ActionEdit)
	if err != nil {
		return fmt.Errorf("list.Delete: %w", err)
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		l, err := s.lockedList(txCtx, boardID, id)
		if err != nil {
			return err
		}

		if err := s.lists.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete list: %w", err)
		}
		if !l.IsArchived {
			if err := s.lists.ShiftPositions(txCtx, boardID, position.Remove(l.Position)); err != nil {
				return fmt.Errorf("close gap: %w", err)
			}
		}

		return s.record(txCtx, domain.ActivityListDeleted, actor, boardID, map[string]any{
			"listTitle": l.Title,
		})
	})
	if err != nil {
		return fmt.Errorf("list.Delete: %w", err)
	}

	s.log.InfoContext(ctx, "list deleted",
		slog.String("board_id", boardID.String()),
		slog.String("list_id", id.String()))

	return nil
}

// Move places an active list at input.Position within its board, shifting
// the lists in between. Targets past the end are clamped to the last slot.
func (s *Service) Move(ctx context.Context, boardID, id uuid.UUID, input MoveInput) (*domain.List, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	actor, err := s.authorize(ctx, boardID, access.ActionEdit)
	if err != nil {
		return nil, fmt.Errorf("list.Move: %w", err)
	}

	var moved *domain.List
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		l, err := s.lockedList(txCtx, boardID, id)
		if err != nil {
			return err
		}
		if l.IsArchived {
			return domain.NewValidationError("id", "archived lists cannot be moved")
		}

		count, err := s.lists.CountActive(txCtx, boardID)
		if err != nil {
			return fmt.Errorf("count lists: %w", err)
		}
		target, err := position.ClampWithin(input.Position, count)
		if err != nil {
			return err
		}

		shift, ok := position.MoveWithin(l.Position, target)
		if !ok {
			moved = l
			return nil
		}
		if err := s.lists.ShiftPositions(txCtx, boardID, shift); err != nil {
			return fmt.Errorf("shift lists: %w", err)
		}
		moved, err = s.lists.SetPosition(txCtx, id, target)
		if err != nil {
			return fmt.Errorf("set position: %w", err)
		}

		return s.record(txCtx, domain.ActivityListUpdated, actor, boardID, map[string]any{
			"listTitle":    l.Title,
			"fromPosition": l.Position,
			"toPosition":   target,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list.Move: %w", err)
	}

	s.log.InfoContext(ctx, "list moved",
		slog.String("board_id", boardID.String()),
		slog.String("list_id", id.String()),
		slog.Int("position", moved.Position))

	return moved, nil
}

// Reorder applies a complete new layout of the board's active lists in one
// transaction. Every item must be an active list of the board, and the
// resulting positions must be exactly 0..n-1; otherwise nothing changes.
func (s *Service) Reorder(ctx context.Context, boardID uuid.UUID, input ReorderInput) ([]domain.List, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	actor, err := s.authorize(ctx, boardID, access.ActionEdit)
	if err != nil {
		return nil, fmt.Errorf("list.Reorder: %w", err)
	}

	var lists []domain.List
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.boards.LockForUpdate(txCtx, boardID); err != nil {
			return fmt.Errorf("lock board: %w", err)
		}

		affected, err := s.lists.SetPositions(txCtx, boardID, input.Items)
		if err != nil {
			return fmt.Errorf("set positions: %w", err)
		}
		if affected != int64(len(input.Items)) {
			return fmt.Errorf("%d of %d lists are not active lists of board %s: %w",
				int64(len(input.Items))-affected, len(input.Items), boardID, domain.ErrNotFound)
		}

		positions, err := s.lists.ActivePositions(txCtx, boardID)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}
		if err := position.CheckDense(positions); err != nil {
			return err
		}

		if err := s.record(txCtx, domain.ActivityListsReordered, actor, boardID, map[string]any{
			"count": len(input.Items),
		}); err != nil {
			return err
		}

		lists, err = s.lists.ListByBoard(txCtx, boardID)
		if err != nil {
			return fmt.Errorf("list lists: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list.Reorder: %w", err)
	}

	s.log.InfoContext(ctx, "lists reordered",
		slog.String("board_id", boardID.String()),
		slog.Int("count", len(input.Items)))

	return lists, nil
}
