package board

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/kanban-backend/internal/domain"
	"github.com/heartmarshall/kanban-backend/internal/service/access"
	"github.com/heartmarshall/kanban-backend/pkg/ctxutil"
)

// Create creates a board owned by the authenticated user.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.BoardDetail, error) {
	input.Name = strings.TrimSpace(input.Name)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	actor, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	background := domain.DefaultBoardBackground
	if input.Background != nil {
		background = *input.Background
	}

	var created *domain.Board
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		now := time.Now().UTC()
		b, err := s.boards.Create(txCtx, &domain.Board{
			ID:          uuid.New(),
			Name:        input.Name,
			Description: input.Description,
			Background:  background,
			OwnerID:     actor,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("create board: %w", err)
		}

		if err := s.record(txCtx, domain.ActivityBoardCreated, actor, b.ID, map[string]any{
			"boardName": b.Name,
		}); err != nil {
			return err
		}

		created = b
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("board.Create: %w", err)
	}

	s.log.InfoContext(ctx, "board created",
		slog.String("user_id", actor.String()),
		slog.String("board_id", created.ID.String()))

	owner, err := s.users.GetByID(ctx, actor)
	if err != nil {
		return nil, fmt.Errorf("board.Create: %w", err)
	}

	return &domain.BoardDetail{Board: *created, Owner: *owner, Members: []domain.User{}}, nil
}

// List returns the non-archived boards the authenticated user owns or is a
// member of, most recently updated first.
func (s *Service) List(ctx context.Context) ([]domain.BoardSummary, error) {
	actor, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	boards, err := s.boards.ListForUser(ctx, actor)
	if err != nil {
		return nil, fmt.Errorf("board.List: %w", err)
	}
	return boards, nil
}

// Get returns a board with its owner, members, active lists and their
// active cards. Non-members get ErrForbidden.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.BoardDetail, error) {
	b, _, err := s.gate.Authorize(ctx, id, access.ActionRead)
	if err != nil {
		return nil, fmt.Errorf("board.Get: %w", err)
	}

	d, err := s.detail(ctx, b, true)
	if err != nil {
		return nil, fmt.Errorf("board.Get: %w", err)
	}
	return d, nil
}

// Update changes a board's name, description or background. Owner only.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*domain.BoardDetail, error) {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		input.Name = &name
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	b, _, err := s.gate.Authorize(ctx, id, access.ActionManage)
	if err != nil {
		return nil, fmt.Errorf("board.Update: %w", err)
	}
	actor := b.OwnerID

	upd := domain.BoardUpdate{
		Name:             input.Name,
		Description:      input.Description,
		ClearDescription: input.ClearDescription,
		Background:       input.Background,
	}

	if !upd.IsEmpty() {
		err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
			updated, err := s.boards.Update(txCtx, id, upd)
			if err != nil {
				return fmt.Errorf("update board: %w", err)
			}

			if err := s.record(txCtx, domain.ActivityBoardUpdated, actor, id, map[string]any{
				"boardName": updated.Name,
				"fields":    changedFields(upd),
			}); err != nil {
				return err
			}

			b = updated
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("board.Update: %w", err)
		}

		s.log.InfoContext(ctx, "board updated",
			slog.String("user_id", actor.String()),
			slog.String("board_id", id.String()))
	}

	d, err := s.detail(ctx, b, false)
	if err != nil {
		return nil, fmt.Errorf("board.Update: %w", err)
	}
	return d, nil
}

// Archive hides a board from listings. Its data is kept. Owner only.
func (s *Service) Archive(ctx context.Context, id uuid.UUID) (*domain.BoardDetail, error) {
	b, _, err := s.gate.Authorize(ctx, id, access.ActionManage)
	if err != nil {
		return nil, fmt.Errorf("board.Archive: %w", err)
	}
	actor := b.OwnerID

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		archived, err := s.boards.SetArchived(txCtx, id, true)
		if err != nil {
			return fmt.Errorf("archive board: %w", err)
		}

		if err := s.record(txCtx, domain.ActivityBoardArchived, actor, id, map[string]any{
			"boardName": archived.Name,
		}); err != nil {
			return err
		}

		b = archived
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("board.Archive: %w", err)
	}

	s.log.InfoContext(ctx, "board archived",
		slog.String("user_id", actor.String()),
		slog.String("board_id", id.String()))

	d, err := s.detail(ctx, b, false)
	if err != nil {
		return nil, fmt.Errorf("board.Archive: %w", err)
	}
	return d, nil
}

// Delete removes a board together with its lists, cards, memberships and
// activities. Owner only.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	b, _, err := s.gate.Authorize(ctx, id, access.ActionManage)
	if err != nil {
		return fmt.Errorf("board.Delete: %w", err)
	}

	if err := s.boards.Delete(ctx, id); err != nil {
		return fmt.Errorf("board.Delete: %w", err)
	}

	s.log.InfoContext(ctx, "board deleted",
		slog.String("user_id", b.OwnerID.String()),
		slog.String("board_id", id.String()))

	return nil
}

func changedFields(upd domain.BoardUpdate) []string {
	var fields []string
	if upd.Name != nil {
		fields = append(fields, "name")
	}
	if upd.Description != nil || upd.ClearDescription {
		fields = append(fields, "description")
	}
	if upd.Background != nil {
		fields = append(fields, "background")
	}
	return fields
}
