package list

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/kanban-backend/internal/domain"
	"github.com/heartmarshall/kanban-backend/internal/position"
	"github.com/heartmarshall/kanban-backend/internal/service/access"
)

// Create appends a new list to the end of the board.
func (s *Service) Create(ctx context.Context, boardID uuid.UUID, input CreateInput) (*domain.List, error) {
	input.Title = strings.TrimSpace(input.Title)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	actor, err := s.authorize(ctx, boardID, access.ActionEdit)
	if err != nil {
		return nil, fmt.Errorf("list.Create: %w", err)
	}

	var created *domain.List
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.boards.LockForUpdate(txCtx, boardID); err != nil {
			return fmt.Errorf("lock board: %w", err)
		}

		maxPos, err := s.lists.MaxPosition(txCtx, boardID)
		if err != nil {
			return fmt.Errorf("max position: %w", err)
		}

		now := time.Now().UTC()
		l, err := s.lists.Create(txCtx, &domain.List{
			ID:        uuid.New(),
			BoardID:   boardID,
			Title:     input.Title,
			Position:  position.Append(maxPos),
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("create list: %w", err)
		}

		created = l
		return s.record(txCtx, domain.ActivityListCreated, actor, boardID, map[string]any{
			"listTitle": l.Title,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list.Create: %w", err)
	}

	s.log.InfoContext(ctx, "list created",
		slog.String("board_id", boardID.String()),
		slog.String("list_id", created.ID.String()),
		slog.Int("position", created.Position))

	created.Cards = []domain.Card{}
	return created, nil
}

// List returns the board's active lists in position order, each with its
// active cards.
func (s *Service) List(ctx context.Context, boardID uuid.UUID) ([]domain.List, error) {
	if _, err := s.authorize(ctx, boardID, access.ActionRead); err != nil {
		return nil, fmt.Errorf("list.List: %w", err)
	}

	var (
		lists []domain.List
		cards []domain.Card
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lists, err = s.lists.ListByBoard(gctx, boardID)
		return err
	})
	g.Go(func() error {
		var err error
		cards, err = s.cards.ListByBoard(gctx, boardID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("list.List: %w", err)
	}

	return domain.AttachCards(lists, cards), nil
}

// Update renames a list.
func (s *Service) Update(ctx context.Context, boardID, id uuid.UUID, input UpdateInput) (*domain.List, error) {
	input.Title = strings.TrimSpace(input.Title)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	actor, err := s.authorize(ctx, boardID, access.ActionEdit)
	if err != nil {
		return nil, fmt.Errorf("list.Update: %w", err)
	}

	var updated *domain.List
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		l, err := s.lists.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("get list: %w", err)
		}
		if l.BoardID != boardID {
			return fmt.Errorf("list %s on board %s: %w", id, boardID, domain.ErrNotFound)
		}

		updated, err = s.lists.UpdateTitle(txCtx, id, input.Title)
		if err != nil {
			return fmt.Errorf("update list: %w", err)
		}

		return s.record(txCtx, domain.ActivityListUpdated, actor, boardID, map[string]any{
			"listTitle": updated.Title,
			"oldTitle":  l.Title,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list.Update: %w", err)
	}

	s.log.InfoContext(ctx, "list updated",
		slog.String("board_id", boardID.String()),
		slog.String("list_id", id.String()))

	return updated, nil
}
