package card

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/kanban-backend/internal/domain"
	"github.com/heartmarshall/kanban-backend/internal/position"
	"github.com/heartmarshall/kanban-backend/internal/service/access"
	"github.com/heartmarshall/kanban-backend/pkg/ctxutil"
)

// Move places an active card at input.Position in list input.ListID.
//
// Within one list the cards between the old and new slot shift by one.
// Across lists the source list closes its gap and the destination opens a
// slot; both shifts are written before the card itself. Targets past the
// end are clamped. The destination may be on another board the actor can
// edit, in which case the card follows it there.
func (s *Service) Move(ctx context.Context, id uuid.UUID, input MoveInput) (*domain.Card, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	c, _, actor, err := s.loadAuthorized(ctx, id, access.ActionEdit)
	if err != nil {
		return nil, fmt.Errorf("card.Move: %w", err)
	}

	dst, err := s.lists.GetByID(ctx, input.ListID)
	if err != nil {
		return nil, fmt.Errorf("card.Move: %w", err)
	}
	if dst.BoardID != c.BoardID {
		if _, _, err := s.gate.Authorize(ctx, dst.BoardID, access.ActionEdit); err != nil {
			return nil, fmt.Errorf("card.Move: %w", err)
		}
	}

	var from, to int
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		cur, lists, err := s.lockedCard(txCtx, c, input.ListID)
		if err != nil {
			return err
		}
		if cur.IsArchived {
			return domain.NewValidationError("id", "archived cards cannot be moved")
		}
		dst := lists[input.ListID]
		if dst.IsArchived {
			return domain.NewValidationError("listId", "list is archived")
		}

		from = cur.Position
		if cur.ListID == dst.ID {
			to, err = s.moveWithin(txCtx, cur, input.Position)
			return err
		}

		to, err = s.moveAcross(txCtx, cur, dst, input.Position)
		if err != nil {
			return err
		}
		return s.record(txCtx, domain.ActivityCardMoved, actor, dst.BoardID, map[string]any{
			"cardTitle": cur.Title,
			"fromList":  listTitle(lists[cur.ListID]),
			"toList":    dst.Title,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("card.Move: %w", err)
	}

	s.log.InfoContext(ctx, "card moved",
		slog.String("card_id", id.String()),
		slog.String("from_list", c.ListID.String()),
		slog.String("to_list", input.ListID.String()),
		slog.Int("from", from),
		slog.Int("to", to))

	return s.reload(ctx, "card.Move", id)
}

func (s *Service) moveWithin(ctx context.Context, c *domain.Card, target int) (int, error) {
	count, err := s.cards.CountActive(ctx, c.ListID)
	if err != nil {
		return 0, fmt.Errorf("count cards: %w", err)
	}
	target, err = position.ClampWithin(target, count)
	if err != nil {
		return 0, err
	}

	shift, ok := position.MoveWithin(c.Position, target)
	if !ok {
		return target, nil
	}
	if err := s.cards.ShiftPositions(ctx, c.ListID, shift); err != nil {
		return 0, fmt.Errorf("shift cards: %w", err)
	}
	if err := s.cards.Place(ctx, domain.CardPlacement{
		ID: c.ID, ListID: c.ListID, BoardID: c.BoardID, Position: target,
	}); err != nil {
		return 0, fmt.Errorf("place card: %w", err)
	}
	return target, nil
}

func (s *Service) moveAcross(ctx context.Context, c *domain.Card, dst *domain.List, target int) (int, error) {
	count, err := s.cards.CountActive(ctx, dst.ID)
	if err != nil {
		return 0, fmt.Errorf("count cards: %w", err)
	}
	target, err = position.ClampAcross(target, count)
	if err != nil {
		return 0, err
	}

	srcShift, dstShift := position.MoveAcross(c.Position, target)
	if err := s.cards.ShiftPositions(ctx, c.ListID, srcShift); err != nil {
		return 0, fmt.Errorf("close gap: %w", err)
	}
	if err := s.cards.ShiftPositions(ctx, dst.ID, dstShift); err != nil {
		return 0, fmt.Errorf("open slot: %w", err)
	}
	if err := s.cards.Place(ctx, domain.CardPlacement{
		ID: c.ID, ListID: dst.ID, BoardID: dst.BoardID, Position: target,
	}); err != nil {
		return 0, fmt.Errorf("place card: %w", err)
	}
	return target, nil
}

// Reorder writes the final list and position of every card in input in one
// transaction. Afterwards every list that lost or received a card must hold
// positions exactly 0..n-1, otherwise nothing changes and a validation
// error is returned. The actor must be able to edit every board involved.
func (s *Service) Reorder(ctx context.Context, input ReorderInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	// Current locations, read before locking to learn which lists to lock.
	before := make(map[uuid.UUID]*domain.Card, len(input.Items))
	for _, it := range input.Items {
		c, err := s.cards.GetByID(ctx, it.ID)
		if err != nil {
			return fmt.Errorf("card.Reorder: %w", err)
		}
		if c.IsArchived {
			return fmt.Errorf("card.Reorder: %w", domain.NewValidationError("id", "archived cards cannot be reordered"))
		}
		before[it.ID] = c
	}

	listIDs := make([]uuid.UUID, 0, len(input.Items)*2)
	for _, it := range input.Items {
		listIDs = append(listIDs, before[it.ID].ListID, it.ListID)
	}
	listIDs = uniqueIDs(listIDs)

	actor, _ := ctxutil.UserIDFromCtx(ctx)
	counts := map[uuid.UUID]int{}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		lists, err := s.lists.LockForUpdate(txCtx, listIDs...)
		if err != nil {
			return fmt.Errorf("lock lists: %w", err)
		}

		boards := map[uuid.UUID]struct{}{}
		for _, l := range lists {
			boards[l.BoardID] = struct{}{}
		}
		for boardID := range boards {
			if _, _, err := s.gate.Authorize(txCtx, boardID, access.ActionEdit); err != nil {
				return err
			}
		}

		placements := make([]domain.CardPlacement, len(input.Items))
		for n, it := range input.Items {
			cur, err := s.cards.GetByID(txCtx, it.ID)
			if err != nil {
				return fmt.Errorf("get card: %w", err)
			}
			if cur.ListID != before[it.ID].ListID {
				return fmt.Errorf("card %s moved concurrently: %w", it.ID, domain.ErrConflict)
			}
			dst := lists[it.ListID]
			if dst.IsArchived {
				return domain.NewValidationError(fmt.Sprintf("items[%d].listId", n), "list is archived")
			}
			placements[n] = domain.CardPlacement{
				ID: it.ID, ListID: dst.ID, BoardID: dst.BoardID, Position: it.Position,
			}
			counts[dst.BoardID]++
		}

		affected, err := s.cards.PlaceBatch(txCtx, placements)
		if err != nil {
			return fmt.Errorf("place cards: %w", err)
		}
		if affected != int64(len(placements)) {
			return fmt.Errorf("%d of %d cards were not placed: %w",
				int64(len(placements))-affected, len(placements), domain.ErrNotFound)
		}

		for _, listID := range listIDs {
			positions, err := s.cards.ActivePositions(txCtx, listID)
			if err != nil {
				return fmt.Errorf("read positions: %w", err)
			}
			if err := position.CheckDense(positions); err != nil {
				return err
			}
		}

		for boardID, n := range counts {
			if err := s.record(txCtx, domain.ActivityCardsReordered, actor, boardID, map[string]any{
				"count": n,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("card.Reorder: %w", err)
	}

	s.log.InfoContext(ctx, "cards reordered",
		slog.Int("count", len(input.Items)),
		slog.Int("lists", len(listIDs)))

	return nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
