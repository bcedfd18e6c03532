package card

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/kanban-backend/internal/domain"
	"github.com/heartmarshall/kanban-backend/internal/position"
	"github.com/heartmarshall/kanban-backend/internal/service/access"
	"github.com/heartmarshall/kanban-backend/pkg/ctxutil"
)

// Create appends a new card to the end of an active list.
func (s *Service) Create(ctx context.Context, listID uuid.UUID, input CreateInput) (*domain.Card, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Description != nil {
		d := strings.TrimSpace(*input.Description)
		input.Description = &d
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	l, err := s.lists.GetByID(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("card.Create: %w", err)
	}
	if _, _, err := s.gate.Authorize(ctx, l.BoardID, access.ActionEdit); err != nil {
		return nil, fmt.Errorf("card.Create: %w", err)
	}
	actor, _ := ctxutil.UserIDFromCtx(ctx)

	var created *domain.Card
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		locked, err := s.lists.LockForUpdate(txCtx, listID)
		if err != nil {
			return fmt.Errorf("lock list: %w", err)
		}
		l := locked[listID]
		if l.IsArchived {
			return domain.NewValidationError("listId", "list is archived")
		}

		maxPos, err := s.cards.MaxPosition(txCtx, listID)
		if err != nil {
			return fmt.Errorf("max position: %w", err)
		}

		now := time.Now().UTC()
		c, err := s.cards.Create(txCtx, &domain.Card{
			ID:          uuid.New(),
			ListID:      listID,
			BoardID:     l.BoardID,
			Title:       input.Title,
			Description: input.Description,
			Position:    position.Append(maxPos),
			Labels:      input.Labels,
			DueDate:     input.DueDate,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("create card: %w", err)
		}

		created = c
		return s.record(txCtx, domain.ActivityCardCreated, actor, l.BoardID, map[string]any{
			"cardTitle": c.Title,
			"listTitle": l.Title,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("card.Create: %w", err)
	}

	s.log.InfoContext(ctx, "card created",
		slog.String("list_id", listID.String()),
		slog.String("card_id", created.ID.String()),
		slog.Int("position", created.Position))

	return created, nil
}

// Get returns a card with its list and assignees. Archived cards are
// returned too.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	c, _, _, err := s.loadAuthorized(ctx, id, access.ActionRead)
	if err != nil {
		return nil, fmt.Errorf("card.Get: %w", err)
	}
	return c, nil
}

// Update applies a partial update. An empty update returns the card as is.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*domain.Card, error) {
	if input.Title != nil {
		t := strings.TrimSpace(*input.Title)
		input.Title = &t
	}
	if input.Description != nil {
		d := strings.TrimSpace(*input.Description)
		input.Description = &d
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	c, _, actor, err := s.loadAuthorized(ctx, id, access.ActionEdit)
	if err != nil {
		return nil, fmt.Errorf("card.Update: %w", err)
	}

	upd := input.toUpdate()
	if upd.IsEmpty() {
		return c, nil
	}

	var updated *domain.Card
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		u, err := s.cards.Update(txCtx, id, upd)
		if err != nil {
			return fmt.Errorf("update card: %w", err)
		}
		updated = u
		return s.record(txCtx, domain.ActivityCardUpdated, actor, c.BoardID, map[string]any{
			"cardTitle": updated.Title,
			"fields":    changedFields(upd),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("card.Update: %w", err)
	}

	s.log.InfoContext(ctx, "card updated", slog.String("card_id", id.String()))

	updated.Assignees = c.Assignees
	updated.List = c.List
	return updated, nil
}

// Archive removes a card from its list's active sequence and closes the gap.
// Archiving an archived card is a no-op.
func (s *Service) Archive(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	c, _, actor, err := s.loadAuthorized(ctx, id, access.ActionEdit)
	if err != nil {
		return nil, fmt.Errorf("card.Archive: %w", err)
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		cur, lists, err := s.lockedCard(txCtx, c)
		if err != nil {
			return err
		}
		if cur.IsArchived {
			return nil
		}

		if err := s.cards.SetArchived(txCtx, id, true, cur.Position); err != nil {
			return fmt.Errorf("archive card: %w", err)
		}
		if err := s.cards.ShiftPositions(txCtx, cur.ListID, position.Remove(cur.Position)); err != nil {
			return fmt.Errorf("close gap: %w", err)
		}

		return s.record(txCtx, domain.ActivityCardArchived, actor, cur.BoardID, map[string]any{
			"cardTitle": cur.Title,
			"listTitle": listTitle(lists[cur.ListID]),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("card.Archive: %w", err)
	}

	s.log.InfoContext(ctx, "card archived", slog.String("card_id", id.String()))

	return s.reload(ctx, "card.Archive", id)
}

// Restore puts an archived card back at the end of its list.
// Restoring an active card is a no-op.
func (s *Service) Restore(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	c, _, actor, err := s.loadAuthorized(ctx, id, access.ActionEdit)
	if err != nil {
		return nil, fmt.Errorf("card.Restore: %w", err)
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		cur, lists, err := s.lockedCard(txCtx, c)
		if err != nil {
			return err
		}
		if !cur.IsArchived {
			return nil
		}

		maxPos, err := s.cards.MaxPosition(txCtx, cur.ListID)
		if err != nil {
			return fmt.Errorf("max position: %w", err)
		}
		if err := s.cards.SetArchived(txCtx, id, false, position.Append(maxPos)); err != nil {
			return fmt.Errorf("restore card: %w", err)
		}

		return s.record(txCtx, domain.ActivityCardRestored, actor, cur.BoardID, map[string]any{
			"cardTitle": cur.Title,
			"listTitle": listTitle(lists[cur.ListID]),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("card.Restore: %w", err)
	}

	s.log.InfoContext(ctx, "card restored", slog.String("card_id", id.String()))

	return s.reload(ctx, "card.Restore", id)
}

// Delete removes a card. Deleting an active card closes the gap it leaves.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	c, _, actor, err := s.loadAuthorized(ctx, id, access.ActionEdit)
	if err != nil {
		return fmt.Errorf("card.Delete: %w", err)
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		cur, lists, err := s.lockedCard(txCtx, c)
		if err != nil {
			return err
		}

		if err := s.cards.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete card: %w", err)
		}
		if !cur.IsArchived {
			if err := s.cards.ShiftPositions(txCtx, cur.ListID, position.Remove(cur.Position)); err != nil {
				return fmt.Errorf("close gap: %w", err)
			}
		}

		return s.record(txCtx, domain.ActivityCardDeleted, actor, cur.BoardID, map[string]any{
			"cardTitle": cur.Title,
			"listTitle": listTitle(lists[cur.ListID]),
		})
	})
	if err != nil {
		return fmt.Errorf("card.Delete: %w", err)
	}

	s.log.InfoContext(ctx, "card deleted", slog.String("card_id", id.String()))

	return nil
}

func (s *Service) reload(ctx context.Context, op string, id uuid.UUID) (*domain.Card, error) {
	c, err := s.cards.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func changedFields(u domain.CardUpdate) []string {
	var fields []string
	if u.Title != nil {
		fields = append(fields, "title")
	}
	if u.Description != nil || u.ClearDescription {
		fields = append(fields, "description")
	}
	if u.Labels != nil {
		fields = append(fields, "labels")
	}
	if u.DueDate != nil || u.ClearDueDate {
		fields = append(fields, "dueDate")
	}
	return fields
}
