package card

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/kanban-backend/internal/domain"
	"github.com/heartmarshall/kanban-backend/internal/service/access"
)

// AddAssignee assigns a board owner or member to a card. Assigning an
// existing assignee again changes nothing.
func (s *Service) AddAssignee(ctx context.Context, id, userID uuid.UUID) (*domain.Card, error) {
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("userId", "required")
	}

	c, board, actor, err := s.loadAuthorized(ctx, id, access.ActionEdit)
	if err != nil {
		return nil, fmt.Errorf("card.AddAssignee: %w", err)
	}

	role, err := s.gate.RoleOf(ctx, board, userID)
	if err != nil {
		return nil, fmt.Errorf("card.AddAssignee: %w", err)
	}
	if !role.HasAccess() {
		return nil, domain.NewValidationError("userId", "must be the owner or a member of the board")
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("card.AddAssignee: %w", err)
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		added, err := s.cards.AddAssignee(txCtx, id, userID)
		if err != nil {
			return fmt.Errorf("add assignee: %w", err)
		}
		if !added {
			return nil
		}
		return s.record(txCtx, domain.ActivityCardAssigned, actor, c.BoardID, map[string]any{
			"cardTitle":    c.Title,
			"assigneeName": u.Name,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("card.AddAssignee: %w", err)
	}

	s.log.InfoContext(ctx, "card assignee added",
		slog.String("card_id", id.String()),
		slog.String("assignee_id", userID.String()))

	return s.reload(ctx, "card.AddAssignee", id)
}

// RemoveAssignee unassigns a user from a card. Removing a user who is not
// assigned changes nothing.
func (s *Service) RemoveAssignee(ctx context.Context, id, userID uuid.UUID) (*domain.Card, error) {
	c, _, actor, err := s.loadAuthorized(ctx, id, access.ActionEdit)
	if err != nil {
		return nil, fmt.Errorf("card.RemoveAssignee: %w", err)
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		removed, err := s.cards.RemoveAssignee(txCtx, id, userID)
		if err != nil {
			return fmt.Errorf("remove assignee: %w", err)
		}
		if !removed {
			return nil
		}

		payload := map[string]any{"cardTitle": c.Title}
		for _, a := range c.Assignees {
			if a.ID == userID {
				payload["assigneeName"] = a.Name
			}
		}
		return s.record(txCtx, domain.ActivityCardUnassigned, actor, c.BoardID, payload)
	})
	if err != nil {
		return nil, fmt.Errorf("card.RemoveAssignee: %w", err)
	}

	s.log.InfoContext(ctx, "card assignee removed",
		slog.String("card_id", id.String()),
		slog.String("assignee_id", userID.String()))

	return s.reload(ctx, "card.RemoveAssignee", id)
}
