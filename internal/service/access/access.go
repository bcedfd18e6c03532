// Package access decides whether an actor may read or change a board.
//
// Owners may do everything. Members may read the board and edit its lists
// and cards. Everyone else is denied.
package access

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/kanban-backend/internal/domain"
	"github.com/heartmarshall/kanban-backend/pkg/ctxutil"
)

// Action is something an actor wants to do with a board.
type Action string

const (
	ActionRead   Action = "read"
	ActionEdit   Action = "edit"
	ActionManage Action = "manage"
)

// Can reports whether role permits action.
func Can(role domain.Role, action Action) bool {
	switch role {
	case domain.RoleOwner:
		return true
	case domain.RoleMember:
		return action == ActionRead || action == ActionEdit
	default:
		return false
	}
}

type boardRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	IsMember(ctx context.Context, boardID, userID uuid.UUID) (bool, error)
}

// Gate resolves roles from the board store. It keeps no state between calls.
type Gate struct {
	boards boardRepo
}

// NewGate creates a Gate.
func NewGate(boards boardRepo) *Gate {
	return &Gate{boards: boards}
}

// RoleOf returns userID's role on board.
func (g *Gate) RoleOf(ctx context.Context, board *domain.Board, userID uuid.UUID) (domain.Role, error) {
	if board.OwnerID == userID {
		return domain.RoleOwner, nil
	}

	ok, err := g.boards.IsMember(ctx, board.ID, userID)
	if err != nil {
		return domain.RoleNone, fmt.Errorf("access.RoleOf: %w", err)
	}
	if ok {
		return domain.RoleMember, nil
	}
	return domain.RoleNone, nil
}

// CheckAccess loads the board and returns the actor's role on it.
// Returns ErrNotFound when the board does not exist and ErrForbidden when
// the actor is neither owner nor member.
func (g *Gate) CheckAccess(ctx context.Context, actor, boardID uuid.UUID) (*domain.Board, domain.Role, error) {
	board, err := g.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, domain.RoleNone, fmt.Errorf("access.CheckAccess: %w", err)
	}

	role, err := g.RoleOf(ctx, board, actor)
	if err != nil {
		return nil, domain.RoleNone, err
	}
	if !role.HasAccess() {
		return nil, domain.RoleNone, fmt.Errorf("board %s: %w", boardID, domain.ErrForbidden)
	}
	return board, role, nil
}

// RequireOwner loads the board and fails with ErrForbidden unless actor owns it.
func (g *Gate) RequireOwner(ctx context.Context, actor, boardID uuid.UUID) (*domain.Board, error) {
	board, err := g.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("access.RequireOwner: %w", err)
	}
	if board.OwnerID != actor {
		return nil, fmt.Errorf("board %s: owner required: %w", boardID, domain.ErrForbidden)
	}
	return board, nil
}

// Authorize checks that the actor stored in ctx may perform action on the
// board. Returns ErrUnauthorized when ctx carries no actor.
func (g *Gate) Authorize(ctx context.Context, boardID uuid.UUID, action Action) (*domain.Board, domain.Role, error) {
	actor, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.RoleNone, domain.ErrUnauthorized
	}

	if action == ActionManage {
		board, err := g.RequireOwner(ctx, actor, boardID)
		if err != nil {
			return nil, domain.RoleNone, err
		}
		return board, domain.RoleOwner, nil
	}

	board, role, err := g.CheckAccess(ctx, actor, boardID)
	if err != nil {
		return nil, domain.RoleNone, err
	}
	if !Can(role, action) {
		return nil, domain.RoleNone, fmt.Errorf("board %s: %s: %w", boardID, action, domain.ErrForbidden)
	}
	return board, role, nil
}
