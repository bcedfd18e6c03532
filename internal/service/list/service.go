// Package list implements list operations on a board. Every change to list
// positions runs in one transaction holding the board row lock, so the
// active lists of a board always occupy positions 0..n-1.
package list

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

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type listRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.List, error)
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]domain.List, error)
	MaxPosition(ctx context.Context, boardID uuid.UUID) (int, error)
	CountActive(ctx context.Context, boardID uuid.UUID) (int, error)
	ActivePositions(ctx context.Context, boardID uuid.UUID) ([]int, error)
	Create(ctx context.Context, l *domain.List) (*domain.List, error)
	UpdateTitle(ctx context.Context, id uuid.UUID, title string) (*domain.List, error)
	SetArchived(ctx context.Context, id uuid.UUID, archived bool, pos int) (*domain.List, error)
	ShiftPositions(ctx context.Context, boardID uuid.UUID, s position.Shift) error
	SetPosition(ctx context.Context, id uuid.UUID, pos int) (*domain.List, error)
	SetPositions(ctx context.Context, boardID uuid.UUID, items []domain.ReorderItem) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type boardLocker interface {
	LockForUpdate(ctx context.Context, id uuid.UUID) (*domain.Board, error)
}

type cardRepo interface {
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]domain.Card, error)
}

type activityRepo interface {
	Create(ctx context.Context, a *domain.Activity) error
}

type accessGate interface {
	Authorize(ctx context.Context, boardID uuid.UUID, action access.Action) (*domain.Board, domain.Role, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements list operations.
type Service struct {
	log        *slog.Logger
	lists      listRepo
	boards     boardLocker
	cards      cardRepo
	activities activityRepo
	gate       accessGate
	tx         txManager
}

// NewService creates a new list service instance.
func NewService(
	logger *slog.Logger,
	lists listRepo,
	boards boardLocker,
	cards cardRepo,
	activities activityRepo,
	gate accessGate,
	tx txManager,
) *Service {
	return &Service{
		log:        logger.With("service", "list"),
		lists:      lists,
		boards:     boards,
		cards:      cards,
		activities: activities,
		gate:       gate,
		tx:         tx,
	}
}

// lockedList locks the board and returns list id, which must belong to it.
// Must be called inside a transaction.
func (s *Service) lockedList(ctx context.Context, boardID, id uuid.UUID) (*domain.List, error) {
	if _, err := s.boards.LockForUpdate(ctx, boardID); err != nil {
		return nil, fmt.Errorf("lock board: %w", err)
	}

	l, err := s.lists.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get list: %w", err)
	}
	if l.BoardID != boardID {
		return nil, fmt.Errorf("list %s on board %s: %w", id, boardID, domain.ErrNotFound)
	}
	return l, nil
}

func (s *Service) record(ctx context.Context, typ domain.ActivityType, actor, boardID uuid.UUID, payload map[string]any) error {
	if err := s.activities.Create(ctx, domain.NewActivity(typ, actor, boardID, payload)); err != nil {
		return fmt.Errorf("record %s: %w", typ, err)
	}
	return nil
}

// authorize checks the actor in ctx against the board and returns the actor.
func (s *Service) authorize(ctx context.Context, boardID uuid.UUID, action access.Action) (uuid.UUID, error) {
	if _, _, err := s.gate.Authorize(ctx, boardID, action); err != nil {
		return uuid.Nil, err
	}
	actor, _ := ctxutil.UserIDFromCtx(ctx)
	return actor, nil
}
