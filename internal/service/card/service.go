// Package card implements card operations. Position changes lock the rows
// of every list they touch, in ascending id order, and run in one
// transaction, so the active cards of a list always occupy positions
// 0..n-1.
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

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type cardRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	MaxPosition(ctx context.Context, listID uuid.UUID) (int, error)
	CountActive(ctx context.Context, listID uuid.UUID) (int, error)
	ActivePositions(ctx context.Context, listID uuid.UUID) ([]int, error)
	Create(ctx context.Context, c *domain.Card) (*domain.Card, error)
	Update(ctx context.Context, id uuid.UUID, upd domain.CardUpdate) (*domain.Card, error)
	SetArchived(ctx context.Context, id uuid.UUID, archived bool, pos int) error
	ShiftPositions(ctx context.Context, listID uuid.UUID, s position.Shift) error
	Place(ctx context.Context, p domain.CardPlacement) error
	PlaceBatch(ctx context.Context, placements []domain.CardPlacement) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddAssignee(ctx context.Context, cardID, userID uuid.UUID) (bool, error)
	RemoveAssignee(ctx context.Context, cardID, userID uuid.UUID) (bool, error)
}

type listRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.List, error)
	LockForUpdate(ctx context.Context, ids ...uuid.UUID) (map[uuid.UUID]*domain.List, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type activityRepo interface {
	Create(ctx context.Context, a *domain.Activity) error
}

type accessGate interface {
	Authorize(ctx context.Context, boardID uuid.UUID, action access.Action) (*domain.Board, domain.Role, error)
	RoleOf(ctx context.Context, board *domain.Board, userID uuid.UUID) (domain.Role, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements card operations.
type Service struct {
	log        *slog.Logger
	cards      cardRepo
	lists      listRepo
	users      userRepo
	activities activityRepo
	gate       accessGate
	tx         txManager
}

// NewService creates a new card service instance.
func NewService(
	logger *slog.Logger,
	cards cardRepo,
	lists listRepo,
	users userRepo,
	activities activityRepo,
	gate accessGate,
	tx txManager,
) *Service {
	return &Service{
		log:        logger.With("service", "card"),
		cards:      cards,
		lists:      lists,
		users:      users,
		activities: activities,
		gate:       gate,
		tx:         tx,
	}
}

// lockedCard locks the card's list plus any extra lists and re-reads the
// card under the lock. A card that changed lists between the two reads
// yields ErrConflict. Must be called inside a transaction.
func (s *Service) lockedCard(ctx context.Context, c *domain.Card, extra ...uuid.UUID) (*domain.Card, map[uuid.UUID]*domain.List, error) {
	lists, err := s.lists.LockForUpdate(ctx, append([]uuid.UUID{c.ListID}, extra...)...)
	if err != nil {
		return nil, nil, fmt.Errorf("lock lists: %w", err)
	}

	cur, err := s.cards.GetByID(ctx, c.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("get card: %w", err)
	}
	if cur.ListID != c.ListID {
		return nil, nil, fmt.Errorf("card %s moved concurrently: %w", c.ID, domain.ErrConflict)
	}
	return cur, lists, nil
}

// loadAuthorized fetches a card and checks the actor may perform action on
// its board.
func (s *Service) loadAuthorized(ctx context.Context, id uuid.UUID, action access.Action) (*domain.Card, *domain.Board, uuid.UUID, error) {
	c, err := s.cards.GetByID(ctx, id)
	if err != nil {
		return nil, nil, uuid.Nil, err
	}

	board, _, err := s.gate.Authorize(ctx, c.BoardID, action)
	if err != nil {
		return nil, nil, uuid.Nil, err
	}

	actor, _ := ctxutil.UserIDFromCtx(ctx)
	return c, board, actor, nil
}

func (s *Service) record(ctx context.Context, typ domain.ActivityType, actor, boardID uuid.UUID, payload map[string]any) error {
	if err := s.activities.Create(ctx, domain.NewActivity(typ, actor, boardID, payload)); err != nil {
		return fmt.Errorf("record %s: %w", typ, err)
	}
	return nil
}

func listTitle(l *domain.List) string {
	if l == nil {
		return ""
	}
	return l.Title
}
