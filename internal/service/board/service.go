package board

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/kanban-backend/internal/domain"
	"github.com/heartmarshall/kanban-backend/internal/service/access"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type boardRepo interface {
	Create(ctx context.Context, b *domain.Board) (*domain.Board, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.BoardSummary, error)
	Update(ctx context.Context, id uuid.UUID, upd domain.BoardUpdate) (*domain.Board, error)
	SetArchived(ctx context.Context, id uuid.UUID, archived bool) (*domain.Board, error)
	Touch(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	Members(ctx context.Context, boardID uuid.UUID) ([]domain.User, error)
	AddMember(ctx context.Context, boardID, userID uuid.UUID) (bool, error)
	RemoveMember(ctx context.Context, boardID, userID uuid.UUID) (bool, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type listRepo interface {
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]domain.List, error)
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

// Service implements board lifecycle and membership operations.
type Service struct {
	log        *slog.Logger
	boards     boardRepo
	users      userRepo
	lists      listRepo
	cards      cardRepo
	activities activityRepo
	gate       accessGate
	tx         txManager
}

// NewService creates a new board service instance.
func NewService(
	logger *slog.Logger,
	boards boardRepo,
	users userRepo,
	lists listRepo,
	cards cardRepo,
	activities activityRepo,
	gate accessGate,
	tx txManager,
) *Service {
	return &Service{
		log:        logger.With("service", "board"),
		boards:     boards,
		users:      users,
		lists:      lists,
		cards:      cards,
		activities: activities,
		gate:       gate,
		tx:         tx,
	}
}

// record appends an activity for the board. Call it inside the mutation's
// transaction so both commit together.
func (s *Service) record(ctx context.Context, typ domain.ActivityType, actor, boardID uuid.UUID, payload map[string]any) error {
	if err := s.activities.Create(ctx, domain.NewActivity(typ, actor, boardID, payload)); err != nil {
		return fmt.Errorf("record %s: %w", typ, err)
	}
	return nil
}

// detail loads the owner and members of b and, when withLists is set, its
// active lists and cards. The loads run concurrently on the pool.
func (s *Service) detail(ctx context.Context, b *domain.Board, withLists bool) (*domain.BoardDetail, error) {
	var (
		owner   *domain.User
		members []domain.User
		lists   []domain.List
		cards   []domain.Card
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		owner, err = s.users.GetByID(gctx, b.OwnerID)
		if err != nil {
			return fmt.Errorf("get owner: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		members, err = s.boards.Members(gctx, b.ID)
		if err != nil {
			return fmt.Errorf("get members: %w", err)
		}
		return nil
	})

	if withLists {
		g.Go(func() error {
			var err error
			lists, err = s.lists.ListByBoard(gctx, b.ID)
			if err != nil {
				return fmt.Errorf("get lists: %w", err)
			}
			return nil
		})

		g.Go(func() error {
			var err error
			cards, err = s.cards.ListByBoard(gctx, b.ID)
			if err != nil {
				return fmt.Errorf("get cards: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := &domain.BoardDetail{Board: *b, Owner: *owner, Members: members}
	if withLists {
		d.Lists = domain.AttachCards(lists, cards)
	}
	return d, nil
}
