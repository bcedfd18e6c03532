package seeder

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/kanban-backend/internal/domain"
	"github.com/heartmarshall/kanban-backend/internal/service/auth"
	"github.com/heartmarshall/kanban-backend/internal/service/board"
	"github.com/heartmarshall/kanban-backend/internal/service/card"
	"github.com/heartmarshall/kanban-backend/internal/service/list"
)

// UserStore finds and removes the demo account.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Registrar creates the demo account with a hashed password.
type Registrar interface {
	Register(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error)
}

// BoardCreator creates boards owned by the user in ctx.
type BoardCreator interface {
	Create(ctx context.Context, input board.CreateInput) (*domain.BoardDetail, error)
}

// ListCreator appends lists to a board.
type ListCreator interface {
	Create(ctx context.Context, boardID uuid.UUID, input list.CreateInput) (*domain.List, error)
}

// CardCreator appends cards to a list.
type CardCreator interface {
	Create(ctx context.Context, listID uuid.UUID, input card.CreateInput) (*domain.Card, error)
}

// Deps groups what the pipeline writes through. Seeding goes through the
// services so positions and activities follow the same rules as the API.
type Deps struct {
	Users  UserStore
	Auth   Registrar
	Boards BoardCreator
	Lists  ListCreator
	Cards  CardCreator
}
