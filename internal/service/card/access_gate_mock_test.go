package card

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/kanban-backend/internal/domain"
	"github.com/heartmarshall/kanban-backend/internal/service/access"
)

var _ accessGate = &accessGateMock{}

type accessGateMock struct {
	AuthorizeFunc func(ctx context.Context, boardID uuid.UUID, action access.Action) (*domain.Board, domain.Role, error)
	RoleOfFunc    func(ctx context.Context, board *domain.Board, userID uuid.UUID) (domain.Role, error)

	calls struct {
		Authorize []struct {
			Ctx     context.Context
			BoardID uuid.UUID
			Action  access.Action
		}
		RoleOf []struct {
			Ctx    context.Context
			Board  *domain.Board
			UserID uuid.UUID
		}
	}
	lockAuthorize sync.RWMutex
	lockRoleOf    sync.RWMutex
}

func (mock *accessGateMock) Authorize(ctx context.Context, boardID uuid.UUID, action access.Action) (*domain.Board, domain.Role, error) {
	if mock.AuthorizeFunc == nil {
		panic("accessGateMock.AuthorizeFunc: method is nil but accessGate.Authorize was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		BoardID uuid.UUID
		Action  access.Action
	}{Ctx: ctx, BoardID: boardID, Action: action}
	mock.lockAuthorize.Lock()
	mock.calls.Authorize = append(mock.calls.Authorize, callInfo)
	mock.lockAuthorize.Unlock()
	return mock.AuthorizeFunc(ctx, boardID, action)
}

func (mock *accessGateMock) AuthorizeCalls() []struct {
	Ctx     context.Context
	BoardID uuid.UUID
	Action  access.Action
} {
	mock.lockAuthorize.RLock()
	calls := mock.calls.Authorize
	mock.lockAuthorize.RUnlock()
	return calls
}

func (mock *accessGateMock) RoleOf(ctx context.Context, board *domain.Board, userID uuid.UUID) (domain.Role, error) {
	if mock.RoleOfFunc == nil {
		panic("accessGateMock.RoleOfFunc: method is nil but accessGate.RoleOf was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Board  *domain.Board
		UserID uuid.UUID
	}{Ctx: ctx, Board: board, UserID: userID}
	mock.lockRoleOf.Lock()
	mock.calls.RoleOf = append(mock.calls.RoleOf, callInfo)
	mock.lockRoleOf.Unlock()
	return mock.RoleOfFunc(ctx, board, userID)
}

func (mock *accessGateMock) RoleOfCalls() []struct {
	Ctx    context.Context
	Board  *domain.Board
	UserID uuid.UUID
} {
	mock.lockRoleOf.RLock()
	calls := mock.calls.RoleOf
	mock.lockRoleOf.RUnlock()
	return calls
}
