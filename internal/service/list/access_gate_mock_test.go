package list

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

	calls struct {
		Authorize []struct {
			Ctx     context.Context
			BoardID uuid.UUID
			Action  access.Action
		}
	}
	lockAuthorize sync.RWMutex
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
