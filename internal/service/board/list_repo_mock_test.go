package board

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/kanban-backend/internal/domain"
)

var _ listRepo = &listRepoMock{}

type listRepoMock struct {
	ListByBoardFunc func(ctx context.Context, boardID uuid.UUID) ([]domain.List, error)

	calls struct {
		ListByBoard []struct {
			Ctx     context.Context
			BoardID uuid.UUID
		}
	}
	lockListByBoard sync.RWMutex
}

func (mock *listRepoMock) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]domain.List, error) {
	if mock.ListByBoardFunc == nil {
		panic("listRepoMock.ListByBoardFunc: method is nil but listRepo.ListByBoard was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		BoardID uuid.UUID
	}{Ctx: ctx, BoardID: boardID}
	mock.lockListByBoard.Lock()
	mock.calls.ListByBoard = append(mock.calls.ListByBoard, callInfo)
	mock.lockListByBoard.Unlock()
	return mock.ListByBoardFunc(ctx, boardID)
}

func (mock *listRepoMock) ListByBoardCalls() []struct {
	Ctx     context.Context
	BoardID uuid.UUID
} {
	mock.lockListByBoard.RLock()
	calls := mock.calls.ListByBoard
	mock.lockListByBoard.RUnlock()
	return calls
}
