package activity

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/kanban-backend/internal/domain"
)

var _ activityRepo = &activityRepoMock{}

type activityRepoMock struct {
	ListByBoardFunc  func(ctx context.Context, f domain.ActivityFilter) ([]domain.Activity, error)
	CountByBoardFunc func(ctx context.Context, boardID uuid.UUID) (int, error)

	calls struct {
		ListByBoard []struct {
			Ctx context.Context
			F   domain.ActivityFilter
		}
		CountByBoard []struct {
			Ctx     context.Context
			BoardID uuid.UUID
		}
	}
	lockListByBoard  sync.RWMutex
	lockCountByBoard sync.RWMutex
}

func (mock *activityRepoMock) ListByBoard(ctx context.Context, f domain.ActivityFilter) ([]domain.Activity, error) {
	if mock.ListByBoardFunc == nil {
		panic("activityRepoMock.ListByBoardFunc: method is nil but activityRepo.ListByBoard was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.ActivityFilter
	}{Ctx: ctx, F: f}
	mock.lockListByBoard.Lock()
	mock.calls.ListByBoard = append(mock.calls.ListByBoard, callInfo)
	mock.lockListByBoard.Unlock()
	return mock.ListByBoardFunc(ctx, f)
}

func (mock *activityRepoMock) ListByBoardCalls() []struct {
	Ctx context.Context
	F   domain.ActivityFilter
} {
	mock.lockListByBoard.RLock()
	calls := mock.calls.ListByBoard
	mock.lockListByBoard.RUnlock()
	return calls
}

func (mock *activityRepoMock) CountByBoard(ctx context.Context, boardID uuid.UUID) (int, error) {
	if mock.CountByBoardFunc == nil {
		panic("activityRepoMock.CountByBoardFunc: method is nil but activityRepo.CountByBoard was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		BoardID uuid.UUID
	}{Ctx: ctx, BoardID: boardID}
	mock.lockCountByBoard.Lock()
	mock.calls.CountByBoard = append(mock.calls.CountByBoard, callInfo)
	mock.lockCountByBoard.Unlock()
	return mock.CountByBoardFunc(ctx, boardID)
}

func (mock *activityRepoMock) CountByBoardCalls() []struct {
	Ctx     context.Context
	BoardID uuid.UUID
} {
	mock.lockCountByBoard.RLock()
	calls := mock.calls.CountByBoard
	mock.lockCountByBoard.RUnlock()
	return calls
}
