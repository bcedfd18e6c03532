package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/kanban-backend/internal/service/activity"
)

var _ activityService = &activityServiceMock{}

type activityServiceMock struct {
	ListFunc func(ctx context.Context, boardID uuid.UUID, input activity.ListInput) (*activity.Page, error)

	calls struct {
		List []struct {
			Ctx     context.Context
			BoardID uuid.UUID
			Input   activity.ListInput
		}
	}
	lockList sync.RWMutex
}

func (mock *activityServiceMock) List(ctx context.Context, boardID uuid.UUID, input activity.ListInput) (*activity.Page, error) {
	if mock.ListFunc == nil {
		panic("activityServiceMock.ListFunc: method is nil but activityService.List was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		BoardID uuid.UUID
		Input   activity.ListInput
	}{Ctx: ctx, BoardID: boardID, Input: input}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, boardID, input)
}

func (mock *activityServiceMock) ListCalls() []struct {
	Ctx     context.Context
	BoardID uuid.UUID
	Input   activity.ListInput
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
