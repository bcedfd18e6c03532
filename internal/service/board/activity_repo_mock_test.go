package board

import (
	"context"
	"sync"

	"github.com/heartmarshall/kanban-backend/internal/domain"
)

var _ activityRepo = &activityRepoMock{}

type activityRepoMock struct {
	CreateFunc func(ctx context.Context, a *domain.Activity) error

	calls struct {
		Create []struct {
			Ctx context.Context
			A   *domain.Activity
		}
	}
	lockCreate sync.RWMutex
}

func (mock *activityRepoMock) Create(ctx context.Context, a *domain.Activity) error {
	if mock.CreateFunc == nil {
		panic("activityRepoMock.CreateFunc: method is nil but activityRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		A   *domain.Activity
	}{Ctx: ctx, A: a}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, a)
}

func (mock *activityRepoMock) CreateCalls() []struct {
	Ctx context.Context
	A   *domain.Activity
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
