package user

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/kanban-backend/internal/domain"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	BoardCountsFunc func(ctx context.Context, id uuid.UUID) (int, int, error)
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateFunc      func(ctx context.Context, id uuid.UUID, upd domain.UserUpdate) (*domain.User, error)

	calls struct {
		BoardCounts []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Update []struct {
			Ctx context.Context
			ID  uuid.UUID
			Upd domain.UserUpdate
		}
	}
	lockBoardCounts sync.RWMutex
	lockGetByID     sync.RWMutex
	lockUpdate      sync.RWMutex
}

func (mock *userRepoMock) BoardCounts(ctx context.Context, id uuid.UUID) (int, int, error) {
	if mock.BoardCountsFunc == nil {
		panic("userRepoMock.BoardCountsFunc: method is nil but userRepo.BoardCounts was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockBoardCounts.Lock()
	mock.calls.BoardCounts = append(mock.calls.BoardCounts, callInfo)
	mock.lockBoardCounts.Unlock()
	return mock.BoardCountsFunc(ctx, id)
}

func (mock *userRepoMock) BoardCountsCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockBoardCounts.RLock()
	calls := mock.calls.BoardCounts
	mock.lockBoardCounts.RUnlock()
	return calls
}

func (mock *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if mock.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *userRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *userRepoMock) Update(ctx context.Context, id uuid.UUID, upd domain.UserUpdate) (*domain.User, error) {
	if mock.UpdateFunc == nil {
		panic("userRepoMock.UpdateFunc: method is nil but userRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
		Upd domain.UserUpdate
	}{Ctx: ctx, ID: id, Upd: upd}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, id, upd)
}

func (mock *userRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
	Upd domain.UserUpdate
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}
