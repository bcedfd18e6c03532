package access

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/kanban-backend/internal/domain"
)

var _ boardRepo = &boardRepoMock{}

type boardRepoMock struct {
	GetByIDFunc  func(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	IsMemberFunc func(ctx context.Context, boardID, userID uuid.UUID) (bool, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		IsMember []struct {
			Ctx     context.Context
			BoardID uuid.UUID
			UserID  uuid.UUID
		}
	}
	lockGetByID  sync.RWMutex
	lockIsMember sync.RWMutex
}

func (mock *boardRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	if mock.GetByIDFunc == nil {
		panic("boardRepoMock.GetByIDFunc: method is nil but boardRepo.GetByID was just called")
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

func (mock *boardRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *boardRepoMock) IsMember(ctx context.Context, boardID, userID uuid.UUID) (bool, error) {
	if mock.IsMemberFunc == nil {
		panic("boardRepoMock.IsMemberFunc: method is nil but boardRepo.IsMember was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		BoardID uuid.UUID
		UserID  uuid.UUID
	}{Ctx: ctx, BoardID: boardID, UserID: userID}
	mock.lockIsMember.Lock()
	mock.calls.IsMember = append(mock.calls.IsMember, callInfo)
	mock.lockIsMember.Unlock()
	return mock.IsMemberFunc(ctx, boardID, userID)
}

func (mock *boardRepoMock) IsMemberCalls() []struct {
	Ctx     context.Context
	BoardID uuid.UUID
	UserID  uuid.UUID
} {
	mock.lockIsMember.RLock()
	calls := mock.calls.IsMember
	mock.lockIsMember.RUnlock()
	return calls
}
