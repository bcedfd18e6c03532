package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/kanban-backend/internal/domain"
	"github.com/heartmarshall/kanban-backend/internal/service/card"
)

var _ cardService = &cardServiceMock{}

type cardServiceMock struct {
	CreateFunc         func(ctx context.Context, listID uuid.UUID, input card.CreateInput) (*domain.Card, error)
	GetFunc            func(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	UpdateFunc         func(ctx context.Context, id uuid.UUID, input card.UpdateInput) (*domain.Card, error)
	ArchiveFunc        func(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	RestoreFunc        func(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	DeleteFunc         func(ctx context.Context, id uuid.UUID) error
	MoveFunc           func(ctx context.Context, id uuid.UUID, input card.MoveInput) (*domain.Card, error)
	ReorderFunc        func(ctx context.Context, input card.ReorderInput) error
	AddAssigneeFunc    func(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*domain.Card, error)
	RemoveAssigneeFunc func(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*domain.Card, error)

	calls struct {
		Create []struct {
			Ctx    context.Context
			ListID uuid.UUID
			Input  card.CreateInput
		}
		Get []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Update []struct {
			Ctx   context.Context
			ID    uuid.UUID
			Input card.UpdateInput
		}
		Archive []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Restore []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Move []struct {
			Ctx   context.Context
			ID    uuid.UUID
			Input card.MoveInput
		}
		Reorder []struct {
			Ctx   context.Context
			Input card.ReorderInput
		}
		AddAssignee []struct {
			Ctx    context.Context
			ID     uuid.UUID
			UserID uuid.UUID
		}
		RemoveAssignee []struct {
			Ctx    context.Context
			ID     uuid.UUID
			UserID uuid.UUID
		}
	}
	lockCreate         sync.RWMutex
	lockGet            sync.RWMutex
	lockUpdate         sync.RWMutex
	lockArchive        sync.RWMutex
	lockRestore        sync.RWMutex
	lockDelete         sync.RWMutex
	lockMove           sync.RWMutex
	lockReorder        sync.RWMutex
	lockAddAssignee    sync.RWMutex
	lockRemoveAssignee sync.RWMutex
}

func (mock *cardServiceMock) Create(ctx context.Context, listID uuid.UUID, input card.CreateInput) (*domain.Card, error) {
	if mock.CreateFunc == nil {
		panic("cardServiceMock.CreateFunc: method is nil but cardService.Create was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ListID uuid.UUID
		Input  card.CreateInput
	}{Ctx: ctx, ListID: listID, Input: input}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, listID, input)
}

func (mock *cardServiceMock) CreateCalls() []struct {
	Ctx    context.Context
	ListID uuid.UUID
	Input  card.CreateInput
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *cardServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	if mock.GetFunc == nil {
		panic("cardServiceMock.GetFunc: method is nil but cardService.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *cardServiceMock) GetCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *cardServiceMock) Update(ctx context.Context, id uuid.UUID, input card.UpdateInput) (*domain.Card, error) {
	if mock.UpdateFunc == nil {
		panic("cardServiceMock.UpdateFunc: method is nil but cardService.Update was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		ID    uuid.UUID
		Input card.UpdateInput
	}{Ctx: ctx, ID: id, Input: input}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, id, input)
}

func (mock *cardServiceMock) UpdateCalls() []struct {
	Ctx   context.Context
	ID    uuid.UUID
	Input card.UpdateInput
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *cardServiceMock) Archive(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	if mock.ArchiveFunc == nil {
		panic("cardServiceMock.ArchiveFunc: method is nil but cardService.Archive was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockArchive.Lock()
	mock.calls.Archive = append(mock.calls.Archive, callInfo)
	mock.lockArchive.Unlock()
	return mock.ArchiveFunc(ctx, id)
}

func (mock *cardServiceMock) ArchiveCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockArchive.RLock()
	calls := mock.calls.Archive
	mock.lockArchive.RUnlock()
	return calls
}

func (mock *cardServiceMock) Restore(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	if mock.RestoreFunc == nil {
		panic("cardServiceMock.RestoreFunc: method is nil but cardService.Restore was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockRestore.Lock()
	mock.calls.Restore = append(mock.calls.Restore, callInfo)
	mock.lockRestore.Unlock()
	return mock.RestoreFunc(ctx, id)
}

func (mock *cardServiceMock) RestoreCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockRestore.RLock()
	calls := mock.calls.Restore
	mock.lockRestore.RUnlock()
	return calls
}

func (mock *cardServiceMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("cardServiceMock.DeleteFunc: method is nil but cardService.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *cardServiceMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *cardServiceMock) Move(ctx context.Context, id uuid.UUID, input card.MoveInput) (*domain.Card, error) {
	if mock.MoveFunc == nil {
		panic("cardServiceMock.MoveFunc: method is nil but cardService.Move was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		ID    uuid.UUID
		Input card.MoveInput
	}{Ctx: ctx, ID: id, Input: input}
	mock.lockMove.Lock()
	mock.calls.Move = append(mock.calls.Move, callInfo)
	mock.lockMove.Unlock()
	return mock.MoveFunc(ctx, id, input)
}

func (mock *cardServiceMock) MoveCalls() []struct {
	Ctx   context.Context
	ID    uuid.UUID
	Input card.MoveInput
} {
	mock.lockMove.RLock()
	calls := mock.calls.Move
	mock.lockMove.RUnlock()
	return calls
}

func (mock *cardServiceMock) Reorder(ctx context.Context, input card.ReorderInput) error {
	if mock.ReorderFunc == nil {
		panic("cardServiceMock.ReorderFunc: method is nil but cardService.Reorder was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input card.ReorderInput
	}{Ctx: ctx, Input: input}
	mock.lockReorder.Lock()
	mock.calls.Reorder = append(mock.calls.Reorder, callInfo)
	mock.lockReorder.Unlock()
	return mock.ReorderFunc(ctx, input)
}

func (mock *cardServiceMock) ReorderCalls() []struct {
	Ctx   context.Context
	Input card.ReorderInput
} {
	mock.lockReorder.RLock()
	calls := mock.calls.Reorder
	mock.lockReorder.RUnlock()
	return calls
}

func (mock *cardServiceMock) AddAssignee(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*domain.Card, error) {
	if mock.AddAssigneeFunc == nil {
		panic("cardServiceMock.AddAssigneeFunc: method is nil but cardService.AddAssignee was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ID     uuid.UUID
		UserID uuid.UUID
	}{Ctx: ctx, ID: id, UserID: userID}
	mock.lockAddAssignee.Lock()
	mock.calls.AddAssignee = append(mock.calls.AddAssignee, callInfo)
	mock.lockAddAssignee.Unlock()
	return mock.AddAssigneeFunc(ctx, id, userID)
}

func (mock *cardServiceMock) AddAssigneeCalls() []struct {
	Ctx    context.Context
	ID     uuid.UUID
	UserID uuid.UUID
} {
	mock.lockAddAssignee.RLock()
	calls := mock.calls.AddAssignee
	mock.lockAddAssignee.RUnlock()
	return calls
}

func (mock *cardServiceMock) RemoveAssignee(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*domain.Card, error) {
	if mock.RemoveAssigneeFunc == nil {
		panic("cardServiceMock.RemoveAssigneeFunc: method is nil but cardService.RemoveAssignee was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ID     uuid.UUID
		UserID uuid.UUID
	}{Ctx: ctx, ID: id, UserID: userID}
	mock.lockRemoveAssignee.Lock()
	mock.calls.RemoveAssignee = append(mock.calls.RemoveAssignee, callInfo)
	mock.lockRemoveAssignee.Unlock()
	return mock.RemoveAssigneeFunc(ctx, id, userID)
}

func (mock *cardServiceMock) RemoveAssigneeCalls() []struct {
	Ctx    context.Context
	ID     uuid.UUID
	UserID uuid.UUID
} {
	mock.lockRemoveAssignee.RLock()
	calls := mock.calls.RemoveAssignee
	mock.lockRemoveAssignee.RUnlock()
	return calls
}
