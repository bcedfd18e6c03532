package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/kanban-backend/internal/domain"
	"github.com/heartmarshall/kanban-backend/internal/service/list"
)

var _ listService = &listServiceMock{}

type listServiceMock struct {
	CreateFunc  func(ctx context.Context, boardID uuid.UUID, input list.CreateInput) (*domain.List, error)
	ListFunc    func(ctx context.Context, boardID uuid.UUID) ([]domain.List, error)
	UpdateFunc  func(ctx context.Context, boardID uuid.UUID, id uuid.UUID, input list.UpdateInput) (*domain.List, error)
	ArchiveFunc func(ctx context.Context, boardID uuid.UUID, id uuid.UUID) (*domain.List, error)
	RestoreFunc func(ctx context.Context, boardID uuid.UUID, id uuid.UUID) (*domain.List, error)
	DeleteFunc  func(ctx context.Context, boardID uuid.UUID, id uuid.UUID) error
	MoveFunc    func(ctx context.Context, boardID uuid.UUID, id uuid.UUID, input list.MoveInput) (*domain.List, error)
	ReorderFunc func(ctx context.Context, boardID uuid.UUID, input list.ReorderInput) ([]domain.List, error)

	calls struct {
		Create []struct {
			Ctx     context.Context
			BoardID uuid.UUID
			Input   list.CreateInput
		}
		List []struct {
			Ctx     context.Context
			BoardID uuid.UUID
		}
		Update []struct {
			Ctx     context.Context
			BoardID uuid.UUID
			ID      uuid.UUID
			Input   list.UpdateInput
		}
		Archive []struct {
			Ctx     context.Context
			BoardID uuid.UUID
			ID      uuid.UUID
		}
		Restore []struct {
			Ctx     context.Context
			BoardID uuid.UUID
			ID      uuid.UUID
		}
		Delete []struct {
			Ctx     context.Context
			BoardID uuid.UUID
			ID      uuid.UUID
		}
		Move []struct {
			Ctx     context.Context
			BoardID uuid.UUID
			ID      uuid.UUID
			Input   list.MoveInput
		}
		Reorder []struct {
			Ctx     context.Context
			BoardID uuid.UUID
			Input   list.ReorderInput
		}
	}
	lockCreate  sync.RWMutex
	lockList    sync.RWMutex
	lockUpdate  sync.RWMutex
	lockArchive sync.RWMutex
	lockRestore sync.RWMutex
	lockDelete  sync.RWMutex
	lockMove    sync.RWMutex
	lockReorder sync.RWMutex
}

func (mock *listServiceMock) Create(ctx context.Context, boardID uuid.UUID, input list.CreateInput) (*domain.List, error) {
	if mock.CreateFunc == nil {
		panic("listServiceMock.CreateFunc: method is nil but listService.Create was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		BoardID uuid.UUID
		Input   list.CreateInput
	}{Ctx: ctx, BoardID: boardID, Input: input}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, boardID, input)
}

func (mock *listServiceMock) CreateCalls() []struct {
	Ctx     context.Context
	BoardID uuid.UUID
	Input   list.CreateInput
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *listServiceMock) List(ctx context.Context, boardID uuid.UUID) ([]domain.List, error) {
	if mock.ListFunc == nil {
		panic("listServiceMock.ListFunc: method is nil but listService.List was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		BoardID uuid.UUID
	}{Ctx: ctx, BoardID: boardID}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, boardID)
}

func (mock *listServiceMock) ListCalls() []struct {
	Ctx     context.Context
	BoardID uuid.UUID
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *listServiceMock) Update(ctx context.Context, boardID uuid.UUID, id uuid.UUID, input list.UpdateInput) (*domain.List, error) {
	if mock.UpdateFunc == nil {
		panic("listServiceMock.UpdateFunc: method is nil but listService.Update was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		BoardID uuid.UUID
		ID      uuid.UUID
		Input   list.UpdateInput
	}{Ctx: ctx, BoardID: boardID, ID: id, Input: input}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, boardID, id, input)
}

func (mock *listServiceMock) UpdateCalls() []struct {
	Ctx     context.Context
	BoardID uuid.UUID
	ID      uuid.UUID
	Input   list.UpdateInput
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *listServiceMock) Archive(ctx context.Context, boardID uuid.UUID, id uuid.UUID) (*domain.List, error) {
	if mock.ArchiveFunc == nil {
		panic("listServiceMock.ArchiveFunc: method is nil but listService.Archive was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		BoardID uuid.UUID
		ID      uuid.UUID
	}{Ctx: ctx, BoardID: boardID, ID: id}
	mock.lockArchive.Lock()
	mock.calls.Archive = append(mock.calls.Archive, callInfo)
	mock.lockArchive.Unlock()
	return mock.ArchiveFunc(ctx, boardID, id)
}

func (mock *listServiceMock) ArchiveCalls() []struct {
	Ctx     context.Context
	BoardID uuid.UUID
	ID      uuid.UUID
} {
	mock.lockArchive.RLock()
	calls := mock.calls.Archive
	mock.lockArchive.RUnlock()
	return calls
}

func (mock *listServiceMock) Restore(ctx context.Context, boardID uuid.UUID, id uuid.UUID) (*domain.List, error) {
	if mock.RestoreFunc == nil {
		panic("listServiceMock.RestoreFunc: method is nil but listService.Restore was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		BoardID uuid.UUID
		ID      uuid.UUID
	}{Ctx: ctx, BoardID: boardID, ID: id}
	mock.lockRestore.Lock()
	mock.calls.Restore = append(mock.calls.Restore, callInfo)
	mock.lockRestore.Unlock()
	return mock.RestoreFunc(ctx, boardID, id)
}

func (mock *listServiceMock) RestoreCalls() []struct {
	Ctx     context.Context
	BoardID uuid.UUID
	ID      uuid.UUID
} {
	mock.lockRestore.RLock()
	calls := mock.calls.Restore
	mock.lockRestore.RUnlock()
	return calls
}

func (mock *listServiceMock) Delete(ctx context.Context, boardID uuid.UUID, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("listServiceMock.DeleteFunc: method is nil but listService.Delete was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		BoardID uuid.UUID
		ID      uuid.UUID
	}{Ctx: ctx, BoardID: boardID, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, boardID, id)
}

func (mock *listServiceMock) DeleteCalls() []struct {
	Ctx     context.Context
	BoardID uuid.UUID
	ID      uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *listServiceMock) Move(ctx context.Context, boardID uuid.UUID, id uuid.UUID, input list.MoveInput) (*domain.List, error) {
	if mock.MoveFunc == nil {
		panic("listServiceMock.MoveFunc: method is nil but listService.Move was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		BoardID uuid.UUID
		ID      uuid.UUID
		Input   list.MoveInput
	}{Ctx: ctx, BoardID: boardID, ID: id, Input: input}
	mock.lockMove.Lock()
	mock.calls.Move = append(mock.calls.Move, callInfo)
	mock.lockMove.Unlock()
	return mock.MoveFunc(ctx, boardID, id, input)
}

func (mock *listServiceMock) MoveCalls() []struct {
	Ctx     context.Context
	BoardID uuid.UUID
	ID      uuid.UUID
	Input   list.MoveInput
} {
	mock.lockMove.RLock()
	calls := mock.calls.Move
	mock.lockMove.RUnlock()
	return calls
}

func (mock *listServiceMock) Reorder(ctx context.Context, boardID uuid.UUID, input list.ReorderInput) ([]domain.List, error) {
	if mock.ReorderFunc == nil {
		panic("listServiceMock.ReorderFunc: method is nil but listService.Reorder was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		BoardID uuid.UUID
		Input   list.ReorderInput
	}{Ctx: ctx, BoardID: boardID, Input: input}
	mock.lockReorder.Lock()
	mock.calls.Reorder = append(mock.calls.Reorder, callInfo)
	mock.lockReorder.Unlock()
	return mock.ReorderFunc(ctx, boardID, input)
}

func (mock *listServiceMock) ReorderCalls() []struct {
	Ctx     context.Context
	BoardID uuid.UUID
	Input   list.ReorderInput
} {
	mock.lockReorder.RLock()
	calls := mock.calls.Reorder
	mock.lockReorder.RUnlock()
	return calls
}
