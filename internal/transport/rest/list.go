package rest

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/kanban-backend/internal/domain"
	"github.com/heartmarshall/kanban-backend/internal/service/list"
)

// listService defines the list operations needed by ListHandler.
type listService interface {
	Create(ctx context.Context, boardID uuid.UUID, input list.CreateInput) (*domain.List, error)
	List(ctx context.Context, boardID uuid.UUID) ([]domain.List, error)
	Update(ctx context.Context, boardID, id uuid.UUID, input list.UpdateInput) (*domain.List, error)
	Archive(ctx context.Context, boardID, id uuid.UUID) (*domain.List, error)
	Restore(ctx context.Context, boardID, id uuid.UUID) (*domain.List, error)
	Delete(ctx context.Context, boardID, id uuid.UUID) error
	Move(ctx context.Context, boardID, id uuid.UUID, input list.MoveInput) (*domain.List, error)
	Reorder(ctx context.Context, boardID uuid.UUID, input list.ReorderInput) ([]domain.List, error)
}

// ListHandler serves the /boards/{boardId}/lists endpoints.
type ListHandler struct {
	svc listService
	re  *Responder
}

// NewListHandler creates a ListHandler.
func NewListHandler(svc listService, re *Responder) *ListHandler {
	return &ListHandler{svc: svc, re: re}
}

type listTitleRequest struct {
	Title string `json:"title"`
}

type positionRequest struct {
	Position *int `json:"position"`
}

type reorderListsRequest struct {
	Lists []struct {
		ID       uuid.UUID `json:"id"`
		Position int       `json:"position"`
	} `json:"lists"`
}

// Create handles POST /api/boards/{boardId}/lists.
func (h *ListHandler) Create(w http.ResponseWriter, r *http.Request) {
	boardID, ok := pathID(w, r, "boardId")
	if !ok {
		return
	}
	var req listTitleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	l, err := h.svc.Create(r.Context(), boardID, list.CreateInput{Title: req.Title})
	if err != nil {
		h.re.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toListResponse(l))
}

// List handles GET /api/boards/{boardId}/lists.
func (h *ListHandler) List(w http.ResponseWriter, r *http.Request) {
	boardID, ok := pathID(w, r, "boardId")
	if !ok {
		return
	}

	lists, err := h.svc.List(r.Context(), boardID)
	if err != nil {
		h.re.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toListResponses(lists))
}

// Update handles PUT /api/boards/{boardId}/lists/{id}.
func (h *ListHandler) Update(w http.ResponseWriter, r *http.Request) {
	boardID, id, ok := listPath(w, r)
	if !ok {
		return
	}
	var req listTitleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	l, err := h.svc.Update(r.Context(), boardID, id, list.UpdateInput{Title: req.Title})
	if err != nil {
		h.re.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toListResponse(l))
}

// Archive handles POST /api/boards/{boardId}/lists/{id}/archive.
func (h *ListHandler) Archive(w http.ResponseWriter, r *http.Request) {
	boardID, id, ok := listPath(w, r)
	if !ok {
		return
	}

	l, err := h.svc.Archive(r.Context(), boardID, id)
	if err != nil {
		h.re.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toListResponse(l))
}

// Restore handles POST /api/boards/{boardId}/lists/{id}/restore.
func (h *ListHandler) Restore(w http.ResponseWriter, r *http.Request) {
	boardID, id, ok := listPath(w, r)
	if !ok {
		return
	}

	l, err := h.svc.Restore(r.Context(), boardID, id)
	if err != nil {
		h.re.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toListResponse(l))
}

// Delete handles DELETE /api/boards/{boardId}/lists/{id}.
func (h *ListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	boardID, id, ok := listPath(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), boardID, id); err != nil {
		h.re.Error(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "list deleted")
}

// Move handles PUT /api/boards/{boardId}/lists/{id}/move.
func (h *ListHandler) Move(w http.ResponseWriter, r *http.Request) {
	boardID, id, ok := listPath(w, r)
	if !ok {
		return
	}
	var req positionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Position == nil {
		h.re.Error(w, r, domain.NewValidationError("position", "required"))
		return
	}

	l, err := h.svc.Move(r.Context(), boardID, id, list.MoveInput{Position: *req.Position})
	if err != nil {
		h.re.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toListResponse(l))
}

// Reorder handles PUT /api/boards/{boardId}/lists/reorder.
func (h *ListHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	boardID, ok := pathID(w, r, "boardId")
	if !ok {
		return
	}
	var req reorderListsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	items := make([]domain.ReorderItem, len(req.Lists))
	for i, it := range req.Lists {
		items[i] = domain.ReorderItem{ID: it.ID, Position: it.Position}
	}

	lists, err := h.svc.Reorder(r.Context(), boardID, list.ReorderInput{Items: items})
	if err != nil {
		h.re.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toListResponses(lists))
}

func listPath(w http.ResponseWriter, r *http.Request) (boardID, id uuid.UUID, ok bool) {
	if boardID, ok = pathID(w, r, "boardId"); !ok {
		return
	}
	id, ok = pathID(w, r, "id")
	return
}
