package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/kanban-backend/internal/domain"
	"github.com/heartmarshall/kanban-backend/internal/service/card"
)

// cardService defines the card operations needed by CardHandler.
type cardService interface {
	Create(ctx context.Context, listID uuid.UUID, input card.CreateInput) (*domain.Card, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	Update(ctx context.Context, id uuid.UUID, input card.UpdateInput) (*domain.Card, error)
	Archive(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	Restore(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Move(ctx context.Context, id uuid.UUID, input card.MoveInput) (*domain.Card, error)
	Reorder(ctx context.Context, input card.ReorderInput) error
	AddAssignee(ctx context.Context, id, userID uuid.UUID) (*domain.Card, error)
	RemoveAssignee(ctx context.Context, id, userID uuid.UUID) (*domain.Card, error)
}

// CardHandler serves the card endpoints.
type CardHandler struct {
	svc cardService
	re  *Responder
}

// NewCardHandler creates a CardHandler.
func NewCardHandler(svc cardService, re *Responder) *CardHandler {
	return &CardHandler{svc: svc, re: re}
}

type createCardRequest struct {
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	Labels      []domain.Label `json:"labels"`
	DueDate     *time.Time     `json:"dueDate"`
}

type updateCardRequest struct {
	Title       *string             `json:"title"`
	Description Nullable[string]    `json:"description"`
	Labels      *[]domain.Label     `json:"labels"`
	DueDate     Nullable[time.Time] `json:"dueDate"`
}

type moveCardRequest struct {
	ListID   uuid.UUID `json:"listId"`
	Position *int      `json:"position"`
}

type reorderCardsRequest struct {
	Cards []struct {
		ID       uuid.UUID `json:"id"`
		ListID   uuid.UUID `json:"listId"`
		Position int       `json:"position"`
	} `json:"cards"`
}

type assigneeRequest struct {
	UserID uuid.UUID `json:"userId"`
}

// Create handles POST /api/lists/{listId}/cards.
func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(w, r, "listId")
	if !ok {
		return
	}
	var req createCardRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.svc.Create(r.Context(), listID, card.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Labels:      req.Labels,
		DueDate:     req.DueDate,
	})
	if err != nil {
		h.re.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCardResponse(c))
}

// Get handles GET /api/cards/{id}.
func (h *CardHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.withCard(w, r, http.StatusOK, h.svc.Get)
}

// Update handles PUT /api/cards/{id}.
func (h *CardHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req updateCardRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.svc.Update(r.Context(), id, card.UpdateInput{
		Title:            req.Title,
		Description:      req.Description.Value,
		ClearDescription: req.Description.Cleared(),
		Labels:           req.Labels,
		DueDate:          req.DueDate.Value,
		ClearDueDate:     req.DueDate.Cleared(),
	})
	if err != nil {
		h.re.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCardResponse(c))
}

// Archive handles POST /api/cards/{id}/archive.
func (h *CardHandler) Archive(w http.ResponseWriter, r *http.Request) {
	h.withCard(w, r, http.StatusOK, h.svc.Archive)
}

// Restore handles POST /api/cards/{id}/restore.
func (h *CardHandler) Restore(w http.ResponseWriter, r *http.Request) {
	h.withCard(w, r, http.StatusOK, h.svc.Restore)
}

// Delete handles DELETE /api/cards/{id}.
func (h *CardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.re.Error(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "card deleted")
}

// Move handles PUT /api/cards/{id}/move.
func (h *CardHandler) Move(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req moveCardRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Position == nil {
		h.re.Error(w, r, domain.NewValidationError("position", "required"))
		return
	}

	c, err := h.svc.Move(r.Context(), id, card.MoveInput{ListID: req.ListID, Position: *req.Position})
	if err != nil {
		h.re.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCardResponse(c))
}

// Reorder handles PUT /api/cards/reorder.
func (h *CardHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req reorderCardsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	items := make([]card.ReorderItem, len(req.Cards))
	for i, it := range req.Cards {
		items[i] = card.ReorderItem{ID: it.ID, ListID: it.ListID, Position: it.Position}
	}

	if err := h.svc.Reorder(r.Context(), card.ReorderInput{Items: items}); err != nil {
		h.re.Error(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "cards reordered")
}

// AddAssignee handles POST /api/cards/{id}/assignees.
func (h *CardHandler) AddAssignee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req assigneeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.svc.AddAssignee(r.Context(), id, req.UserID)
	if err != nil {
		h.re.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCardResponse(c))
}

// RemoveAssignee handles DELETE /api/cards/{id}/assignees/{userId}.
func (h *CardHandler) RemoveAssignee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	c, err := h.svc.RemoveAssignee(r.Context(), id, userID)
	if err != nil {
		h.re.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCardResponse(c))
}

func (h *CardHandler) withCard(
	w http.ResponseWriter, r *http.Request, status int,
	op func(context.Context, uuid.UUID) (*domain.Card, error),
) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	c, err := op(r.Context(), id)
	if err != nil {
		h.re.Error(w, r, err)
		return
	}

	writeJSON(w, status, toCardResponse(c))
}
