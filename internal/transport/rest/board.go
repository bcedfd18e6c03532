package rest

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/kanban-backend/internal/domain"
	"github.com/heartmarshall/kanban-backend/internal/service/board"
)

// boardService defines the board operations needed by BoardHandler.
type boardService interface {
	Create(ctx context.Context, input board.CreateInput) (*domain.BoardDetail, error)
	List(ctx context.Context) ([]domain.BoardSummary, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.BoardDetail, error)
	Update(ctx context.Context, id uuid.UUID, input board.UpdateInput) (*domain.BoardDetail, error)
	Archive(ctx context.Context, id uuid.UUID) (*domain.BoardDetail, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddMember(ctx context.Context, boardID uuid.UUID, input board.AddMemberInput) (*domain.BoardDetail, error)
	RemoveMember(ctx context.Context, boardID, memberID uuid.UUID) (*domain.BoardDetail, error)
}

// BoardHandler serves the /boards endpoints.
type BoardHandler struct {
	svc boardService
	re  *Responder
}

// NewBoardHandler creates a BoardHandler.
func NewBoardHandler(svc boardService, re *Responder) *BoardHandler {
	return &BoardHandler{svc: svc, re: re}
}

type createBoardRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Background  *string `json:"background"`
}

type updateBoardRequest struct {
	Name        *string          `json:"name"`
	Description Nullable[string] `json:"description"`
	Background  *string          `json:"background"`
}

type addMemberRequest struct {
	Email string `json:"email"`
}

// Create handles POST /api/boards.
func (h *BoardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBoardRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	b, err := h.svc.Create(r.Context(), board.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		Background:  req.Background,
	})
	if err != nil {
		h.re.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toBoardDetailResponse(b))
}

// List handles GET /api/boards.
func (h *BoardHandler) List(w http.ResponseWriter, r *http.Request) {
	boards, err := h.svc.List(r.Context())
	if err != nil {
		h.re.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toBoardSummaryResponses(boards))
}

// Get handles GET /api/boards/{id}.
func (h *BoardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	b, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.re.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toBoardDetailResponse(b))
}

// Update handles PUT /api/boards/{id}.
func (h *BoardHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req updateBoardRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	b, err := h.svc.Update(r.Context(), id, board.UpdateInput{
		Name:             req.Name,
		Description:      req.Description.Value,
		ClearDescription: req.Description.Cleared(),
		Background:       req.Background,
	})
	if err != nil {
		h.re.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toBoardDetailResponse(b))
}

// Archive handles POST /api/boards/{id}/archive.
func (h *BoardHandler) Archive(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	b, err := h.svc.Archive(r.Context(), id)
	if err != nil {
		h.re.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toBoardDetailResponse(b))
}

// Delete handles DELETE /api/boards/{id}.
func (h *BoardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.re.Error(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "board deleted")
}

// AddMember handles POST /api/boards/{id}/members.
func (h *BoardHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req addMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	b, err := h.svc.AddMember(r.Context(), id, board.AddMemberInput{Email: req.Email})
	if err != nil {
		h.re.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toBoardDetailResponse(b))
}

// RemoveMember handles DELETE /api/boards/{id}/members/{memberId}.
func (h *BoardHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	memberID, ok := pathID(w, r, "memberId")
	if !ok {
		return
	}

	b, err := h.svc.RemoveMember(r.Context(), id, memberID)
	if err != nil {
		h.re.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toBoardDetailResponse(b))
}
