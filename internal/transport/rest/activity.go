package rest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/kanban-backend/internal/domain"
	"github.com/heartmarshall/kanban-backend/internal/service/activity"
)

// activityService defines the activity feed operation needed by ActivityHandler.
type activityService interface {
	List(ctx context.Context, boardID uuid.UUID, input activity.ListInput) (*activity.Page, error)
}

// ActivityHandler serves the board activity feed.
type ActivityHandler struct {
	svc activityService
	re  *Responder
}

// NewActivityHandler creates an ActivityHandler.
func NewActivityHandler(svc activityService, re *Responder) *ActivityHandler {
	return &ActivityHandler{svc: svc, re: re}
}

// List handles GET /api/boards/{boardId}/activities?limit=&offset=.
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	boardID, ok := pathID(w, r, "boardId")
	if !ok {
		return
	}

	var input activity.ListInput
	var errs []domain.FieldError
	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "limit", Message: "must be an integer"})
		}
		input.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "offset", Message: "must be an integer"})
		}
		input.Offset = n
	}
	if len(errs) > 0 {
		h.re.Error(w, r, domain.NewValidationErrors(errs))
		return
	}

	page, err := h.svc.List(r.Context(), boardID, input)
	if err != nil {
		h.re.Error(w, r, err)
		return
	}

	resp := activityPageResponse{
		Activities: make([]activityResponse, len(page.Activities)),
		Pagination: paginationResponse{Total: page.Total, Limit: page.Limit, Offset: page.Offset},
	}
	for i := range page.Activities {
		resp.Activities[i] = toActivityResponse(&page.Activities[i])
	}

	writeJSON(w, http.StatusOK, resp)
}
