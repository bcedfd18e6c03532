package rest

import (
	"net/http"

	"github.com/heartmarshall/kanban-backend/internal/transport/middleware"
)

// Handlers groups every handler mounted by NewRouter.
type Handlers struct {
	Health   *HealthHandler
	Auth     *AuthHandler
	Board    *BoardHandler
	List     *ListHandler
	Card     *CardHandler
	Activity *ActivityHandler
}

// NewRouter mounts the API under /api. authLimit wraps the anonymous
// register and login routes; every other /api route requires an
// authenticated user placed in the context by middleware.Auth.
func NewRouter(h Handlers, authLimit middleware.Middleware) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)

	public := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, authLimit(fn))
	}
	private := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, middleware.RequireAuth(fn))
	}

	public("POST /api/auth/register", h.Auth.Register)
	public("POST /api/auth/login", h.Auth.Login)
	private("GET /api/auth/profile", h.Auth.Profile)
	private("PUT /api/auth/profile", h.Auth.UpdateProfile)
	private("PUT /api/auth/password", h.Auth.ChangePassword)

	private("POST /api/boards", h.Board.Create)
	private("GET /api/boards", h.Board.List)
	private("GET /api/boards/{id}", h.Board.Get)
	private("PUT /api/boards/{id}", h.Board.Update)
	private("DELETE /api/boards/{id}", h.Board.Delete)
	private("POST /api/boards/{id}/archive", h.Board.Archive)
	private("POST /api/boards/{id}/members", h.Board.AddMember)
	private("DELETE /api/boards/{id}/members/{memberId}", h.Board.RemoveMember)

	private("POST /api/boards/{boardId}/lists", h.List.Create)
	private("GET /api/boards/{boardId}/lists", h.List.List)
	private("PUT /api/boards/{boardId}/lists/reorder", h.List.Reorder)
	private("PUT /api/boards/{boardId}/lists/{id}", h.List.Update)
	private("DELETE /api/boards/{boardId}/lists/{id}", h.List.Delete)
	private("POST /api/boards/{boardId}/lists/{id}/archive", h.List.Archive)
	private("POST /api/boards/{boardId}/lists/{id}/restore", h.List.Restore)
	private("PUT /api/boards/{boardId}/lists/{id}/move", h.List.Move)

	private("GET /api/boards/{boardId}/activities", h.Activity.List)

	private("POST /api/lists/{listId}/cards", h.Card.Create)
	private("PUT /api/cards/reorder", h.Card.Reorder)
	private("GET /api/cards/{id}", h.Card.Get)
	private("PUT /api/cards/{id}", h.Card.Update)
	private("DELETE /api/cards/{id}", h.Card.Delete)
	private("POST /api/cards/{id}/archive", h.Card.Archive)
	private("POST /api/cards/{id}/restore", h.Card.Restore)
	private("PUT /api/cards/{id}/move", h.Card.Move)
	private("POST /api/cards/{id}/assignees", h.Card.AddAssignee)
	private("DELETE /api/cards/{id}/assignees/{userId}", h.Card.RemoveAssignee)

	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})

	return mux
}
