package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/kanban-backend/internal/domain"
)

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
}

type profileResponse struct {
	userResponse
	OwnedBoards  int `json:"ownedBoards"`
	MemberBoards int `json:"memberBoards"`
}

type countsResponse struct {
	Lists int `json:"lists"`
	Cards int `json:"cards"`
}

type boardResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Background  string          `json:"background"`
	IsArchived  bool            `json:"isArchived"`
	OwnerID     uuid.UUID       `json:"ownerId"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Owner       userResponse    `json:"owner"`
	Members     []userResponse  `json:"members"`
	Counts      *countsResponse `json:"counts,omitempty"`
}

// boardDetailResponse always carries lists, even when the board has none.
type boardDetailResponse struct {
	boardResponse
	Lists []listResponse `json:"lists"`
}

type listResponse struct {
	ID         uuid.UUID       `json:"id"`
	BoardID    uuid.UUID       `json:"boardId"`
	Title      string          `json:"title"`
	Position   int             `json:"position"`
	IsArchived bool            `json:"isArchived"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	Cards      *[]cardResponse `json:"cards,omitempty"`
}

type listRefResponse struct {
	ID      uuid.UUID `json:"id"`
	BoardID uuid.UUID `json:"boardId"`
	Title   string    `json:"title"`
}

type cardResponse struct {
	ID          uuid.UUID        `json:"id"`
	ListID      uuid.UUID        `json:"listId"`
	BoardID     uuid.UUID        `json:"boardId"`
	Title       string           `json:"title"`
	Description *string          `json:"description"`
	Position    int              `json:"position"`
	Labels      []domain.Label   `json:"labels"`
	DueDate     *time.Time       `json:"dueDate"`
	IsArchived  bool             `json:"isArchived"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	Assignees   []userResponse   `json:"assignees"`
	List        *listRefResponse `json:"list,omitempty"`
}

type activityResponse struct {
	ID        uuid.UUID      `json:"id"`
	Type      string         `json:"type"`
	Payload   map[string]any `json:"payload"`
	UserID    uuid.UUID      `json:"userId"`
	BoardID   uuid.UUID      `json:"boardId"`
	CreatedAt time.Time      `json:"createdAt"`
	User      *userResponse  `json:"user,omitempty"`
}

type paginationResponse struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type activityPageResponse struct {
	Activities []activityResponse `json:"activities"`
	Pagination paginationResponse `json:"pagination"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Avatar:    u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}

func toUserResponses(users []domain.User) []userResponse {
	out := make([]userResponse, len(users))
	for i := range users {
		out[i] = toUserResponse(&users[i])
	}
	return out
}

func toBoardBase(b *domain.Board, owner *domain.User, members []domain.User) boardResponse {
	return boardResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Background:  b.Background,
		IsArchived:  b.IsArchived,
		OwnerID:     b.OwnerID,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
		Owner:       toUserResponse(owner),
		Members:     toUserResponses(members),
	}
}

func toBoardDetailResponse(d *domain.BoardDetail) boardDetailResponse {
	return boardDetailResponse{
		boardResponse: toBoardBase(&d.Board, &d.Owner, d.Members),
		Lists:         toListResponses(d.Lists),
	}
}

func toBoardSummaryResponses(boards []domain.BoardSummary) []boardResponse {
	out := make([]boardResponse, len(boards))
	for i := range boards {
		b := &boards[i]
		out[i] = toBoardBase(&b.Board, &b.Owner, b.Members)
		out[i].Counts = &countsResponse{Lists: b.Counts.Lists, Cards: b.Counts.Cards}
	}
	return out
}

func toListResponse(l *domain.List) listResponse {
	resp := listResponse{
		ID:         l.ID,
		BoardID:    l.BoardID,
		Title:      l.Title,
		Position:   l.Position,
		IsArchived: l.IsArchived,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
	if l.Cards != nil {
		cards := toCardResponses(l.Cards)
		resp.Cards = &cards
	}
	return resp
}

func toListResponses(lists []domain.List) []listResponse {
	out := make([]listResponse, len(lists))
	for i := range lists {
		out[i] = toListResponse(&lists[i])
	}
	return out
}

func toCardResponse(c *domain.Card) cardResponse {
	resp := cardResponse{
		ID:          c.ID,
		ListID:      c.ListID,
		BoardID:     c.BoardID,
		Title:       c.Title,
		Description: c.Description,
		Position:    c.Position,
		Labels:      c.Labels,
		DueDate:     c.DueDate,
		IsArchived:  c.IsArchived,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		Assignees:   toUserResponses(c.Assignees),
	}
	if resp.Labels == nil {
		resp.Labels = []domain.Label{}
	}
	if c.List != nil {
		resp.List = &listRefResponse{ID: c.List.ID, BoardID: c.List.BoardID, Title: c.List.Title}
	}
	return resp
}

func toCardResponses(cards []domain.Card) []cardResponse {
	out := make([]cardResponse, len(cards))
	for i := range cards {
		out[i] = toCardResponse(&cards[i])
	}
	return out
}

func toActivityResponse(a *domain.Activity) activityResponse {
	resp := activityResponse{
		ID:        a.ID,
		Type:      a.Type.String(),
		Payload:   a.Payload,
		UserID:    a.UserID,
		BoardID:   a.BoardID,
		CreatedAt: a.CreatedAt,
	}
	if a.User != nil {
		u := toUserResponse(a.User)
		resp.User = &u
	}
	return resp
}
