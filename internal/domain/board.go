package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultBoardBackground is the color token applied when a board is created without one.
const DefaultBoardBackground = "#0079bf"

// Board is a kanban board owned by exactly one user.
type Board struct {
	ID          uuid.UUID
	Name        string
	Description *string
	Background  string
	IsArchived  bool
	OwnerID     uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BoardCounts holds the number of lists and cards attached to a board.
type BoardCounts struct {
	Lists int
	Cards int
}

// BoardSummary is a board as it appears in a user's board listing.
type BoardSummary struct {
	Board
	Owner   User
	Members []User
	Counts  BoardCounts
}

// BoardDetail is a board with its active lists, each with its active cards.
type BoardDetail struct {
	Board
	Owner   User
	Members []User
	Lists   []List
}

// BoardUpdate carries optional board changes. Nil fields are left untouched.
type BoardUpdate struct {
	Name        *string
	Description *string
	// ClearDescription sets the description to NULL.
	ClearDescription bool
	Background       *string
}

// IsEmpty reports whether the update changes nothing.
func (u BoardUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && !u.ClearDescription && u.Background == nil
}
