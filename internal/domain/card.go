package domain

import (
	"time"

	"github.com/google/uuid"
)

// Label is a freeform tag embedded in a card.
type Label struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Card is an item in a list. BoardID mirrors the board of the card's list.
type Card struct {
	ID          uuid.UUID
	ListID      uuid.UUID
	BoardID     uuid.UUID
	Title       string
	Description *string
	Position    int
	Labels      []Label
	DueDate     *time.Time
	IsArchived  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Assignees []User
	// List is populated only by single-card fetches.
	List *List
}

// CardUpdate carries optional card changes. Nil fields are left untouched.
type CardUpdate struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Labels           *[]Label
	DueDate          *time.Time
	ClearDueDate     bool
}

// IsEmpty reports whether the update changes nothing.
func (u CardUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && !u.ClearDescription &&
		u.Labels == nil && u.DueDate == nil && !u.ClearDueDate
}
