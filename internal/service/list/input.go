package list

import (
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/kanban-backend/internal/domain"
	"github.com/heartmarshall/kanban-backend/internal/position"
)

const maxTitleLen = 200

// CreateInput holds parameters for the create list operation.
type CreateInput struct {
	Title string
}

// Validate validates the create list input.
func (i CreateInput) Validate() error {
	return checkTitle(i.Title)
}

// UpdateInput holds parameters for the update list operation.
type UpdateInput struct {
	Title string
}

// Validate validates the update list input.
func (i UpdateInput) Validate() error {
	return checkTitle(i.Title)
}

// MoveInput holds the target position of a single-list move.
type MoveInput struct {
	Position int
}

// Validate validates the move input.
func (i MoveInput) Validate() error {
	if i.Position < 0 {
		return domain.NewValidationError("position", "must be a non-negative integer")
	}
	return nil
}

// ReorderInput holds the complete new layout of a board's lists.
type ReorderInput struct {
	Items []domain.ReorderItem
}

// Validate validates the reorder input.
func (i ReorderInput) Validate() error {
	ids := make([]uuid.UUID, len(i.Items))
	positions := make([]int, len(i.Items))
	for n, it := range i.Items {
		ids[n] = it.ID
		positions[n] = it.Position
	}
	return position.CheckItems(ids, positions)
}

func checkTitle(title string) error {
	switch n := utf8.RuneCountInString(title); {
	case n == 0:
		return domain.NewValidationError("title", "required")
	case n > maxTitleLen:
		return domain.NewValidationError("title", "too long")
	}
	return nil
}
