package card

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/kanban-backend/internal/domain"
	"github.com/heartmarshall/kanban-backend/internal/position"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 5000
	maxLabels         = 20
	maxLabelNameLen   = 50
)

// CreateInput holds parameters for the create card operation.
type CreateInput struct {
	Title       string
	Description *string
	Labels      []domain.Label
	DueDate     *time.Time
}

// Validate validates the create card input.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError
	errs = checkTitle(errs, i.Title)
	errs = checkDescription(errs, i.Description)
	errs = checkLabels(errs, i.Labels)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput carries optional card changes. Nil fields are left untouched.
type UpdateInput struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Labels           *[]domain.Label
	DueDate          *time.Time
	ClearDueDate     bool
}

// Validate validates the update card input.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError
	if i.Title != nil {
		errs = checkTitle(errs, *i.Title)
	}
	errs = checkDescription(errs, i.Description)
	if i.Labels != nil {
		errs = checkLabels(errs, *i.Labels)
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i UpdateInput) toUpdate() domain.CardUpdate {
	return domain.CardUpdate{
		Title:            i.Title,
		Description:      i.Description,
		ClearDescription: i.ClearDescription,
		Labels:           i.Labels,
		DueDate:          i.DueDate,
		ClearDueDate:     i.ClearDueDate,
	}
}

// MoveInput holds the destination of a single-card move.
type MoveInput struct {
	ListID   uuid.UUID
	Position int
}

// Validate validates the move input.
func (i MoveInput) Validate() error {
	var errs []domain.FieldError
	if i.ListID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "listId", Message: "required"})
	}
	if i.Position < 0 {
		errs = append(errs, domain.FieldError{Field: "position", Message: "must be a non-negative integer"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ReorderItem is the final location of one card in a bulk reorder.
type ReorderItem struct {
	ID       uuid.UUID
	ListID   uuid.UUID
	Position int
}

// ReorderInput holds the new layout of every card being reordered.
type ReorderInput struct {
	Items []ReorderItem
}

// Validate validates the reorder input.
func (i ReorderInput) Validate() error {
	ids := make([]uuid.UUID, len(i.Items))
	positions := make([]int, len(i.Items))
	for n, it := range i.Items {
		if it.ListID == uuid.Nil {
			return domain.NewValidationError(fmt.Sprintf("items[%d].listId", n), "required")
		}
		ids[n] = it.ID
		positions[n] = it.Position
	}
	return position.CheckItems(ids, positions)
}

func checkTitle(errs []domain.FieldError, title string) []domain.FieldError {
	switch n := utf8.RuneCountInString(title); {
	case n == 0:
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	case n > maxTitleLen:
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long"})
	}
	return errs
}

func checkDescription(errs []domain.FieldError, desc *string) []domain.FieldError {
	if desc != nil && utf8.RuneCountInString(*desc) > maxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long"})
	}
	return errs
}

func checkLabels(errs []domain.FieldError, labels []domain.Label) []domain.FieldError {
	if len(labels) > maxLabels {
		return append(errs, domain.FieldError{Field: "labels", Message: fmt.Sprintf("at most %d labels", maxLabels)})
	}
	for n, l := range labels {
		if l.ID == "" {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("labels[%d].id", n), Message: "required"})
		}
		if l.Color == "" {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("labels[%d].color", n), Message: "required"})
		}
		if utf8.RuneCountInString(l.Name) > maxLabelNameLen {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("labels[%d].name", n), Message: "too long"})
		}
	}
	return errs
}
