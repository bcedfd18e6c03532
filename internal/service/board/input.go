package board

import (
	"unicode/utf8"

	"github.com/heartmarshall/kanban-backend/internal/domain"
)

const (
	maxNameLen        = 100
	maxDescriptionLen = 2000
)

// CreateInput holds parameters for the create board operation.
type CreateInput struct {
	Name        string
	Description *string
	Background  *string
}

// Validate validates the create board input.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	errs = append(errs, checkName(i.Name)...)
	errs = append(errs, checkDescription(i.Description)...)
	errs = append(errs, checkBackground(i.Background)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput holds parameters for the update board operation.
// Nil fields are left untouched.
type UpdateInput struct {
	Name             *string
	Description      *string
	ClearDescription bool
	Background       *string
}

// Validate validates the update board input.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.Name != nil {
		errs = append(errs, checkName(*i.Name)...)
	}
	errs = append(errs, checkDescription(i.Description)...)
	errs = append(errs, checkBackground(i.Background)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// AddMemberInput holds parameters for the add member operation.
type AddMemberInput struct {
	Email string
}

// Validate validates the add member input.
func (i AddMemberInput) Validate() error {
	if i.Email == "" {
		return domain.NewValidationError("email", "required")
	}
	if !domain.IsEmail(i.Email) {
		return domain.NewValidationError("email", "invalid email address")
	}
	return nil
}

func checkName(name string) []domain.FieldError {
	switch n := utf8.RuneCountInString(name); {
	case n == 0:
		return []domain.FieldError{{Field: "name", Message: "required"}}
	case n > maxNameLen:
		return []domain.FieldError{{Field: "name", Message: "too long"}}
	}
	return nil
}

func checkDescription(desc *string) []domain.FieldError {
	if desc != nil && utf8.RuneCountInString(*desc) > maxDescriptionLen {
		return []domain.FieldError{{Field: "description", Message: "too long"}}
	}
	return nil
}

func checkBackground(bg *string) []domain.FieldError {
	if bg != nil && !domain.IsHexColor(*bg) {
		return []domain.FieldError{{Field: "background", Message: "must be a hex color like #0079bf"}}
	}
	return nil
}
