package user

import (
	"unicode/utf8"

	"github.com/heartmarshall/kanban-backend/internal/domain"
)

// UpdateProfileInput holds parameters for profile update operation.
// Nil fields are left untouched.
type UpdateProfileInput struct {
	Name      *string
	AvatarURL *string
	// ClearAvatar removes the avatar; set when the client sends null or "".
	ClearAvatar bool
}

// Validate validates the update profile input.
func (i UpdateProfileInput) Validate() error {
	var errs []domain.FieldError

	if i.Name != nil {
		n := utf8.RuneCountInString(*i.Name)
		switch {
		case n == 0:
			errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
		case n < 2:
			errs = append(errs, domain.FieldError{Field: "name", Message: "must be at least 2 characters"})
		case n > 100:
			errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
		}
	}

	if i.AvatarURL != nil {
		if len(*i.AvatarURL) > 512 {
			errs = append(errs, domain.FieldError{Field: "avatar", Message: "too long"})
		} else if !domain.IsHTTPURL(*i.AvatarURL) {
			errs = append(errs, domain.FieldError{Field: "avatar", Message: "must be a valid URL"})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
