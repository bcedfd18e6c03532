package auth

import (
	"unicode/utf8"

	"github.com/heartmarshall/kanban-backend/internal/domain"
)

const (
	minPasswordLen = 6
	maxPasswordLen = 72
	minNameLen     = 2
	maxNameLen     = 100
)

// RegisterInput holds parameters for the register operation.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// Validate validates the register input.
func (i RegisterInput) Validate() error {
	var errs []domain.FieldError

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else if !domain.IsEmail(i.Email) {
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid email address"})
	}

	errs = append(errs, checkPassword("password", i.Password)...)

	if n := utf8.RuneCountInString(i.Name); n == 0 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if n < minNameLen {
		errs = append(errs, domain.FieldError{Field: "name", Message: "must be at least 2 characters"})
	} else if n > maxNameLen {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// LoginInput holds parameters for the login operation.
type LoginInput struct {
	Email    string
	Password string
}

// Validate validates the login input.
func (i LoginInput) Validate() error {
	var errs []domain.FieldError

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else if !domain.IsEmail(i.Email) {
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid email address"})
	}

	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ChangePasswordInput holds parameters for the password change operation.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

// Validate validates the change password input.
func (i ChangePasswordInput) Validate() error {
	var errs []domain.FieldError

	if i.CurrentPassword == "" {
		errs = append(errs, domain.FieldError{Field: "currentPassword", Message: "required"})
	}
	errs = append(errs, checkPassword("newPassword", i.NewPassword)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// checkPassword enforces length bounds. bcrypt ignores input past 72 bytes.
func checkPassword(field, password string) []domain.FieldError {
	switch {
	case password == "":
		return []domain.FieldError{{Field: field, Message: "required"}}
	case len(password) < minPasswordLen:
		return []domain.FieldError{{Field: field, Message: "must be at least 6 characters"}}
	case len(password) > maxPasswordLen:
		return []domain.FieldError{{Field: field, Message: "must be at most 72 bytes"}}
	}
	return nil
}
