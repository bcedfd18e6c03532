package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated application user.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	AvatarURL    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserProfile is a user together with board ownership/membership counts.
type UserProfile struct {
	User
	OwnedBoards  int
	MemberBoards int
}

// UserUpdate carries optional profile changes. Nil fields are left untouched.
type UserUpdate struct {
	Name      *string
	AvatarURL *string
	// ClearAvatar removes the avatar even when AvatarURL is nil.
	ClearAvatar bool
}

// IsEmpty reports whether the update changes nothing.
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.AvatarURL == nil && !u.ClearAvatar
}
