package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is an immutable board event. Payload holds a snapshot of the
// names involved so it stays readable after the entities change.
type Activity struct {
	ID        uuid.UUID
	Type      ActivityType
	Payload   map[string]any
	UserID    uuid.UUID
	BoardID   uuid.UUID
	CreatedAt time.Time

	// User is populated by feed queries.
	User *User
}

// NewActivity builds an activity for the given actor and board.
func NewActivity(typ ActivityType, userID, boardID uuid.UUID, payload map[string]any) *Activity {
	if payload == nil {
		payload = map[string]any{}
	}
	return &Activity{
		ID:        uuid.New(),
		Type:      typ,
		Payload:   payload,
		UserID:    userID,
		BoardID:   boardID,
		CreatedAt: time.Now().UTC(),
	}
}
