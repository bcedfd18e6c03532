package domain

import "github.com/google/uuid"

// ActivityFilter contains pagination parameters for a board's activity feed.
type ActivityFilter struct {
	BoardID uuid.UUID
	Limit   int
	Offset  int
}

// ReorderItem represents an item to reorder with its new position.
type ReorderItem struct {
	ID       uuid.UUID
	Position int
}

// CardPlacement is the final location of a card in a bulk reorder.
type CardPlacement struct {
	ID       uuid.UUID
	ListID   uuid.UUID
	BoardID  uuid.UUID
	Position int
}
