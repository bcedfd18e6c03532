package domain

import (
	"time"

	"github.com/google/uuid"
)

// List is an ordered column of cards on a board.
type List struct {
	ID         uuid.UUID
	BoardID    uuid.UUID
	Title      string
	Position   int
	IsArchived bool
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Cards is populated only by eager board/list fetches.
	Cards []Card
}

// AttachCards distributes cards onto the lists they belong to, keeping the
// order of both slices. Every list ends up with a non-nil Cards slice.
func AttachCards(lists []List, cards []Card) []List {
	idx := make(map[uuid.UUID]int, len(lists))
	for i := range lists {
		lists[i].Cards = []Card{}
		idx[lists[i].ID] = i
	}
	for _, c := range cards {
		if i, ok := idx[c.ListID]; ok {
			lists[i].Cards = append(lists[i].Cards, c)
		}
	}
	return lists
}
