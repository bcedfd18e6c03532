package card

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/kanban-backend/internal/domain"
	"github.com/heartmarshall/kanban-backend/internal/position"
)

// memStore holds lists, cards and assignments in memory. cardStore and
// listStore expose it through the card and list repository interfaces, and
// memTx restores a snapshot when the transaction callback fails.
type memStore struct {
	mu         sync.Mutex
	lists      map[uuid.UUID]domain.List
	cards      map[uuid.UUID]domain.Card
	assignees  map[uuid.UUID][]domain.User
	users      map[uuid.UUID]domain.User
	activities []domain.Activity
	locked     [][]uuid.UUID
}

func newMemStore() *memStore {
	return &memStore{
		lists:     map[uuid.UUID]domain.List{},
		cards:     map[uuid.UUID]domain.Card{},
		assignees: map[uuid.UUID][]domain.User{},
		users:     map[uuid.UUID]domain.User{},
	}
}

// addList creates an active list on boardID with n active cards titled
// <title>0..<title>n-1 and returns the list id and card ids in order.
func (m *memStore) addList(boardID uuid.UUID, title string, n int) (uuid.UUID, []uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	listID := uuid.New()
	m.lists[listID] = domain.List{ID: listID, BoardID: boardID, Title: title, Position: len(m.lists)}

	ids := make([]uuid.UUID, n)
	for i := range n {
		ids[i] = uuid.New()
		m.cards[ids[i]] = domain.Card{
			ID: ids[i], ListID: listID, BoardID: boardID,
			Title: fmt.Sprintf("%s%d", title, i), Position: i, Labels: []domain.Label{},
		}
	}
	return listID, ids
}

// order returns the active card ids of a list sorted by position.
func (m *memStore) order(listID uuid.UUID) []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []uuid.UUID
	for _, c := range m.activeLocked(listID) {
		out = append(out, c.ID)
	}
	return out
}

func (m *memStore) positions(listID uuid.UUID) []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []int
	for _, c := range m.activeLocked(listID) {
		out = append(out, c.Position)
	}
	return out
}

func (m *memStore) card(id uuid.UUID) domain.Card {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cards[id]
}

func (m *memStore) activeLocked(listID uuid.UUID) []domain.Card {
	var out []domain.Card
	for _, c := range m.cards {
		if c.ListID == listID && !c.IsArchived {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b domain.Card) int {
		if a.Position != b.Position {
			return a.Position - b.Position
		}
		return slices.Compare(a.ID[:], b.ID[:])
	})
	return out
}

// ---------------------------------------------------------------------------
// cardRepo
// ---------------------------------------------------------------------------

type cardStore struct{ *memStore }

func (s cardStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cards[id]
	if !ok {
		return nil, fmt.Errorf("card %s: %w", id, domain.ErrNotFound)
	}
	l := s.lists[c.ListID]
	c.List = &l
	c.Assignees = slices.Clone(s.assignees[id])
	if c.Assignees == nil {
		c.Assignees = []domain.User{}
	}
	return &c, nil
}

func (s cardStore) MaxPosition(_ context.Context, listID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	maxPos := -1
	for _, c := range s.activeLocked(listID) {
		maxPos = max(maxPos, c.Position)
	}
	return maxPos, nil
}

func (s cardStore) CountActive(_ context.Context, listID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.activeLocked(listID)), nil
}

func (s cardStore) ActivePositions(_ context.Context, listID uuid.UUID) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []int
	for _, c := range s.activeLocked(listID) {
		out = append(out, c.Position)
	}
	return out, nil
}

func (s cardStore) Create(_ context.Context, c *domain.Card) (*domain.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.Position < 0 {
		return nil, domain.ErrValidation
	}
	created := *c
	if created.Labels == nil {
		created.Labels = []domain.Label{}
	}
	s.cards[c.ID] = created
	created.Assignees = []domain.User{}
	return &created, nil
}

func (s cardStore) Update(_ context.Context, id uuid.UUID, upd domain.CardUpdate) (*domain.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cards[id]
	if !ok {
		return nil, fmt.Errorf("card %s: %w", id, domain.ErrNotFound)
	}
	if upd.Title != nil {
		c.Title = *upd.Title
	}
	switch {
	case upd.ClearDescription:
		c.Description = nil
	case upd.Description != nil:
		c.Description = upd.Description
	}
	if upd.Labels != nil {
		c.Labels = *upd.Labels
	}
	switch {
	case upd.ClearDueDate:
		c.DueDate = nil
	case upd.DueDate != nil:
		c.DueDate = upd.DueDate
	}
	s.cards[id] = c
	return &c, nil
}

func (s cardStore) SetArchived(_ context.Context, id uuid.UUID, archived bool, pos int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cards[id]
	if !ok {
		return fmt.Errorf("card %s: %w", id, domain.ErrNotFound)
	}
	c.IsArchived = archived
	c.Position = pos
	s.cards[id] = c
	return nil
}

func (s cardStore) ShiftPositions(_ context.Context, listID uuid.UUID, sh position.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range s.cards {
		if c.ListID == listID && !c.IsArchived && sh.Contains(c.Position) {
			c.Position += sh.Delta
			s.cards[id] = c
		}
	}
	return nil
}

func (s cardStore) Place(_ context.Context, p domain.CardPlacement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.placeLocked(p) {
		return fmt.Errorf("card %s: %w", p.ID, domain.ErrNotFound)
	}
	return nil
}

func (s cardStore) PlaceBatch(_ context.Context, placements []domain.CardPlacement) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var affected int64
	for _, p := range placements {
		if s.placeLocked(p) {
			affected++
		}
	}
	return affected, nil
}

func (s cardStore) placeLocked(p domain.CardPlacement) bool {
	c, ok := s.cards[p.ID]
	if !ok || c.IsArchived {
		return false
	}
	c.ListID, c.BoardID, c.Position = p.ListID, p.BoardID, p.Position
	s.cards[p.ID] = c
	return true
}

func (s cardStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cards[id]; !ok {
		return fmt.Errorf("card %s: %w", id, domain.ErrNotFound)
	}
	delete(s.cards, id)
	delete(s.assignees, id)
	return nil
}

func (s cardStore) AddAssignee(_ context.Context, cardID, userID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.assignees[cardID] {
		if u.ID == userID {
			return false, nil
		}
	}
	s.assignees[cardID] = append(s.assignees[cardID], s.users[userID])
	return true, nil
}

func (s cardStore) RemoveAssignee(_ context.Context, cardID, userID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.assignees[cardID])
	s.assignees[cardID] = slices.DeleteFunc(slices.Clone(s.assignees[cardID]), func(u domain.User) bool {
		return u.ID == userID
	})
	return len(s.assignees[cardID]) < before, nil
}

// ---------------------------------------------------------------------------
// listRepo
// ---------------------------------------------------------------------------

type listStore struct{ *memStore }

func (s listStore) GetByID(_ context.Context, id uuid.UUID) (*domain.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lists[id]
	if !ok {
		return nil, fmt.Errorf("list %s: %w", id, domain.ErrNotFound)
	}
	return &l, nil
}

func (s listStore) LockForUpdate(_ context.Context, ids ...uuid.UUID) (map[uuid.UUID]*domain.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[uuid.UUID]*domain.List, len(ids))
	for _, id := range ids {
		l, ok := s.lists[id]
		if !ok {
			return nil, fmt.Errorf("list %s: %w", id, domain.ErrNotFound)
		}
		out[id] = &l
	}
	s.locked = append(s.locked, slices.Clone(ids))
	return out, nil
}

// ---------------------------------------------------------------------------
// activityRepo / txManager
// ---------------------------------------------------------------------------

type memActivities struct{ *memStore }

func (s memActivities) Create(_ context.Context, a *domain.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = append(s.activities, *a)
	return nil
}

type memTx struct{ *memStore }

func (t memTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	cards := maps.Clone(t.cards)
	assignees := maps.Clone(t.assignees)
	activities := slices.Clone(t.activities)
	t.mu.Unlock()

	if err := fn(ctx); err != nil {
		t.mu.Lock()
		t.cards = cards
		t.assignees = assignees
		t.activities = activities
		t.mu.Unlock()
		return err
	}
	return nil
}
