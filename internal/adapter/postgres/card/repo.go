// Package card implements the Card and card assignee repository using PostgreSQL.
// Position writes assume the caller holds the row locks of every list they
// touch inside a transaction.
package card

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/kanban-backend/internal/adapter/postgres"
	"github.com/heartmarshall/kanban-backend/internal/domain"
	"github.com/heartmarshall/kanban-backend/internal/position"
)

// Repo provides card persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new card repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

const columns = `id, list_id, board_id, title, description, position, labels, due_date, is_archived, created_at, updated_at`

const getWithListSQL = `
SELECT
    c.id, c.list_id, c.board_id, c.title, c.description, c.position, c.labels, c.due_date,
    c.is_archived, c.created_at, c.updated_at,
    l.id, l.board_id, l.title, l.position, l.is_archived, l.created_at, l.updated_at
FROM cards c
JOIN lists l ON l.id = c.list_id
WHERE c.id = $1`

const listByBoardSQL = `
SELECT
    c.id, c.list_id, c.board_id, c.title, c.description, c.position, c.labels, c.due_date,
    c.is_archived, c.created_at, c.updated_at
FROM cards c
JOIN lists l ON l.id = c.list_id
WHERE c.board_id = $1 AND NOT c.is_archived AND NOT l.is_archived
ORDER BY l.position, c.position, c.id`

const assigneesOfSQL = `
SELECT a.card_id, ` + postgres.UserRefColumns + `
FROM card_assignees a
JOIN users u ON u.id = a.user_id
WHERE a.card_id = ANY($1::uuid[])
ORDER BY a.card_id, u.name, u.id`

const shiftSQL = `
UPDATE cards
SET position = position + $2, updated_at = now()
WHERE list_id = $1
  AND NOT is_archived
  AND position >= $3
  AND ($4 < 0 OR position <= $4)`

const placeSQL = `
UPDATE cards
SET list_id = $2, board_id = $3, position = $4, updated_at = now()
WHERE id = $1 AND NOT is_archived`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a card with its list and assignees, archived or not.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var (
		c domain.Card
		l domain.List
	)
	err := q.QueryRow(ctx, getWithListSQL, id).Scan(
		&c.ID, &c.ListID, &c.BoardID, &c.Title, &c.Description, &c.Position, &c.Labels, &c.DueDate,
		&c.IsArchived, &c.CreatedAt, &c.UpdatedAt,
		&l.ID, &l.BoardID, &l.Title, &l.Position, &l.IsArchived, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "card", id)
	}
	c.List = &l
	normalize(&c)

	assignees, err := r.AssigneesOf(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	c.Assignees = usersOrEmpty(assignees[id])

	return &c, nil
}

// ListByBoard returns the active cards of a board's active lists ordered by
// list position then card position, with assignees loaded.
func (r *Repo) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]domain.Card, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, listByBoardSQL, boardID)
	if err != nil {
		return nil, fmt.Errorf("list cards by board: %w", err)
	}

	cards, err := scanCards(rows)
	if err != nil {
		return nil, fmt.Errorf("list cards by board: %w", err)
	}
	if len(cards) == 0 {
		return cards, nil
	}

	ids := make([]uuid.UUID, len(cards))
	for i := range cards {
		ids[i] = cards[i].ID
	}

	assignees, err := r.AssigneesOf(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range cards {
		cards[i].Assignees = usersOrEmpty(assignees[cards[i].ID])
	}

	return cards, nil
}

// AssigneesOf returns the assignees of several cards grouped by card id.
func (r *Repo) AssigneesOf(ctx context.Context, cardIDs []uuid.UUID) (map[uuid.UUID][]domain.User, error) {
	if len(cardIDs) == 0 {
		return map[uuid.UUID][]domain.User{}, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, assigneesOfSQL, cardIDs)
	if err != nil {
		return nil, fmt.Errorf("get card assignees: %w", err)
	}

	assignees, err := postgres.GroupUsers(rows)
	if err != nil {
		return nil, fmt.Errorf("get card assignees: %w", err)
	}
	return assignees, nil
}

// MaxPosition returns the highest active position in a list, or -1 when the
// list has no active cards.
func (r *Repo) MaxPosition(ctx context.Context, listID uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var maxPos int
	err := q.QueryRow(ctx,
		`SELECT COALESCE(MAX(position), -1) FROM cards WHERE list_id = $1 AND NOT is_archived`, listID,
	).Scan(&maxPos)
	if err != nil {
		return 0, postgres.MapError(err, "list", listID)
	}
	return maxPos, nil
}

// CountActive returns the number of active cards in a list.
func (r *Repo) CountActive(ctx context.Context, listID uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var n int
	err := q.QueryRow(ctx,
		`SELECT count(*) FROM cards WHERE list_id = $1 AND NOT is_archived`, listID,
	).Scan(&n)
	if err != nil {
		return 0, postgres.MapError(err, "list", listID)
	}
	return n, nil
}

// ActivePositions returns the positions of a list's active cards in
// ascending order.
func (r *Repo) ActivePositions(ctx context.Context, listID uuid.UUID) ([]int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT position FROM cards WHERE list_id = $1 AND NOT is_archived ORDER BY position`, listID)
	if err != nil {
		return nil, fmt.Errorf("card positions: %w", err)
	}

	positions, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("card positions: %w", err)
	}
	return positions, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new card and returns the persisted row without assignees.
func (r *Repo) Create(ctx context.Context, c *domain.Card) (*domain.Card, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	labels := c.Labels
	if labels == nil {
		labels = []domain.Label{}
	}

	row := q.QueryRow(ctx,
		`INSERT INTO cards (id, list_id, board_id, title, description, position, labels, due_date, is_archived, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+columns,
		c.ID, c.ListID, c.BoardID, c.Title, c.Description, c.Position, labels, c.DueDate,
		c.IsArchived, c.CreatedAt, c.UpdatedAt,
	)

	created, err := scanCard(row)
	if err != nil {
		return nil, postgres.MapError(err, "card", c.ID)
	}
	created.Assignees = []domain.User{}
	return created, nil
}

// Update applies the non-nil fields of upd and bumps updated_at.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, upd domain.CardUpdate) (*domain.Card, error) {
	b := postgres.Psql.Update("cards").
		Set("updated_at", time.Now().UTC()).
		Where("id = ?", id).
		Suffix("RETURNING " + columns)

	if upd.Title != nil {
		b = b.Set("title", *upd.Title)
	}
	switch {
	case upd.ClearDescription:
		b = b.Set("description", nil)
	case upd.Description != nil:
		b = b.Set("description", *upd.Description)
	}
	if upd.Labels != nil {
		labels := *upd.Labels
		if labels == nil {
			labels = []domain.Label{}
		}
		b = b.Set("labels", labels)
	}
	switch {
	case upd.ClearDueDate:
		b = b.Set("due_date", nil)
	case upd.DueDate != nil:
		b = b.Set("due_date", *upd.DueDate)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update card query: %w", err)
	}

	c, err := scanCard(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "card", id)
	}
	return c, nil
}

// SetArchived sets the archived flag and the stored position together.
func (r *Repo) SetArchived(ctx context.Context, id uuid.UUID, archived bool, pos int) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE cards SET is_archived = $2, position = $3, updated_at = now() WHERE id = $1`,
		id, archived, pos,
	)
	if err != nil {
		return postgres.MapError(err, "card", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "card", id)
	}
	return nil
}

// ShiftPositions applies s to the active cards of a list.
func (r *Repo) ShiftPositions(ctx context.Context, listID uuid.UUID, s position.Shift) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := q.Exec(ctx, shiftSQL, listID, s.Delta, s.From, s.To); err != nil {
		return postgres.MapError(err, "list", listID)
	}
	return nil
}

// Place writes the final list, board and position of one active card.
func (r *Repo) Place(ctx context.Context, p domain.CardPlacement) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, placeSQL, p.ID, p.ListID, p.BoardID, p.Position)
	if err != nil {
		return postgres.MapError(err, "card", p.ID)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "card", p.ID)
	}
	return nil
}

// PlaceBatch writes every placement in one batch. Archived or missing cards
// are skipped and show up as a short affected count.
func (r *Repo) PlaceBatch(ctx context.Context, placements []domain.CardPlacement) (int64, error) {
	batch := &pgx.Batch{}
	for _, p := range placements {
		batch.Queue(placeSQL, p.ID, p.ListID, p.BoardID, p.Position)
	}

	affected, err := postgres.SendBatchExec(ctx, postgres.QuerierFromCtx(ctx, r.db), batch)
	if err != nil {
		return affected, postgres.MapError(err, "card", uuid.Nil)
	}
	return affected, nil
}

// Delete removes a card. Its assignments cascade.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "card", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "card", id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Assignee operations
// ---------------------------------------------------------------------------

// AddAssignee assigns a user to a card. Assigning twice is a no-op and
// reports false.
func (r *Repo) AddAssignee(ctx context.Context, cardID, userID uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx,
		`INSERT INTO card_assignees (card_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		cardID, userID,
	)
	if err != nil {
		return false, postgres.MapError(err, "card", cardID)
	}
	return tag.RowsAffected() == 1, nil
}

// RemoveAssignee unassigns a user and reports whether an assignment existed.
func (r *Repo) RemoveAssignee(ctx context.Context, cardID, userID uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM card_assignees WHERE card_id = $1 AND user_id = $2`, cardID, userID)
	if err != nil {
		return false, postgres.MapError(err, "card", cardID)
	}
	return tag.RowsAffected() == 1, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func scanCard(row pgx.Row) (*domain.Card, error) {
	var c domain.Card
	err := row.Scan(
		&c.ID, &c.ListID, &c.BoardID, &c.Title, &c.Description, &c.Position, &c.Labels, &c.DueDate,
		&c.IsArchived, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	normalize(&c)
	return &c, nil
}

func scanCards(rows pgx.Rows) ([]domain.Card, error) {
	defer rows.Close()

	cards := []domain.Card{}
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *c)
	}
	return cards, rows.Err()
}

func normalize(c *domain.Card) {
	if c.Labels == nil {
		c.Labels = []domain.Label{}
	}
}

func usersOrEmpty(users []domain.User) []domain.User {
	if users == nil {
		return []domain.User{}
	}
	return users
}
