// Package list implements the List repository using PostgreSQL.
// Position writes assume the caller holds the board row lock inside a
// transaction; the repository itself never reorders on its own.
package list

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/kanban-backend/internal/adapter/postgres"
	"github.com/heartmarshall/kanban-backend/internal/domain"
	"github.com/heartmarshall/kanban-backend/internal/position"
)

// Repo provides list persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new list repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

const columns = `id, board_id, title, position, is_archived, created_at, updated_at`

const shiftSQL = `
UPDATE lists
SET position = position + $2, updated_at = now()
WHERE board_id = $1
  AND NOT is_archived
  AND position >= $3
  AND ($4 < 0 OR position <= $4)`

const setPositionSQL = `
UPDATE lists
SET position = $3, updated_at = now()
WHERE id = $1 AND board_id = $2 AND NOT is_archived`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a list by primary key, archived or not. Cards are not loaded.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.List, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	l, err := scanList(q.QueryRow(ctx, `SELECT `+columns+` FROM lists WHERE id = $1`, id))
	if err != nil {
		return nil, postgres.MapError(err, "list", id)
	}
	return l, nil
}

// LockForUpdate reads the given lists and holds row locks on them until the
// surrounding transaction ends. Locks are taken in ascending id order so
// two transactions locking overlapping sets cannot deadlock. Missing ids
// are reported as ErrNotFound.
func (r *Repo) LockForUpdate(ctx context.Context, ids ...uuid.UUID) (map[uuid.UUID]*domain.List, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var lists []domain.List
	err := pgxscan.Select(ctx, q, &lists,
		`SELECT `+columns+` FROM lists WHERE id = ANY($1::uuid[]) ORDER BY id FOR UPDATE`, ids)
	if err != nil {
		return nil, fmt.Errorf("lock lists: %w", err)
	}

	out := make(map[uuid.UUID]*domain.List, len(lists))
	for i := range lists {
		out[lists[i].ID] = &lists[i]
	}
	for _, id := range ids {
		if _, ok := out[id]; !ok {
			return nil, postgres.MapError(pgx.ErrNoRows, "list", id)
		}
	}
	return out, nil
}

// ListByBoard returns the active lists of a board ordered by position.
// Cards are not loaded.
func (r *Repo) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]domain.List, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	lists := []domain.List{}
	err := pgxscan.Select(ctx, q, &lists,
		`SELECT `+columns+` FROM lists WHERE board_id = $1 AND NOT is_archived ORDER BY position, id`, boardID)
	if err != nil {
		return nil, fmt.Errorf("list lists by board: %w", err)
	}
	return lists, nil
}

// MaxPosition returns the highest active position on a board, or -1 when the
// board has no active lists.
func (r *Repo) MaxPosition(ctx context.Context, boardID uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var maxPos int
	err := q.QueryRow(ctx,
		`SELECT COALESCE(MAX(position), -1) FROM lists WHERE board_id = $1 AND NOT is_archived`, boardID,
	).Scan(&maxPos)
	if err != nil {
		return 0, postgres.MapError(err, "board", boardID)
	}
	return maxPos, nil
}

// CountActive returns the number of active lists on a board.
func (r *Repo) CountActive(ctx context.Context, boardID uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var n int
	err := q.QueryRow(ctx,
		`SELECT count(*) FROM lists WHERE board_id = $1 AND NOT is_archived`, boardID,
	).Scan(&n)
	if err != nil {
		return 0, postgres.MapError(err, "board", boardID)
	}
	return n, nil
}

// ActivePositions returns the positions of a board's active lists in
// ascending order.
func (r *Repo) ActivePositions(ctx context.Context, boardID uuid.UUID) ([]int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT position FROM lists WHERE board_id = $1 AND NOT is_archived ORDER BY position`, boardID)
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}

	positions, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	return positions, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new list and returns the persisted row.
func (r *Repo) Create(ctx context.Context, l *domain.List) (*domain.List, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	row := q.QueryRow(ctx,
		`INSERT INTO lists (id, board_id, title, position, is_archived, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+columns,
		l.ID, l.BoardID, l.Title, l.Position, l.IsArchived, l.CreatedAt, l.UpdatedAt,
	)

	created, err := scanList(row)
	if err != nil {
		return nil, postgres.MapError(err, "list", l.ID)
	}
	return created, nil
}

// UpdateTitle renames a list.
func (r *Repo) UpdateTitle(ctx context.Context, id uuid.UUID, title string) (*domain.List, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	l, err := scanList(q.QueryRow(ctx,
		`UPDATE lists SET title = $2, updated_at = now() WHERE id = $1 RETURNING `+columns, id, title))
	if err != nil {
		return nil, postgres.MapError(err, "list", id)
	}
	return l, nil
}

// SetArchived sets the archived flag and the stored position together.
func (r *Repo) SetArchived(ctx context.Context, id uuid.UUID, archived bool, pos int) (*domain.List, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	l, err := scanList(q.QueryRow(ctx,
		`UPDATE lists SET is_archived = $2, position = $3, updated_at = now() WHERE id = $1 RETURNING `+columns,
		id, archived, pos,
	))
	if err != nil {
		return nil, postgres.MapError(err, "list", id)
	}
	return l, nil
}

// ShiftPositions applies s to the active lists of a board.
func (r *Repo) ShiftPositions(ctx context.Context, boardID uuid.UUID, s position.Shift) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := q.Exec(ctx, shiftSQL, boardID, s.Delta, s.From, s.To); err != nil {
		return postgres.MapError(err, "board", boardID)
	}
	return nil
}

// SetPosition writes the final position of one active list.
func (r *Repo) SetPosition(ctx context.Context, id uuid.UUID, pos int) (*domain.List, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	l, err := scanList(q.QueryRow(ctx,
		`UPDATE lists SET position = $2, updated_at = now() WHERE id = $1 RETURNING `+columns, id, pos))
	if err != nil {
		return nil, postgres.MapError(err, "list", id)
	}
	return l, nil
}

// SetPositions writes every item's position in one batch. Items that are not
// active lists of boardID are skipped and show up as a short affected count.
func (r *Repo) SetPositions(ctx context.Context, boardID uuid.UUID, items []domain.ReorderItem) (int64, error) {
	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(setPositionSQL, it.ID, boardID, it.Position)
	}

	affected, err := postgres.SendBatchExec(ctx, postgres.QuerierFromCtx(ctx, r.db), batch)
	if err != nil {
		return affected, postgres.MapError(err, "board", boardID)
	}
	return affected, nil
}

// Delete removes a list. Its cards cascade.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM lists WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "list", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "list", id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func scanList(row pgx.Row) (*domain.List, error) {
	var l domain.List
	if err := row.Scan(&l.ID, &l.BoardID, &l.Title, &l.Position, &l.IsArchived, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}
