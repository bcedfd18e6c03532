// Package board implements the Board and board membership repository using PostgreSQL.
package board

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/kanban-backend/internal/adapter/postgres"
	"github.com/heartmarshall/kanban-backend/internal/domain"
)

// Repo provides board persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new board repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

const columns = `id, name, description, background, is_archived, owner_id, created_at, updated_at`

const listForUserSQL = `
SELECT
    b.id, b.name, b.description, b.background, b.is_archived, b.owner_id, b.created_at, b.updated_at,
    ` + postgres.UserRefColumns + `,
    (SELECT count(*) FROM lists l WHERE l.board_id = b.id AND NOT l.is_archived),
    (SELECT count(*) FROM cards c WHERE c.board_id = b.id AND NOT c.is_archived)
FROM boards b
JOIN users u ON u.id = b.owner_id
WHERE NOT b.is_archived
  AND (b.owner_id = $1 OR EXISTS (
      SELECT 1 FROM board_members m WHERE m.board_id = b.id AND m.user_id = $1))
ORDER BY b.updated_at DESC, b.id`

const membersOfSQL = `
SELECT m.board_id, ` + postgres.UserRefColumns + `
FROM board_members m
JOIN users u ON u.id = m.user_id
WHERE m.board_id = ANY($1::uuid[])
ORDER BY m.board_id, m.added_at, u.id`

// ---------------------------------------------------------------------------
// Board operations
// ---------------------------------------------------------------------------

// Create inserts a new board and returns the persisted row.
func (r *Repo) Create(ctx context.Context, b *domain.Board) (*domain.Board, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	row := q.QueryRow(ctx,
		`INSERT INTO boards (id, name, description, background, is_archived, owner_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+columns,
		b.ID, b.Name, b.Description, b.Background, b.IsArchived, b.OwnerID, b.CreatedAt, b.UpdatedAt,
	)

	created, err := scanBoard(row)
	if err != nil {
		return nil, postgres.MapError(err, "board", b.ID)
	}
	return created, nil
}

// GetByID returns a board by primary key, archived or not.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	b, err := scanBoard(q.QueryRow(ctx, `SELECT `+columns+` FROM boards WHERE id = $1`, id))
	if err != nil {
		return nil, postgres.MapError(err, "board", id)
	}
	return b, nil
}

// LockForUpdate reads a board and holds a row lock on it until the
// surrounding transaction ends. Writers of the board's list positions take
// this lock first.
func (r *Repo) LockForUpdate(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	b, err := scanBoard(q.QueryRow(ctx, `SELECT `+columns+` FROM boards WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, postgres.MapError(err, "board", id)
	}
	return b, nil
}

// ListForUser returns the non-archived boards the user owns or is a member
// of, most recently updated first, with owner, members and counts.
func (r *Repo) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.BoardSummary, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, listForUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list boards for user: %w", err)
	}
	defer rows.Close()

	summaries := []domain.BoardSummary{}
	for rows.Next() {
		var s domain.BoardSummary
		err := rows.Scan(
			&s.ID, &s.Name, &s.Description, &s.Background, &s.IsArchived, &s.OwnerID, &s.CreatedAt, &s.UpdatedAt,
			&s.Owner.ID, &s.Owner.Email, &s.Owner.Name, &s.Owner.AvatarURL, &s.Owner.CreatedAt, &s.Owner.UpdatedAt,
			&s.Counts.Lists, &s.Counts.Cards,
		)
		if err != nil {
			return nil, fmt.Errorf("scan board summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list boards for user: %w", err)
	}

	if len(summaries) == 0 {
		return summaries, nil
	}

	ids := make([]uuid.UUID, len(summaries))
	for i := range summaries {
		ids[i] = summaries[i].ID
	}

	members, err := r.MembersOf(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range summaries {
		summaries[i].Members = membersOrEmpty(members[summaries[i].ID])
	}

	return summaries, nil
}

// Update applies the non-nil fields of upd and bumps updated_at.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, upd domain.BoardUpdate) (*domain.Board, error) {
	b := postgres.Psql.Update("boards").
		Set("updated_at", time.Now().UTC()).
		Where("id = ?", id).
		Suffix("RETURNING " + columns)

	if upd.Name != nil {
		b = b.Set("name", *upd.Name)
	}
	switch {
	case upd.ClearDescription:
		b = b.Set("description", nil)
	case upd.Description != nil:
		b = b.Set("description", *upd.Description)
	}
	if upd.Background != nil {
		b = b.Set("background", *upd.Background)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update board query: %w", err)
	}

	updated, err := scanBoard(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "board", id)
	}
	return updated, nil
}

// SetArchived sets the archived flag.
func (r *Repo) SetArchived(ctx context.Context, id uuid.UUID, archived bool) (*domain.Board, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	b, err := scanBoard(q.QueryRow(ctx,
		`UPDATE boards SET is_archived = $2, updated_at = now() WHERE id = $1 RETURNING `+columns,
		id, archived,
	))
	if err != nil {
		return nil, postgres.MapError(err, "board", id)
	}
	return b, nil
}

// Touch bumps updated_at so the board sorts first in listings.
func (r *Repo) Touch(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := q.Exec(ctx, `UPDATE boards SET updated_at = now() WHERE id = $1`, id); err != nil {
		return postgres.MapError(err, "board", id)
	}
	return nil
}

// Delete removes a board. Lists, cards, memberships and activities cascade.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM boards WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "board", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "board", id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Membership operations
// ---------------------------------------------------------------------------

// Members returns the members of a board in the order they were added.
func (r *Repo) Members(ctx context.Context, boardID uuid.UUID) ([]domain.User, error) {
	members, err := r.MembersOf(ctx, []uuid.UUID{boardID})
	if err != nil {
		return nil, err
	}
	return membersOrEmpty(members[boardID]), nil
}

// MembersOf returns the members of several boards grouped by board id.
func (r *Repo) MembersOf(ctx context.Context, boardIDs []uuid.UUID) (map[uuid.UUID][]domain.User, error) {
	if len(boardIDs) == 0 {
		return map[uuid.UUID][]domain.User{}, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, membersOfSQL, boardIDs)
	if err != nil {
		return nil, fmt.Errorf("get board members: %w", err)
	}

	members, err := postgres.GroupUsers(rows)
	if err != nil {
		return nil, fmt.Errorf("get board members: %w", err)
	}
	return members, nil
}

// IsMember reports whether userID is in the member set of boardID.
func (r *Repo) IsMember(ctx context.Context, boardID, userID uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var ok bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM board_members WHERE board_id = $1 AND user_id = $2)`,
		boardID, userID,
	).Scan(&ok)
	if err != nil {
		return false, postgres.MapError(err, "board", boardID)
	}
	return ok, nil
}

// AddMember inserts a membership. Adding an existing member is a no-op and
// reports false.
func (r *Repo) AddMember(ctx context.Context, boardID, userID uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx,
		`INSERT INTO board_members (board_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		boardID, userID,
	)
	if err != nil {
		return false, postgres.MapError(err, "board", boardID)
	}
	return tag.RowsAffected() == 1, nil
}

// RemoveMember deletes a membership and reports whether one existed.
// Assignments of the removed user on the board's cards are dropped too.
func (r *Repo) RemoveMember(ctx context.Context, boardID, userID uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM board_members WHERE board_id = $1 AND user_id = $2`, boardID, userID)
	if err != nil {
		return false, postgres.MapError(err, "board", boardID)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	_, err = q.Exec(ctx,
		`DELETE FROM card_assignees ca USING cards c
		 WHERE ca.card_id = c.id AND c.board_id = $1 AND ca.user_id = $2`,
		boardID, userID,
	)
	if err != nil {
		return false, postgres.MapError(err, "board", boardID)
	}
	return true, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func scanBoard(row pgx.Row) (*domain.Board, error) {
	var b domain.Board
	err := row.Scan(&b.ID, &b.Name, &b.Description, &b.Background, &b.IsArchived, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func membersOrEmpty(users []domain.User) []domain.User {
	if users == nil {
		return []domain.User{}
	}
	return users
}
