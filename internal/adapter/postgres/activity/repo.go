// Package activity implements the append-only Activity log repository using PostgreSQL.
package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/kanban-backend/internal/adapter/postgres"
	"github.com/heartmarshall/kanban-backend/internal/domain"
)

// Repo provides activity persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new activity repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create appends an activity entry.
func (r *Repo) Create(ctx context.Context, a *domain.Activity) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	payload := a.Payload
	if payload == nil {
		payload = map[string]any{}
	}

	_, err := q.Exec(ctx,
		`INSERT INTO activities (id, type, payload, user_id, board_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, string(a.Type), payload, a.UserID, a.BoardID, a.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "activity", a.ID)
	}
	return nil
}

// activityRow is one feed row with the acting user flattened in.
type activityRow struct {
	ID            uuid.UUID      `db:"id"`
	Type          string         `db:"type"`
	Payload       map[string]any `db:"payload"`
	UserID        uuid.UUID      `db:"user_id"`
	BoardID       uuid.UUID      `db:"board_id"`
	CreatedAt     time.Time      `db:"created_at"`
	UserEmail     string         `db:"user_email"`
	UserName      string         `db:"user_name"`
	UserAvatarURL *string        `db:"user_avatar_url"`
	UserCreatedAt time.Time      `db:"user_created_at"`
	UserUpdatedAt time.Time      `db:"user_updated_at"`
}

func (r activityRow) toDomain() domain.Activity {
	payload := r.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	return domain.Activity{
		ID:        r.ID,
		Type:      domain.ActivityType(r.Type),
		Payload:   payload,
		UserID:    r.UserID,
		BoardID:   r.BoardID,
		CreatedAt: r.CreatedAt,
		User: &domain.User{
			ID:        r.UserID,
			Email:     r.UserEmail,
			Name:      r.UserName,
			AvatarURL: r.UserAvatarURL,
			CreatedAt: r.UserCreatedAt,
			UpdatedAt: r.UserUpdatedAt,
		},
	}
}

// ListByBoard returns a page of a board's activities, newest first, each
// with its acting user.
func (r *Repo) ListByBoard(ctx context.Context, f domain.ActivityFilter) ([]domain.Activity, error) {
	query, args, err := postgres.Psql.
		Select(
			"a.id", "a.type", "a.payload", "a.user_id", "a.board_id", "a.created_at",
			"u.email AS user_email",
			"u.name AS user_name",
			"u.avatar_url AS user_avatar_url",
			"u.created_at AS user_created_at",
			"u.updated_at AS user_updated_at",
		).
		From("activities a").
		Join("users u ON u.id = a.user_id").
		Where("a.board_id = ?", f.BoardID).
		OrderBy("a.created_at DESC", "a.id DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list activities query: %w", err)
	}

	var rows []activityRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	activities := make([]domain.Activity, len(rows))
	for i, row := range rows {
		activities[i] = row.toDomain()
	}
	return activities, nil
}

// CountByBoard returns the total number of activities recorded for a board.
func (r *Repo) CountByBoard(ctx context.Context, boardID uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var n int
	if err := q.QueryRow(ctx, `SELECT count(*) FROM activities WHERE board_id = $1`, boardID).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "board", boardID)
	}
	return n, nil
}
