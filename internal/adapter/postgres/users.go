package postgres

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/kanban-backend/internal/domain"
)

// UserRefColumns is the public projection of a joined users row aliased "u".
// The password hash is never part of it.
const UserRefColumns = `u.id, u.email, u.name, u.avatar_url, u.created_at, u.updated_at`

// ScanUserRef scans the UserRefColumns projection.
func ScanUserRef(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GroupUsers consumes rows of (key, UserRefColumns...) and groups the
// users by the leading id, preserving row order within each group.
func GroupUsers(rows pgx.Rows) (map[uuid.UUID][]domain.User, error) {
	defer rows.Close()

	out := make(map[uuid.UUID][]domain.User)
	for rows.Next() {
		var (
			key uuid.UUID
			u   domain.User
		)
		if err := rows.Scan(&key, &u.ID, &u.Email, &u.Name, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan grouped user: %w", err)
		}
		out[key] = append(out[key], u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("grouped users rows: %w", err)
	}

	return out, nil
}
