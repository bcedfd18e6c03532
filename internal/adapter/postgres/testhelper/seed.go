package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/kanban-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// SeedUser inserts a user with a placeholder password hash.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()

	suffix := uniqueSuffix()
	ts := now()
	user := domain.User{
		ID:           uuid.New(),
		Email:        "testuser-" + suffix + "@example.com",
		PasswordHash: "$2a$04$placeholderplaceholderplaceholderplaceholderplaceho",
		Name:         "Test User " + suffix,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, email, password_hash, name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Email, user.PasswordHash, user.Name, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}

	return user
}

// SeedBoard inserts a board owned by ownerID.
func SeedBoard(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID) domain.Board {
	t.Helper()

	ts := now()
	board := domain.Board{
		ID:         uuid.New(),
		Name:       "Board " + uniqueSuffix(),
		Background: domain.DefaultBoardBackground,
		OwnerID:    ownerID,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO boards (id, name, background, owner_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		board.ID, board.Name, board.Background, board.OwnerID, board.CreatedAt, board.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedBoard: %v", err)
	}

	return board
}

// SeedMember adds userID to the members of boardID.
func SeedMember(t *testing.T, pool *pgxpool.Pool, boardID, userID uuid.UUID) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO board_members (board_id, user_id) VALUES ($1, $2)`, boardID, userID)
	if err != nil {
		t.Fatalf("testhelper: SeedMember: %v", err)
	}
}

// SeedList inserts an active list at the given position.
func SeedList(t *testing.T, pool *pgxpool.Pool, boardID uuid.UUID, position int) domain.List {
	t.Helper()

	ts := now()
	list := domain.List{
		ID:        uuid.New(),
		BoardID:   boardID,
		Title:     "List " + uniqueSuffix(),
		Position:  position,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO lists (id, board_id, title, position, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		list.ID, list.BoardID, list.Title, list.Position, list.CreatedAt, list.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedList: %v", err)
	}

	return list
}

// SeedCard inserts an active card at the given position of list.
func SeedCard(t *testing.T, pool *pgxpool.Pool, list domain.List, position int) domain.Card {
	t.Helper()

	ts := now()
	card := domain.Card{
		ID:        uuid.New(),
		ListID:    list.ID,
		BoardID:   list.BoardID,
		Title:     "Card " + uniqueSuffix(),
		Position:  position,
		Labels:    []domain.Label{},
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO cards (id, list_id, board_id, title, position, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		card.ID, card.ListID, card.BoardID, card.Title, card.Position, card.CreatedAt, card.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCard: %v", err)
	}

	return card
}

// ActivePositions returns the positions of non-archived rows in table whose
// parent column equals parentID, ordered ascending.
func ActivePositions(t *testing.T, pool *pgxpool.Pool, table, parentColumn string, parentID uuid.UUID) []int {
	t.Helper()

	rows, err := pool.Query(context.Background(),
		`SELECT position FROM `+table+` WHERE `+parentColumn+` = $1 AND NOT is_archived ORDER BY position`,
		parentID)
	if err != nil {
		t.Fatalf("testhelper: ActivePositions: %v", err)
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var p int
		if err := rows.Scan(&p); err != nil {
			t.Fatalf("testhelper: ActivePositions scan: %v", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("testhelper: ActivePositions rows: %v", err)
	}
	return out
}
