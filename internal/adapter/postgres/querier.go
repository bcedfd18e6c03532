package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/kanban-backend/internal/domain"
)

// Querier is the common interface implemented by both *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Psql builds statements with PostgreSQL $n placeholders.
var Psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// unexported context key type for storing tx
type txCtxKey struct{}

// withTx puts a transaction into the context.
func withTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txCtxKey{}, tx)
}

func txFromCtx(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txCtxKey{}).(pgx.Tx)
	return tx, ok
}

// QuerierFromCtx returns the transaction from context if present,
// otherwise returns db (usually the pool).
func QuerierFromCtx(ctx context.Context, db Querier) Querier {
	if tx, ok := txFromCtx(ctx); ok {
		return tx
	}
	return db
}

// SendBatchExec sends a pgx.Batch and returns the total rows affected.
func SendBatchExec(ctx context.Context, q Querier, batch *pgx.Batch) (int64, error) {
	results := q.SendBatch(ctx, batch)
	defer results.Close()

	var affected int64
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			if isConflict(err) {
				return affected, fmt.Errorf("batch exec: %w: %w", domain.ErrConflict, err)
			}
			return affected, fmt.Errorf("batch exec: %w", err)
		}
		affected += tag.RowsAffected()
	}

	return affected, nil
}
