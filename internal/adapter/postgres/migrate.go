package postgres

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrate applies all pending goose migrations from fsys using the pool's
// connection settings.
func Migrate(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS, log *slog.Logger) error {
	return withProvider(pool, fsys, func(p *goose.Provider) error {
		results, err := p.Up(ctx)
		if err != nil {
			return fmt.Errorf("goose up: %w", err)
		}

		for _, r := range results {
			log.InfoContext(ctx, "migration applied",
				slog.Int64("version", r.Source.Version),
				slog.Duration("duration", r.Duration))
		}
		return nil
	})
}

// MigrateDown rolls back the most recently applied migration.
func MigrateDown(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS, log *slog.Logger) error {
	return withProvider(pool, fsys, func(p *goose.Provider) error {
		r, err := p.Down(ctx)
		if err != nil {
			return fmt.Errorf("goose down: %w", err)
		}

		log.InfoContext(ctx, "migration rolled back",
			slog.Int64("version", r.Source.Version),
			slog.Duration("duration", r.Duration))
		return nil
	})
}

// MigrationStatus logs the state of every known migration.
func MigrationStatus(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS, log *slog.Logger) error {
	return withProvider(pool, fsys, func(p *goose.Provider) error {
		statuses, err := p.Status(ctx)
		if err != nil {
			return fmt.Errorf("goose status: %w", err)
		}

		for _, s := range statuses {
			log.InfoContext(ctx, "migration",
				slog.Int64("version", s.Source.Version),
				slog.String("path", s.Source.Path),
				slog.String("state", string(s.State)),
				slog.Time("applied_at", s.AppliedAt))
		}
		return nil
	})
}

func withProvider(pool *pgxpool.Pool, fsys fs.FS, fn func(*goose.Provider) error) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}
	return fn(provider)
}

// SchemaInfo reads the applied schema version against the migrations
// bundled with the binary.
type SchemaInfo struct {
	pool *pgxpool.Pool
	fsys fs.FS
}

// NewSchemaInfo creates a SchemaInfo over the given migrations.
func NewSchemaInfo(pool *pgxpool.Pool, fsys fs.FS) *SchemaInfo {
	return &SchemaInfo{pool: pool, fsys: fsys}
}

// SchemaVersions returns the version applied to the database and the newest
// version available in the migrations.
func (s *SchemaInfo) SchemaVersions(ctx context.Context) (current, target int64, err error) {
	err = withProvider(s.pool, s.fsys, func(p *goose.Provider) error {
		current, target, err = p.GetVersions(ctx)
		if err != nil {
			return fmt.Errorf("goose versions: %w", err)
		}
		return nil
	})
	return current, target, err
}
