// Command migrate applies or inspects the embedded goose migrations.
//
// Usage:
//
//	migrate [up|down|status]
//
// The command defaults to "up". Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/kanban-backend/internal/adapter/postgres"
	"github.com/heartmarshall/kanban-backend/internal/app"
	"github.com/heartmarshall/kanban-backend/internal/config"
	"github.com/heartmarshall/kanban-backend/migrations"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [up|down|status]\n", os.Args[0])
	}
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	run, ok := map[string]func(context.Context, *pgxpool.Pool, *slog.Logger) error{
		"up": func(ctx context.Context, p *pgxpool.Pool, l *slog.Logger) error {
			return postgres.Migrate(ctx, p, migrations.FS, l)
		},
		"down": func(ctx context.Context, p *pgxpool.Pool, l *slog.Logger) error {
			return postgres.MigrateDown(ctx, p, migrations.FS, l)
		},
		"status": func(ctx context.Context, p *pgxpool.Pool, l *slog.Logger) error {
			return postgres.MigrationStatus(ctx, p, migrations.FS, l)
		},
	}[command]
	if !ok {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := run(ctx, pool, logger); err != nil {
		logger.Error("migrate failed",
			slog.String("command", command),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	logger.Info("migrate completed", slog.String("command", command))
}
