// Command seeder loads a demo account with one board, three lists and a few
// cards so a fresh installation has something to look at.
//
// Flags:
//
//	--reset          delete the demo account (and its boards) before seeding
//	--seeder-config  path to seeder YAML config file
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/kanban-backend/internal/adapter/postgres"
	"github.com/heartmarshall/kanban-backend/internal/app"
	"github.com/heartmarshall/kanban-backend/internal/app/seeder"
	"github.com/heartmarshall/kanban-backend/internal/config"
	"github.com/heartmarshall/kanban-backend/migrations"
)

func main() {
	resetFlag := flag.Bool("reset", false, "delete the demo account before seeding")
	seederConfigFlag := flag.String("seeder-config", "", "path to seeder YAML config file")
	flag.Parse()

	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger := app.NewLogger(appCfg.Log)

	seederCfg, err := seeder.LoadConfig(*seederConfigFlag)
	if err != nil {
		logger.Error("load seeder config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *resetFlag {
		seederCfg.Reset = true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, appCfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if appCfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, migrations.FS, logger); err != nil {
			logger.Error("migrate", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	svc := app.NewServices(appCfg, logger, pool)
	pipeline := seeder.NewPipeline(logger, seeder.Deps{
		Users:  svc.Users,
		Auth:   svc.Auth,
		Boards: svc.Board,
		Lists:  svc.List,
		Cards:  svc.Card,
	}, *seederCfg)

	res, err := pipeline.Run(ctx)
	if err != nil {
		logger.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if res.Skipped {
		logger.Info("seed skipped, demo account already exists; rerun with --reset to recreate it",
			slog.String("email", seederCfg.Email))
		return
	}
	logger.Info("seed completed successfully",
		slog.String("email", seederCfg.Email),
		slog.Int("lists", res.Lists),
		slog.Int("cards", res.Cards),
	)
}
