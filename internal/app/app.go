package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/kanban-backend/internal/adapter/postgres"
	activityrepo "github.com/heartmarshall/kanban-backend/internal/adapter/postgres/activity"
	boardrepo "github.com/heartmarshall/kanban-backend/internal/adapter/postgres/board"
	cardrepo "github.com/heartmarshall/kanban-backend/internal/adapter/postgres/card"
	listrepo "github.com/heartmarshall/kanban-backend/internal/adapter/postgres/list"
	userrepo "github.com/heartmarshall/kanban-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/kanban-backend/internal/adapter/redis"
	authpkg "github.com/heartmarshall/kanban-backend/internal/auth"
	"github.com/heartmarshall/kanban-backend/internal/config"
	"github.com/heartmarshall/kanban-backend/internal/service/access"
	"github.com/heartmarshall/kanban-backend/internal/service/activity"
	"github.com/heartmarshall/kanban-backend/internal/service/auth"
	"github.com/heartmarshall/kanban-backend/internal/service/board"
	"github.com/heartmarshall/kanban-backend/internal/service/card"
	"github.com/heartmarshall/kanban-backend/internal/service/list"
	"github.com/heartmarshall/kanban-backend/internal/service/user"
	"github.com/heartmarshall/kanban-backend/internal/transport/middleware"
	"github.com/heartmarshall/kanban-backend/internal/transport/rest"
	"github.com/heartmarshall/kanban-backend/migrations"
)

// Run is the application entry point. It loads configuration, connects to
// PostgreSQL, wires repositories, services and HTTP handlers, and serves
// until ctx is cancelled, then shuts the server down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("env", cfg.App.Env),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, migrations.FS, logger); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
	}

	limits, closeLimits, err := newLimitStore(ctx, cfg.RateLimit, logger)
	if err != nil {
		return err
	}
	defer closeLimits()

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           NewHandler(cfg, logger, pool, limits),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("application stopped")
	return nil
}

// Services holds the application services built over one pool.
type Services struct {
	Users    *userrepo.Repo
	Auth     *auth.Service
	User     *user.Service
	Board    *board.Service
	List     *list.Service
	Card     *card.Service
	Activity *activity.Service
}

// NewServices wires repositories, the access gate and every application
// service on top of pool.
func NewServices(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool) *Services {
	txm := postgres.NewTxManager(pool)

	users := userrepo.New(pool)
	boards := boardrepo.New(pool)
	lists := listrepo.New(pool)
	cards := cardrepo.New(pool)
	activities := activityrepo.New(pool)

	gate := access.NewGate(boards)

	hasher := authpkg.NewPasswordHasher(cfg.Auth.BcryptCost)
	tokens := authpkg.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)

	return &Services{
		Users:    users,
		Auth:     auth.NewService(logger, users, hasher, tokens),
		User:     user.NewService(logger, users),
		Board:    board.NewService(logger, boards, users, lists, cards, activities, gate, txm),
		List:     list.NewService(logger, lists, boards, cards, activities, gate, txm),
		Card:     card.NewService(logger, cards, lists, users, activities, gate, txm),
		Activity: activity.NewService(logger, activities, gate, cfg.Activity),
	}
}

// NewHandler builds the full HTTP handler: services, REST handlers and the
// middleware chain around the router.
func NewHandler(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool, limits middleware.LimitStore) http.Handler {
	svc := NewServices(cfg, logger, pool)
	re := rest.NewResponder(logger, cfg.App.IsDevelopment())

	router := rest.NewRouter(rest.Handlers{
		Health:   rest.NewHealthHandler(pool, postgres.NewSchemaInfo(pool, migrations.FS), Version),
		Auth:     rest.NewAuthHandler(svc.Auth, svc.User, re),
		Board:    rest.NewBoardHandler(svc.Board, re),
		List:     rest.NewListHandler(svc.List, re),
		Card:     rest.NewCardHandler(svc.Card, re),
		Activity: rest.NewActivityHandler(svc.Activity, re),
	}, middleware.RateLimit(limits, "auth", cfg.RateLimit.AuthPerMinute, time.Minute, logger))

	return middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(svc.Auth),
	)(router)
}

// newLimitStore returns the Redis-backed store when a URL is configured and
// the in-memory token bucket otherwise.
func newLimitStore(ctx context.Context, cfg config.RateLimitConfig, logger *slog.Logger) (middleware.LimitStore, func(), error) {
	if cfg.RedisURL == "" {
		store := middleware.NewMemoryStore(time.Minute)
		logger.Info("rate limit store", slog.String("backend", "memory"))
		return store, store.Stop, nil
	}

	limiter, err := redis.NewLimiter(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("rate limit store: %w", err)
	}
	logger.Info("rate limit store", slog.String("backend", "redis"))
	return limiter, func() {
		if err := limiter.Close(); err != nil {
			logger.Warn("close redis limiter", slog.String("error", err.Error()))
		}
	}, nil
}
