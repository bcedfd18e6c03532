// Package activity serves a board's activity feed.
package activity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/kanban-backend/internal/config"
	"github.com/heartmarshall/kanban-backend/internal/domain"
	"github.com/heartmarshall/kanban-backend/internal/service/access"
)

type activityRepo interface {
	ListByBoard(ctx context.Context, f domain.ActivityFilter) ([]domain.Activity, error)
	CountByBoard(ctx context.Context, boardID uuid.UUID) (int, error)
}

type accessGate interface {
	Authorize(ctx context.Context, boardID uuid.UUID, action access.Action) (*domain.Board, domain.Role, error)
}

// Service reads activity feeds.
type Service struct {
	log          *slog.Logger
	activities   activityRepo
	gate         accessGate
	defaultLimit int
	maxLimit     int
}

// NewService creates a new activity service instance.
func NewService(logger *slog.Logger, activities activityRepo, gate accessGate, cfg config.ActivityConfig) *Service {
	return &Service{
		log:          logger.With("service", "activity"),
		activities:   activities,
		gate:         gate,
		defaultLimit: cfg.DefaultLimit,
		maxLimit:     cfg.MaxLimit,
	}
}

// ListInput holds feed pagination. A zero Limit selects the default.
type ListInput struct {
	Limit  int
	Offset int
}

// Page is one page of a board's feed, newest first.
type Page struct {
	Activities []domain.Activity
	Total      int
	Limit      int
	Offset     int
}

// List returns a page of the board's activity feed. Limit is clamped to
// [1, max] and a negative offset is treated as zero.
func (s *Service) List(ctx context.Context, boardID uuid.UUID, input ListInput) (*Page, error) {
	if _, _, err := s.gate.Authorize(ctx, boardID, access.ActionRead); err != nil {
		return nil, fmt.Errorf("activity.List: %w", err)
	}

	page := &Page{Limit: s.clampLimit(input.Limit), Offset: max(input.Offset, 0)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page.Activities, err = s.activities.ListByBoard(gctx, domain.ActivityFilter{
			BoardID: boardID,
			Limit:   page.Limit,
			Offset:  page.Offset,
		})
		return err
	})
	g.Go(func() error {
		var err error
		page.Total, err = s.activities.CountByBoard(gctx, boardID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("activity.List: %w", err)
	}

	if page.Activities == nil {
		page.Activities = []domain.Activity{}
	}
	return page, nil
}

func (s *Service) clampLimit(limit int) int {
	if limit == 0 {
		limit = s.defaultLimit
	}
	return min(max(limit, 1), s.maxLimit)
}
