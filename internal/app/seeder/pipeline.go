package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/kanban-backend/internal/domain"
	"github.com/heartmarshall/kanban-backend/internal/service/auth"
	"github.com/heartmarshall/kanban-backend/internal/service/board"
	"github.com/heartmarshall/kanban-backend/internal/service/card"
	"github.com/heartmarshall/kanban-backend/internal/service/list"
	"github.com/heartmarshall/kanban-backend/pkg/ctxutil"
)

type demoCard struct {
	Title       string
	Description string
	Labels      []domain.Label
}

type demoList struct {
	Title string
	Cards []demoCard
}

var (
	labelSetup    = domain.Label{ID: "1", Name: "Setup", Color: "#61bd4f"}
	labelFrontend = domain.Label{ID: "2", Name: "Frontend", Color: "#f2d600"}
	labelTesting  = domain.Label{ID: "3", Name: "Testing", Color: "#ff9f1a"}
)

const (
	demoBoardName        = "Mon Premier Projet"
	demoBoardDescription = "Un tableau de démonstration"
)

// demoLists is the seeded layout, in board order. Cards are appended in
// slice order, so slice index equals position.
var demoLists = []demoList{
	{Title: "À faire", Cards: []demoCard{
		{Title: "Ajouter les tests", Labels: []domain.Label{labelTesting}},
		{Title: "Documentation", Description: "Rédiger la documentation du projet"},
	}},
	{Title: "En cours", Cards: []demoCard{
		{Title: "Créer les composants UI", Description: "Développer les composants React avec Tailwind", Labels: []domain.Label{labelFrontend}},
		{Title: "Implémenter le drag & drop", Description: "Utiliser dnd-kit pour le glisser-déposer", Labels: []domain.Label{labelFrontend}},
	}},
	{Title: "Terminé", Cards: []demoCard{
		{Title: "Configurer le projet", Description: "Installer les dépendances et configurer l'environnement", Labels: []domain.Label{labelSetup}},
	}},
}

// Result summarizes a pipeline run.
type Result struct {
	UserID   uuid.UUID
	BoardID  uuid.UUID
	Lists    int
	Cards    int
	Skipped  bool
	Duration time.Duration
}

// Pipeline loads the demo account, board, lists and cards.
type Pipeline struct {
	log  *slog.Logger
	deps Deps
	cfg  Config
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, deps Deps, cfg Config) *Pipeline {
	return &Pipeline{log: log, deps: deps, cfg: cfg}
}

// Run seeds the demo data. An existing demo account is left untouched
// unless Reset is set, in which case it is deleted and seeded again.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	res := &Result{}

	existing, err := p.deps.Users.GetByEmail(ctx, domain.NormalizeEmail(p.cfg.Email))
	switch {
	case errors.Is(err, domain.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("lookup demo user: %w", err)
	case !p.cfg.Reset:
		p.log.Info("demo user exists, skipping", slog.String("email", existing.Email))
		res.UserID = existing.ID
		res.Skipped = true
		res.Duration = time.Since(start)
		return res, nil
	default:
		if err := p.deps.Users.Delete(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("reset demo user: %w", err)
		}
		p.log.Info("demo user reset", slog.String("user_id", existing.ID.String()))
	}

	registered, err := p.deps.Auth.Register(ctx, auth.RegisterInput{
		Email:    p.cfg.Email,
		Password: p.cfg.Password,
		Name:     p.cfg.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("register demo user: %w", err)
	}
	res.UserID = registered.User.ID
	ctx = ctxutil.WithUserID(ctx, registered.User.ID)

	background := domain.DefaultBoardBackground
	description := demoBoardDescription
	b, err := p.deps.Boards.Create(ctx, board.CreateInput{
		Name:        demoBoardName,
		Description: &description,
		Background:  &background,
	})
	if err != nil {
		return nil, fmt.Errorf("create demo board: %w", err)
	}
	res.BoardID = b.ID

	for _, dl := range demoLists {
		l, err := p.deps.Lists.Create(ctx, b.ID, list.CreateInput{Title: dl.Title})
		if err != nil {
			return nil, fmt.Errorf("create list %q: %w", dl.Title, err)
		}
		res.Lists++

		for _, dc := range dl.Cards {
			input := card.CreateInput{Title: dc.Title, Labels: dc.Labels}
			if dc.Description != "" {
				input.Description = &dc.Description
			}
			if _, err := p.deps.Cards.Create(ctx, l.ID, input); err != nil {
				return nil, fmt.Errorf("create card %q: %w", dc.Title, err)
			}
			res.Cards++
		}
	}

	res.Duration = time.Since(start)
	p.log.Info("demo data seeded",
		slog.String("user_id", res.UserID.String()),
		slog.String("board_id", res.BoardID.String()),
		slog.Int("lists", res.Lists),
		slog.Int("cards", res.Cards),
		slog.Duration("duration", res.Duration),
	)
	return res, nil
}
