package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/puzzle-league/internal/domain/game"
	"github.com/riskibarqy/puzzle-league/internal/domain/shareparse"
)

// GameRef identifies a game by id, slug or puzzle page path, in that order
// of preference.
type GameRef struct {
	ID       string
	Slug     string
	PagePath string
}

type GameService struct {
	repo game.Repository
}

func NewGameService(repo game.Repository) *GameService {
	return &GameService{repo: repo}
}

func (s *GameService) List(ctx context.Context) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.List")
	var err error
	defer func() { endSpan(span, err) }()

	items, err := s.repo.List(ctx)
	if err != nil {
		err = unavailable("list games", err)
		return nil, err
	}
	return items, nil
}

func (s *GameService) Resolve(ctx context.Context, ref GameRef) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Resolve",
		attribute.String("game.id", ref.ID),
		attribute.String("game.slug", ref.Slug),
	)
	g, err := resolveGame(ctx, s.repo, ref)
	endSpan(span, err)
	return g, err
}

func resolveGame(ctx context.Context, repo game.Repository, ref GameRef) (game.Game, error) {
	id := strings.TrimSpace(ref.ID)
	slug := strings.ToLower(strings.TrimSpace(ref.Slug))
	if id == "" && slug == "" && strings.TrimSpace(ref.PagePath) != "" {
		resolved, ok := shareparse.SlugForPath(ref.PagePath)
		if !ok {
			return game.Game{}, fmt.Errorf("%w: no game for page path %q", ErrNotFound, ref.PagePath)
		}
		slug = resolved
	}

	var (
		g      game.Game
		exists bool
		err    error
	)
	switch {
	case id != "":
		g, exists, err = repo.GetByID(ctx, id)
	case slug != "":
		g, exists, err = repo.GetBySlug(ctx, slug)
	default:
		return game.Game{}, fmt.Errorf("%w: game_id, game_slug or page_path is required", ErrInvalidInput)
	}
	if err != nil {
		return game.Game{}, unavailable("get game", err)
	}
	if !exists {
		return game.Game{}, fmt.Errorf("%w: game id=%q slug=%q", ErrNotFound, id, slug)
	}
	return g, nil
}
