package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/riskibarqy/puzzle-league/internal/domain/game"
)

type GameRepository struct {
	mu     sync.RWMutex
	items  map[string]game.Game
	slugs  map[string]string
	orders []string
}

func NewGameRepository(games []game.Game) *GameRepository {
	items := make(map[string]game.Game, len(games))
	slugs := make(map[string]string, len(games))
	orders := make([]string, 0, len(games))

	for _, g := range games {
		if _, exists := items[g.ID]; !exists {
			orders = append(orders, g.ID)
		}
		items[g.ID] = cloneGame(g)
		slugs[strings.ToLower(g.Slug)] = g.ID
	}

	return &GameRepository{
		items:  items,
		slugs:  slugs,
		orders: orders,
	}
}

func (r *GameRepository) List(_ context.Context) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, cloneGame(r.items[id]))
	}
	return out, nil
}

func (r *GameRepository) GetByID(_ context.Context, gameID string) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.items[gameID]
	if !ok {
		return game.Game{}, false, nil
	}
	return cloneGame(g), true, nil
}

func (r *GameRepository) GetBySlug(_ context.Context, slug string) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.slugs[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return game.Game{}, false, nil
	}
	return cloneGame(r.items[id]), true, nil
}

func cloneGame(g game.Game) game.Game {
	if g.Parser != nil {
		cfg := *g.Parser
		g.Parser = &cfg
	}
	return g
}
