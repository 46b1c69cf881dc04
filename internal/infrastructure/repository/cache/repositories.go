package cache

import (
	"context"
	"strings"

	"github.com/riskibarqy/puzzle-league/internal/domain/game"
	"github.com/riskibarqy/puzzle-league/internal/domain/league"
	basecache "github.com/riskibarqy/puzzle-league/internal/platform/cache"
)

// GameRepository caches the game catalog, which only changes through migrations.
type GameRepository struct {
	next  game.Repository
	cache *basecache.Store
}

func NewGameRepository(next game.Repository, cache *basecache.Store) *GameRepository {
	return &GameRepository{next: next, cache: cache}
}

func (r *GameRepository) List(ctx context.Context) ([]game.Game, error) {
	items, err := basecache.Load(ctx, r.cache, "game:list", func(ctx context.Context) ([]game.Game, error) {
		return r.next.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	return append([]game.Game(nil), items...), nil
}

func (r *GameRepository) GetByID(ctx context.Context, gameID string) (game.Game, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, "game:id:"+gameID, func(ctx context.Context) (cachedLookup[game.Game], error) {
		item, exists, err := r.next.GetByID(ctx, gameID)
		return cachedLookup[game.Game]{value: item, exists: exists}, err
	})
	if err != nil {
		return game.Game{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *GameRepository) GetBySlug(ctx context.Context, slug string) (game.Game, bool, error) {
	key := "game:slug:" + strings.ToLower(strings.TrimSpace(slug))
	cached, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) (cachedLookup[game.Game], error) {
		item, exists, err := r.next.GetBySlug(ctx, slug)
		return cachedLookup[game.Game]{value: item, exists: exists}, err
	})
	if err != nil {
		return game.Game{}, false, err
	}
	return cached.value, cached.exists, nil
}

// LeagueRepository caches league rows by id. Membership and activations change
// when personal leagues are created, so those calls go straight through.
type LeagueRepository struct {
	league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{Repository: next, cache: cache}
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	key := "league:id:" + leagueID
	cached, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) (cachedLookup[league.League], error) {
		item, exists, err := r.Repository.GetByID(ctx, leagueID)
		return cachedLookup[league.League]{value: item, exists: exists}, err
	})
	if err != nil {
		return league.League{}, false, err
	}
	if !cached.exists {
		// a personal league may be created right after a miss
		r.cache.Delete(ctx, key)
	}
	return cached.value, cached.exists, nil
}

type cachedLookup[T any] struct {
	value  T
	exists bool
}
