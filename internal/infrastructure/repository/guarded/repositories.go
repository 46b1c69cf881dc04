// Package guarded puts a circuit breaker in front of storage so a failing
// database is reported as unavailable without waiting on every call.
package guarded

import (
	"context"

	"github.com/riskibarqy/puzzle-league/internal/domain/game"
	"github.com/riskibarqy/puzzle-league/internal/domain/handicap"
	"github.com/riskibarqy/puzzle-league/internal/domain/league"
	"github.com/riskibarqy/puzzle-league/internal/domain/score"
	"github.com/riskibarqy/puzzle-league/internal/platform/resilience"
)

type lookup[T any] struct {
	value  T
	exists bool
}

func find[T any](ctx context.Context, b *resilience.CircuitBreaker, fn func(context.Context) (T, bool, error)) (T, bool, error) {
	out, err := resilience.Call(ctx, b, func(ctx context.Context) (lookup[T], error) {
		v, ok, err := fn(ctx)
		return lookup[T]{value: v, exists: ok}, err
	})
	return out.value, out.exists, err
}

type GameRepository struct {
	next    game.Repository
	breaker *resilience.CircuitBreaker
}

func NewGameRepository(next game.Repository, breaker *resilience.CircuitBreaker) *GameRepository {
	return &GameRepository{next: next, breaker: breaker}
}

func (r *GameRepository) List(ctx context.Context) ([]game.Game, error) {
	return resilience.Call(ctx, r.breaker, r.next.List)
}

func (r *GameRepository) GetByID(ctx context.Context, gameID string) (game.Game, bool, error) {
	return find(ctx, r.breaker, func(ctx context.Context) (game.Game, bool, error) {
		return r.next.GetByID(ctx, gameID)
	})
}

func (r *GameRepository) GetBySlug(ctx context.Context, slug string) (game.Game, bool, error) {
	return find(ctx, r.breaker, func(ctx context.Context) (game.Game, bool, error) {
		return r.next.GetBySlug(ctx, slug)
	})
}

type LeagueRepository struct {
	next    league.Repository
	breaker *resilience.CircuitBreaker
}

func NewLeagueRepository(next league.Repository, breaker *resilience.CircuitBreaker) *LeagueRepository {
	return &LeagueRepository{next: next, breaker: breaker}
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	return find(ctx, r.breaker, func(ctx context.Context) (league.League, bool, error) {
		return r.next.GetByID(ctx, leagueID)
	})
}

func (r *LeagueRepository) ListMemberIDs(ctx context.Context, leagueID string) ([]string, error) {
	return resilience.Call(ctx, r.breaker, func(ctx context.Context) ([]string, error) {
		return r.next.ListMemberIDs(ctx, leagueID)
	})
}

func (r *LeagueRepository) ListLeagueIDsByMember(ctx context.Context, userID string) ([]string, error) {
	return resilience.Call(ctx, r.breaker, func(ctx context.Context) ([]string, error) {
		return r.next.ListLeagueIDsByMember(ctx, userID)
	})
}

func (r *LeagueRepository) IsMember(ctx context.Context, leagueID, userID string) (bool, error) {
	return resilience.Call(ctx, r.breaker, func(ctx context.Context) (bool, error) {
		return r.next.IsMember(ctx, leagueID, userID)
	})
}

func (r *LeagueRepository) ListActivations(ctx context.Context, leagueID string) ([]league.Activation, error) {
	return resilience.Call(ctx, r.breaker, func(ctx context.Context) ([]league.Activation, error) {
		return r.next.ListActivations(ctx, leagueID)
	})
}

func (r *LeagueRepository) ListActiveLeagueIDsForGame(ctx context.Context, leagueIDs []string, gameID, date string) ([]string, error) {
	return resilience.Call(ctx, r.breaker, func(ctx context.Context) ([]string, error) {
		return r.next.ListActiveLeagueIDsForGame(ctx, leagueIDs, gameID, date)
	})
}

func (r *LeagueRepository) EnsurePersonalLeague(ctx context.Context, userID, gameID, date string) (league.League, error) {
	return resilience.Call(ctx, r.breaker, func(ctx context.Context) (league.League, error) {
		return r.next.EnsurePersonalLeague(ctx, userID, gameID, date)
	})
}

type ScoreRepository struct {
	next    score.Repository
	breaker *resilience.CircuitBreaker
}

func NewScoreRepository(next score.Repository, breaker *resilience.CircuitBreaker) *ScoreRepository {
	return &ScoreRepository{next: next, breaker: breaker}
}

func (r *ScoreRepository) Upsert(ctx context.Context, records []score.Record) ([]score.Record, error) {
	return resilience.Call(ctx, r.breaker, func(ctx context.Context) ([]score.Record, error) {
		return r.next.Upsert(ctx, records)
	})
}

func (r *ScoreRepository) List(ctx context.Context, filter score.Filter) ([]score.Record, error) {
	return resilience.Call(ctx, r.breaker, func(ctx context.Context) ([]score.Record, error) {
		return r.next.List(ctx, filter)
	})
}

type HandicapRepository struct {
	next    handicap.Repository
	breaker *resilience.CircuitBreaker
}

func NewHandicapRepository(next handicap.Repository, breaker *resilience.CircuitBreaker) *HandicapRepository {
	return &HandicapRepository{next: next, breaker: breaker}
}

func (r *HandicapRepository) ListByLeague(ctx context.Context, leagueID string) ([]handicap.Rule, error) {
	return resilience.Call(ctx, r.breaker, func(ctx context.Context) ([]handicap.Rule, error) {
		return r.next.ListByLeague(ctx, leagueID)
	})
}

func (r *HandicapRepository) ReplaceByLeague(ctx context.Context, leagueID string, rules []handicap.Rule) error {
	return r.breaker.Do(ctx, func(ctx context.Context) error {
		return r.next.ReplaceByLeague(ctx, leagueID, rules)
	})
}
