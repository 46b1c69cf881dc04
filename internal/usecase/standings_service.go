package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/puzzle-league/internal/domain/game"
	"github.com/riskibarqy/puzzle-league/internal/domain/handicap"
	"github.com/riskibarqy/puzzle-league/internal/domain/league"
	"github.com/riskibarqy/puzzle-league/internal/domain/score"
	"github.com/riskibarqy/puzzle-league/internal/domain/standings"
	"github.com/riskibarqy/puzzle-league/internal/platform/cache"
	"github.com/riskibarqy/puzzle-league/internal/platform/logging"
)

const standingsCachePrefix = "standings:"

type StandingsService struct {
	leagues   league.Repository
	games     game.Repository
	scores    score.Repository
	handicaps handicap.Repository
	cache     *cache.Store
	logger    *logging.Logger
}

// NewStandingsService builds the service. A nil store disables caching.
func NewStandingsService(
	leagues league.Repository,
	games game.Repository,
	scores score.Repository,
	handicaps handicap.Repository,
	store *cache.Store,
	logger *logging.Logger,
) *StandingsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StandingsService{
		leagues:   leagues,
		games:     games,
		scores:    scores,
		handicaps: handicaps,
		cache:     store,
		logger:    logger,
	}
}

func standingsKey(leagueID string) string {
	return standingsCachePrefix + leagueID
}

// Compute returns the league's standings, all or nothing.
func (s *StandingsService) Compute(ctx context.Context, leagueID string) (standings.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Compute", attribute.String("league.id", leagueID))
	var err error
	defer func() { endSpan(span, err) }()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		err = fmt.Errorf("%w: league id is required", ErrInvalidInput)
		return standings.Result{}, err
	}

	result, err := cache.Load(ctx, s.cache, standingsKey(leagueID), func(ctx context.Context) (standings.Result, error) {
		return s.compute(ctx, leagueID)
	})
	return result, err
}

func (s *StandingsService) compute(ctx context.Context, leagueID string) (standings.Result, error) {
	if _, err := requireLeague(ctx, s.leagues, leagueID); err != nil {
		return standings.Result{}, err
	}

	var (
		in      = standings.Input{LeagueID: leagueID}
		catalog []game.Game
		rules   []handicap.Rule
	)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		members, err := s.leagues.ListMemberIDs(ctx, leagueID)
		if err != nil {
			return unavailable("list league members", err)
		}
		in.Members = members
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.games.List(ctx)
		if err != nil {
			return unavailable("list games", err)
		}
		catalog = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		activations, err := s.leagues.ListActivations(ctx, leagueID)
		if err != nil {
			return unavailable("list league games", err)
		}
		in.Activations = activations
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.handicaps.ListByLeague(ctx, leagueID)
		if err != nil {
			return unavailable("list handicaps", err)
		}
		rules = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		records, err := s.scores.List(ctx, score.Filter{LeagueID: leagueID})
		if err != nil {
			return unavailable("list league scores", err)
		}
		in.Scores = records
		return nil
	})
	if err := p.Wait(); err != nil {
		return standings.Result{}, err
	}

	in.Games = make(map[string]game.Game, len(catalog))
	for _, g := range catalog {
		in.Games[g.ID] = g
	}
	in.Handicaps = handicap.NewBook(rules)

	result := standings.Compute(in)
	s.logger.DebugContext(ctx, "standings computed",
		"league_id", leagueID,
		"members", len(in.Members),
		"scores", len(in.Scores),
		"dates", len(result.Daily),
	)
	return result, nil
}

// Invalidate drops cached standings for the given leagues.
func (s *StandingsService) Invalidate(ctx context.Context, leagueIDs ...string) {
	if s.cache == nil {
		return
	}
	for _, leagueID := range leagueIDs {
		s.cache.Delete(ctx, standingsKey(leagueID))
	}
}
