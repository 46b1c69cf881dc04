package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/puzzle-league/internal/domain/game"
	"github.com/riskibarqy/puzzle-league/internal/domain/league"
	"github.com/riskibarqy/puzzle-league/internal/domain/score"
	"github.com/riskibarqy/puzzle-league/internal/platform/calendar"
	"github.com/riskibarqy/puzzle-league/internal/platform/logging"
)

// StandingsInvalidator drops cached standings after score or handicap writes.
type StandingsInvalidator interface {
	Invalidate(ctx context.Context, leagueIDs ...string)
}

type DailySubmission struct {
	UserID string
	GameID string
	Score  float64
}

type DailySubmissionResult struct {
	Date      string
	Scores    []score.Record
	LeagueIDs []string
}

type Submission struct {
	UserID   string
	LeagueID string
	GameID   string
	Date     string
	Score    float64
}

type StatsQuery struct {
	UserID   string
	LeagueID string
	GameID   string
	From     string
	To       string
}

// ScoreWithGame pairs a stored score with its game for history views.
type ScoreWithGame struct {
	score.Record
	Game game.Game
}

type ScoreService struct {
	games       game.Repository
	leagues     league.Repository
	scores      score.Repository
	invalidator StandingsInvalidator
	location    *time.Location
	now         func() time.Time
	logger      *logging.Logger
}

func NewScoreService(
	games game.Repository,
	leagues league.Repository,
	scores score.Repository,
	invalidator StandingsInvalidator,
	location *time.Location,
	logger *logging.Logger,
) *ScoreService {
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoreService{
		games:       games,
		leagues:     leagues,
		scores:      scores,
		invalidator: invalidator,
		location:    location,
		now:         time.Now,
		logger:      logger,
	}
}

// Today is the server civil date all daily submissions are filed under.
func (s *ScoreService) Today() string {
	return calendar.Today(s.location, s.now())
}

// SubmitDaily files today's score in every league of the user where the game
// is active. Users without such a league get it in their personal league.
func (s *ScoreService) SubmitDaily(ctx context.Context, input DailySubmission) (DailySubmissionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.SubmitDaily",
		attribute.String("user.id", input.UserID),
		attribute.String("game.id", input.GameID),
	)
	result, err := s.submitDaily(ctx, input)
	endSpan(span, err)
	return result, err
}

func (s *ScoreService) submitDaily(ctx context.Context, input DailySubmission) (DailySubmissionResult, error) {
	userID := strings.TrimSpace(input.UserID)
	gameID := strings.TrimSpace(input.GameID)
	if userID == "" || gameID == "" {
		return DailySubmissionResult{}, fmt.Errorf("%w: user_id and game_id are required", ErrInvalidInput)
	}
	if err := validateScoreValue(input.Score); err != nil {
		return DailySubmissionResult{}, err
	}
	if _, err := resolveGame(ctx, s.games, GameRef{ID: gameID}); err != nil {
		return DailySubmissionResult{}, err
	}

	date := s.Today()
	memberOf, err := s.leagues.ListLeagueIDsByMember(ctx, userID)
	if err != nil {
		return DailySubmissionResult{}, unavailable("list user leagues", err)
	}

	var targets []string
	if len(memberOf) > 0 {
		targets, err = s.leagues.ListActiveLeagueIDsForGame(ctx, memberOf, gameID, date)
		if err != nil {
			return DailySubmissionResult{}, unavailable("list active leagues for game", err)
		}
	}
	if len(targets) == 0 {
		personal, err := s.leagues.EnsurePersonalLeague(ctx, userID, gameID, date)
		if err != nil {
			return DailySubmissionResult{}, unavailable("ensure personal league", err)
		}
		s.logger.InfoContext(ctx, "daily score routed to personal league", "user_id", userID, "game_id", gameID, "league_id", personal.ID)
		targets = []string{personal.ID}
	}
	sort.Strings(targets)

	records := make([]score.Record, 0, len(targets))
	for _, leagueID := range targets {
		records = append(records, score.Record{
			UserID:   userID,
			LeagueID: leagueID,
			GameID:   gameID,
			Date:     date,
			Score:    input.Score,
		})
	}
	saved, err := s.upsert(ctx, records)
	if err != nil {
		return DailySubmissionResult{}, err
	}

	return DailySubmissionResult{Date: date, Scores: saved, LeagueIDs: targets}, nil
}

// Submit records a score for an explicit league and date.
func (s *ScoreService) Submit(ctx context.Context, input Submission) (score.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.Submit",
		attribute.String("league.id", input.LeagueID),
		attribute.String("game.id", input.GameID),
	)
	rec, err := s.submit(ctx, input)
	endSpan(span, err)
	return rec, err
}

func (s *ScoreService) submit(ctx context.Context, input Submission) (score.Record, error) {
	rec := score.Record{
		UserID:   strings.TrimSpace(input.UserID),
		LeagueID: strings.TrimSpace(input.LeagueID),
		GameID:   strings.TrimSpace(input.GameID),
		Score:    input.Score,
	}
	if rec.UserID == "" || rec.LeagueID == "" || rec.GameID == "" {
		return score.Record{}, fmt.Errorf("%w: user_id, league_id and game_id are required", ErrInvalidInput)
	}
	if err := validateScoreValue(input.Score); err != nil {
		return score.Record{}, err
	}
	rec.Date = s.Today()
	if strings.TrimSpace(input.Date) != "" {
		date, err := calendar.Parse(input.Date)
		if err != nil {
			return score.Record{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		rec.Date = date
	}

	if _, err := requireLeague(ctx, s.leagues, rec.LeagueID); err != nil {
		return score.Record{}, err
	}
	member, err := s.leagues.IsMember(ctx, rec.LeagueID, rec.UserID)
	if err != nil {
		return score.Record{}, unavailable("check league membership", err)
	}
	if !member {
		return score.Record{}, fmt.Errorf("%w: user %s is not a member of league %s", ErrForbidden, rec.UserID, rec.LeagueID)
	}
	if _, err := resolveGame(ctx, s.games, GameRef{ID: rec.GameID}); err != nil {
		return score.Record{}, err
	}
	activations, err := s.leagues.ListActivations(ctx, rec.LeagueID)
	if err != nil {
		return score.Record{}, unavailable("list league games", err)
	}
	if !hasGame(activations, rec.GameID) {
		return score.Record{}, fmt.Errorf("%w: game %s is not part of league %s", ErrInvalidInput, rec.GameID, rec.LeagueID)
	}

	saved, err := s.upsert(ctx, []score.Record{rec})
	if err != nil {
		return score.Record{}, err
	}
	return saved[0], nil
}

func (s *ScoreService) upsert(ctx context.Context, records []score.Record) ([]score.Record, error) {
	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	saved, err := s.scores.Upsert(ctx, records)
	if err != nil {
		return nil, unavailable("upsert scores", err)
	}

	if s.invalidator != nil {
		leagueIDs := make([]string, 0, len(records))
		for _, rec := range records {
			leagueIDs = append(leagueIDs, rec.LeagueID)
		}
		s.invalidator.Invalidate(ctx, leagueIDs...)
	}
	s.logger.InfoContext(ctx, "scores saved", "count", len(saved), "user_id", records[0].UserID, "game_id", records[0].GameID, "date", records[0].Date)
	return saved, nil
}

// Stats lists a user's score history, newest first.
func (s *ScoreService) Stats(ctx context.Context, query StatsQuery) ([]ScoreWithGame, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.Stats", attribute.String("user.id", query.UserID))
	items, err := s.stats(ctx, query)
	endSpan(span, err)
	return items, err
}

func (s *ScoreService) stats(ctx context.Context, query StatsQuery) ([]ScoreWithGame, error) {
	filter := score.Filter{
		UserID:   strings.TrimSpace(query.UserID),
		LeagueID: strings.TrimSpace(query.LeagueID),
		GameID:   strings.TrimSpace(query.GameID),
	}
	if filter.UserID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	for _, bound := range []struct {
		raw string
		dst *string
	}{{query.From, &filter.From}, {query.To, &filter.To}} {
		if strings.TrimSpace(bound.raw) == "" {
			continue
		}
		date, err := calendar.Parse(bound.raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		*bound.dst = date
	}
	if filter.From != "" && filter.To != "" && filter.From > filter.To {
		return nil, fmt.Errorf("%w: from must not be after to", ErrInvalidInput)
	}
	return s.listWithGames(ctx, filter)
}

// TodayFor lists the user's scores filed under today's date.
func (s *ScoreService) TodayFor(ctx context.Context, userID string) ([]ScoreWithGame, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.TodayFor", attribute.String("user.id", userID))
	var err error
	defer func() { endSpan(span, err) }()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		err = fmt.Errorf("%w: user id is required", ErrInvalidInput)
		return nil, err
	}
	today := s.Today()
	items, err := s.listWithGames(ctx, score.Filter{UserID: userID, From: today, To: today})
	return items, err
}

func (s *ScoreService) listWithGames(ctx context.Context, filter score.Filter) ([]ScoreWithGame, error) {
	records, err := s.scores.List(ctx, filter)
	if err != nil {
		return nil, unavailable("list scores", err)
	}
	catalog, err := s.games.List(ctx)
	if err != nil {
		return nil, unavailable("list games", err)
	}
	byID := make(map[string]game.Game, len(catalog))
	for _, g := range catalog {
		byID[g.ID] = g
	}

	items := make([]ScoreWithGame, 0, len(records))
	for _, rec := range records {
		items = append(items, ScoreWithGame{Record: rec, Game: byID[rec.GameID]})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Date != items[j].Date {
			return items[i].Date > items[j].Date
		}
		if items[i].GameID != items[j].GameID {
			return items[i].GameID < items[j].GameID
		}
		return items[i].LeagueID < items[j].LeagueID
	})
	return items, nil
}

func validateScoreValue(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%w: score must be a finite number >= 0", ErrInvalidInput)
	}
	return nil
}

func requireLeague(ctx context.Context, repo league.Repository, leagueID string) (league.League, error) {
	l, exists, err := repo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, unavailable("get league", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	return l, nil
}

func hasGame(activations []league.Activation, gameID string) bool {
	for _, a := range activations {
		if a.GameID == gameID {
			return true
		}
	}
	return false
}
