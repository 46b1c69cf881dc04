package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/puzzle-league/internal/domain/handicap"
	"github.com/riskibarqy/puzzle-league/internal/domain/league"
	"github.com/riskibarqy/puzzle-league/internal/platform/calendar"
	"github.com/riskibarqy/puzzle-league/internal/platform/id"
)

// HandicapInput is one rule as written by a league admin. Multiplier keys are
// weekdays ("0".."6" or names) and values are factors or percentages.
type HandicapInput struct {
	UserID      string
	GameID      string
	StartDate   string
	EndDate     *string
	Multipliers map[string]string
}

type HandicapService struct {
	leagues     league.Repository
	handicaps   handicap.Repository
	ids         id.Generator
	invalidator StandingsInvalidator
	now         func() time.Time
}

func NewHandicapService(leagues league.Repository, handicaps handicap.Repository, ids id.Generator, invalidator StandingsInvalidator) *HandicapService {
	return &HandicapService{
		leagues:     leagues,
		handicaps:   handicaps,
		ids:         ids,
		invalidator: invalidator,
		now:         time.Now,
	}
}

func (s *HandicapService) List(ctx context.Context, leagueID string) ([]handicap.Rule, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HandicapService.List", attribute.String("league.id", leagueID))
	var err error
	defer func() { endSpan(span, err) }()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		err = fmt.Errorf("%w: league id is required", ErrInvalidInput)
		return nil, err
	}
	if _, err = requireLeague(ctx, s.leagues, leagueID); err != nil {
		return nil, err
	}
	rules, err := s.handicaps.ListByLeague(ctx, leagueID)
	if err != nil {
		err = unavailable("list handicaps", err)
		return nil, err
	}
	return rules, nil
}

// Replace swaps the league's handicap rules for inputs.
func (s *HandicapService) Replace(ctx context.Context, leagueID string, inputs []HandicapInput) ([]handicap.Rule, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HandicapService.Replace", attribute.String("league.id", leagueID))
	var err error
	defer func() { endSpan(span, err) }()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		err = fmt.Errorf("%w: league id is required", ErrInvalidInput)
		return nil, err
	}
	if _, err = requireLeague(ctx, s.leagues, leagueID); err != nil {
		return nil, err
	}
	members, err := s.leagues.ListMemberIDs(ctx, leagueID)
	if err != nil {
		err = unavailable("list league members", err)
		return nil, err
	}
	isMember := make(map[string]bool, len(members))
	for _, m := range members {
		isMember[m] = true
	}

	now := s.now().UTC()
	rules := make([]handicap.Rule, 0, len(inputs))
	for i, in := range inputs {
		var rule handicap.Rule
		rule, err = s.buildRule(leagueID, in, now)
		if err != nil {
			err = fmt.Errorf("%w: rule %d: %v", ErrInvalidInput, i, err)
			return nil, err
		}
		if !isMember[rule.UserID] {
			err = fmt.Errorf("%w: rule %d: user %s is not a league member", ErrInvalidInput, i, rule.UserID)
			return nil, err
		}
		rules = append(rules, rule)
	}
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].UserID != rules[j].UserID {
			return rules[i].UserID < rules[j].UserID
		}
		return rules[i].StartDate < rules[j].StartDate
	})

	if err = s.handicaps.ReplaceByLeague(ctx, leagueID, rules); err != nil {
		err = unavailable("replace handicaps", err)
		return nil, err
	}
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, leagueID)
	}
	return rules, nil
}

func (s *HandicapService) buildRule(leagueID string, in HandicapInput, now time.Time) (handicap.Rule, error) {
	start, err := calendar.Parse(in.StartDate)
	if err != nil {
		return handicap.Rule{}, err
	}
	var end *string
	if in.EndDate != nil && strings.TrimSpace(*in.EndDate) != "" {
		parsed, err := calendar.Parse(*in.EndDate)
		if err != nil {
			return handicap.Rule{}, err
		}
		end = &parsed
	}

	multipliers := make(map[time.Weekday]float64, len(in.Multipliers))
	for rawDay, rawValue := range in.Multipliers {
		day, err := handicap.ParseWeekday(rawDay)
		if err != nil {
			return handicap.Rule{}, err
		}
		if _, dup := multipliers[day]; dup {
			return handicap.Rule{}, fmt.Errorf("weekday %s given more than once", day)
		}
		m, err := handicap.ParseMultiplier(rawValue)
		if err != nil {
			return handicap.Rule{}, err
		}
		multipliers[day] = m
	}

	ruleID, err := s.ids.NewID()
	if err != nil {
		return handicap.Rule{}, err
	}
	rule := handicap.Rule{
		ID:          ruleID,
		LeagueID:    leagueID,
		UserID:      strings.TrimSpace(in.UserID),
		GameID:      strings.TrimSpace(in.GameID),
		StartDate:   start,
		EndDate:     end,
		Multipliers: multipliers,
		CreatedAt:   now,
	}
	return rule, rule.Validate()
}
