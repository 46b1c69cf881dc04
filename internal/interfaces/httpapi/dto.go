package httpapi

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/puzzle-league/internal/domain/game"
	"github.com/riskibarqy/puzzle-league/internal/domain/handicap"
	"github.com/riskibarqy/puzzle-league/internal/domain/score"
	"github.com/riskibarqy/puzzle-league/internal/domain/standings"
	"github.com/riskibarqy/puzzle-league/internal/usecase"
)

type parserConfigDTO struct {
	PatternType  string `json:"pattern_type"`
	Pattern      string `json:"pattern"`
	ScorePath    string `json:"score_path,omitempty"`
	CaptureGroup int    `json:"capture_group"`
}

type gameDTO struct {
	ID        string           `json:"id"`
	Slug      string           `json:"slug"`
	Name      string           `json:"name"`
	ScoreType string           `json:"score_type"`
	Parser    *parserConfigDTO `json:"parser,omitempty"`
}

func gameToDTO(g game.Game) gameDTO {
	out := gameDTO{
		ID:        g.ID,
		Slug:      g.Slug,
		Name:      g.Name,
		ScoreType: string(g.ScoreType),
	}
	if g.Parser != nil {
		out.Parser = &parserConfigDTO{
			PatternType:  string(g.Parser.PatternType),
			Pattern:      g.Parser.Pattern,
			ScorePath:    g.Parser.ScorePath,
			CaptureGroup: g.Parser.CaptureGroup,
		}
	}
	return out
}

type parseShareRequest struct {
	GameID    string `json:"game_id" validate:"required_without_all=GameSlug PagePath"`
	GameSlug  string `json:"game_slug"`
	PagePath  string `json:"page_path"`
	ShareText string `json:"share_text" validate:"max=10000"`
}

func (r parseShareRequest) toInput() usecase.ParseInput {
	return usecase.ParseInput{
		Game: usecase.GameRef{
			ID:       r.GameID,
			Slug:     r.GameSlug,
			PagePath: r.PagePath,
		},
		ShareText: r.ShareText,
	}
}

type parseBatchRequest struct {
	Items []parseShareRequest `json:"items" validate:"required,min=1,dive"`
}

type parseResultDTO struct {
	GameID string  `json:"game_id"`
	Score  float64 `json:"score"`
}

type batchItemDTO struct {
	GameID string           `json:"game_id,omitempty"`
	Score  *float64         `json:"score,omitempty"`
	Error  *googleErrorBody `json:"error,omitempty"`
}

type submitDailyRequest struct {
	UserID string   `json:"user_id" validate:"required,max=128"`
	GameID string   `json:"game_id" validate:"required,max=64"`
	Score  *float64 `json:"score" validate:"required"`
}

type submitScoreRequest struct {
	UserID   string   `json:"user_id" validate:"required,max=128"`
	LeagueID string   `json:"league_id" validate:"required,max=64"`
	GameID   string   `json:"game_id" validate:"required,max=64"`
	Date     string   `json:"date" validate:"required,datetime=2006-01-02"`
	Score    *float64 `json:"score" validate:"required"`
}

type scoreDTO struct {
	UserID    string  `json:"user_id"`
	LeagueID  string  `json:"league_id"`
	GameID    string  `json:"game_id"`
	Date      string  `json:"date"`
	Score     float64 `json:"score"`
	CreatedAt string  `json:"created_at,omitempty"`
}

func scoreToDTO(r score.Record) scoreDTO {
	out := scoreDTO{
		UserID:   r.UserID,
		LeagueID: r.LeagueID,
		GameID:   r.GameID,
		Date:     r.Date,
		Score:    r.Score,
	}
	if !r.CreatedAt.IsZero() {
		out.CreatedAt = r.CreatedAt.UTC().Format(time.RFC3339)
	}
	return out
}

type dailySubmissionDTO struct {
	Date    string     `json:"date"`
	Scores  []scoreDTO `json:"scores"`
	Leagues []string   `json:"leagues"`
}

type scoreWithGameDTO struct {
	scoreDTO
	GameSlug  string `json:"game_slug,omitempty"`
	GameName  string `json:"game_name,omitempty"`
	ScoreType string `json:"score_type,omitempty"`
}

func scoresWithGameToDTO(items []usecase.ScoreWithGame) []scoreWithGameDTO {
	out := make([]scoreWithGameDTO, 0, len(items))
	for _, item := range items {
		out = append(out, scoreWithGameDTO{
			scoreDTO:  scoreToDTO(item.Record),
			GameSlug:  item.Game.Slug,
			GameName:  item.Game.Name,
			ScoreType: string(item.Game.ScoreType),
		})
	}
	return out
}

type overallStandingDTO struct {
	UserID      string `json:"userId"`
	TotalPoints int    `json:"totalPoints"`
	Rank        int    `json:"rank"`
}

type dailyStandingDTO struct {
	UserID      string `json:"userId"`
	TotalPoints int    `json:"totalPoints"`
	Points      int    `json:"points"`
}

type standingsDTO struct {
	LeagueID         string                               `json:"leagueId"`
	OverallStandings []overallStandingDTO                 `json:"overallStandings"`
	DailyStandings   map[string][]dailyStandingDTO        `json:"dailyStandings"`
	GameStandings    map[string]map[string]map[string]int `json:"gameStandings"`
}

func standingsToDTO(res standings.Result) standingsDTO {
	out := standingsDTO{
		LeagueID:         res.LeagueID,
		OverallStandings: make([]overallStandingDTO, 0, len(res.Overall)),
		DailyStandings:   make(map[string][]dailyStandingDTO, len(res.Daily)),
		GameStandings:    res.ByGame,
	}
	for _, e := range res.Overall {
		out.OverallStandings = append(out.OverallStandings, overallStandingDTO{
			UserID:      e.UserID,
			TotalPoints: e.TotalPoints,
			Rank:        e.Rank,
		})
	}
	for date, entries := range res.Daily {
		items := make([]dailyStandingDTO, 0, len(entries))
		for _, e := range entries {
			items = append(items, dailyStandingDTO{
				UserID:      e.UserID,
				TotalPoints: e.TotalPoints,
				Points:      e.Points,
			})
		}
		out.DailyStandings[date] = items
	}
	if out.GameStandings == nil {
		out.GameStandings = map[string]map[string]map[string]int{}
	}
	return out
}

// multiplierValue accepts "75%", "0.75" or a bare JSON number.
type multiplierValue string

func (m *multiplierValue) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if strings.HasPrefix(raw, `"`) {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return fmt.Errorf("invalid multiplier %s", raw)
		}
		*m = multiplierValue(unquoted)
		return nil
	}
	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		return fmt.Errorf("invalid multiplier %s", raw)
	}
	*m = multiplierValue(raw)
	return nil
}

type handicapRuleRequest struct {
	UserID      string                     `json:"user_id" validate:"required,max=128"`
	GameID      string                     `json:"game_id" validate:"required,max=64"`
	StartDate   string                     `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     *string                    `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Multipliers map[string]multiplierValue `json:"multipliers" validate:"required,min=1,max=7"`
}

type replaceHandicapsRequest struct {
	Rules []handicapRuleRequest `json:"rules" validate:"dive"`
}

func (r replaceHandicapsRequest) toInputs() []usecase.HandicapInput {
	out := make([]usecase.HandicapInput, 0, len(r.Rules))
	for _, rule := range r.Rules {
		multipliers := make(map[string]string, len(rule.Multipliers))
		for day, v := range rule.Multipliers {
			multipliers[day] = string(v)
		}
		out = append(out, usecase.HandicapInput{
			UserID:      rule.UserID,
			GameID:      rule.GameID,
			StartDate:   rule.StartDate,
			EndDate:     rule.EndDate,
			Multipliers: multipliers,
		})
	}
	return out
}

type handicapRuleDTO struct {
	ID          string             `json:"id"`
	UserID      string             `json:"user_id"`
	GameID      string             `json:"game_id"`
	StartDate   string             `json:"start_date"`
	EndDate     *string            `json:"end_date,omitempty"`
	Multipliers map[string]float64 `json:"multipliers"`
}

func handicapsToDTO(rules []handicap.Rule) []handicapRuleDTO {
	out := make([]handicapRuleDTO, 0, len(rules))
	for _, rule := range rules {
		multipliers := make(map[string]float64, len(rule.Multipliers))
		for day, m := range rule.Multipliers {
			multipliers[strconv.Itoa(int(day))] = m
		}
		out = append(out, handicapRuleDTO{
			ID:          rule.ID,
			UserID:      rule.UserID,
			GameID:      rule.GameID,
			StartDate:   rule.StartDate,
			EndDate:     rule.EndDate,
			Multipliers: multipliers,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		if out[i].GameID != out[j].GameID {
			return out[i].GameID < out[j].GameID
		}
		return out[i].StartDate < out[j].StartDate
	})
	return out
}
