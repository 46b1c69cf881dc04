// Package standings ranks league members from stored daily scores.
//
// Each active game on a date is ranked on handicap-adjusted scores with
// competition ("1224") ranking and its points become the game points for
// that date. Members are then ranked on their summed game points, and the
// overall table is the sum of those daily points. Lower points are better
// at every level.
package standings

import (
	"sort"
	"strings"

	"github.com/riskibarqy/puzzle-league/internal/domain/game"
	"github.com/riskibarqy/puzzle-league/internal/domain/handicap"
	"github.com/riskibarqy/puzzle-league/internal/domain/league"
	"github.com/riskibarqy/puzzle-league/internal/domain/score"
	"github.com/riskibarqy/puzzle-league/internal/platform/calendar"
)

// Input is everything Compute needs, fetched ahead of time.
type Input struct {
	LeagueID    string
	Members     []string
	Games       map[string]game.Game
	Scores      []score.Record
	Activations []league.Activation
	Handicaps   handicap.Book
}

type OverallEntry struct {
	UserID      string
	TotalPoints int
	Rank        int
}

// DailyEntry holds one member's summed game points for a date and the rank
// points earned from them.
type DailyEntry struct {
	UserID      string
	TotalPoints int
	Points      int
}

type Result struct {
	LeagueID string
	Overall  []OverallEntry
	// Daily is keyed by date and ordered best first.
	Daily map[string][]DailyEntry
	// ByGame maps game id to date to user id to points.
	ByGame map[string]map[string]map[string]int
}

// Dates returns the scored dates in ascending order.
func (r Result) Dates() []string {
	dates := make([]string, 0, len(r.Daily))
	for date := range r.Daily {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

func emptyResult(leagueID string) Result {
	return Result{
		LeagueID: leagueID,
		Overall:  []OverallEntry{},
		Daily:    map[string][]DailyEntry{},
		ByGame:   map[string]map[string]map[string]int{},
	}
}

// Compute builds the standings for one league. It never fails: unknown games,
// scores from non-members and dates without an active game are skipped.
func Compute(in Input) Result {
	result := emptyResult(in.LeagueID)

	members := normalizeMembers(in.Members)
	if len(members) == 0 || len(in.Scores) == 0 {
		return result
	}
	isMember := make(map[string]struct{}, len(members))
	for _, userID := range members {
		isMember[userID] = struct{}{}
	}

	// date -> game -> user -> raw score; later records replace earlier ones.
	byDate := make(map[string]map[string]map[string]float64)
	for _, rec := range in.Scores {
		if _, ok := isMember[rec.UserID]; !ok {
			continue
		}
		if _, ok := in.Games[rec.GameID]; !ok {
			continue
		}
		games, ok := byDate[rec.Date]
		if !ok {
			games = make(map[string]map[string]float64)
			byDate[rec.Date] = games
		}
		users, ok := games[rec.GameID]
		if !ok {
			users = make(map[string]float64)
			games[rec.GameID] = users
		}
		users[rec.UserID] = rec.Score
	}

	windows := make(map[string][]league.Activation)
	for _, act := range in.Activations {
		if act.LeagueID != "" && in.LeagueID != "" && act.LeagueID != in.LeagueID {
			continue
		}
		windows[act.GameID] = append(windows[act.GameID], act)
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	overall := make(map[string]int, len(members))
	for _, date := range dates {
		games := byDate[date]
		gameIDs := make([]string, 0, len(games))
		for gameID := range games {
			if activeOn(windows[gameID], date) {
				gameIDs = append(gameIDs, gameID)
			}
		}
		if len(gameIDs) == 0 {
			continue
		}
		sort.Strings(gameIDs)

		totals := make(map[string]int, len(members))
		for _, userID := range members {
			totals[userID] = 0
		}

		for _, gameID := range gameIDs {
			g := in.Games[gameID]
			entries := make([]rankable, 0, len(games[gameID]))
			for userID, raw := range games[gameID] {
				entries = append(entries, rankable{
					userID: userID,
					value:  raw * in.Handicaps.Multiplier(userID, gameID, date),
				})
			}
			points := rank(entries, g.LowerIsBetter())

			perDate, ok := result.ByGame[gameID]
			if !ok {
				perDate = make(map[string]map[string]int)
				result.ByGame[gameID] = perDate
			}
			perDate[date] = points
			for userID, p := range points {
				totals[userID] += p
			}
		}

		entries := make([]rankable, 0, len(members))
		for _, userID := range members {
			entries = append(entries, rankable{userID: userID, value: float64(totals[userID])})
		}
		points := rank(entries, true)

		daily := make([]DailyEntry, 0, len(members))
		for _, e := range entries {
			daily = append(daily, DailyEntry{
				UserID:      e.userID,
				TotalPoints: totals[e.userID],
				Points:      points[e.userID],
			})
			overall[e.userID] += points[e.userID]
		}
		result.Daily[date] = daily
	}

	if len(result.Daily) == 0 {
		return result
	}

	entries := make([]rankable, 0, len(members))
	for _, userID := range members {
		entries = append(entries, rankable{userID: userID, value: float64(overall[userID])})
	}
	ranks := rank(entries, true)
	for _, e := range entries {
		result.Overall = append(result.Overall, OverallEntry{
			UserID:      e.userID,
			TotalPoints: overall[e.userID],
			Rank:        ranks[e.userID],
		})
	}
	return result
}

func normalizeMembers(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func activeOn(windows []league.Activation, date string) bool {
	for _, w := range windows {
		if calendar.InWindow(date, w.StartDate, w.EndDate) {
			return true
		}
	}
	return false
}
