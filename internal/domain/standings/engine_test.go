package standings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/puzzle-league/internal/domain/game"
	"github.com/riskibarqy/puzzle-league/internal/domain/handicap"
	"github.com/riskibarqy/puzzle-league/internal/domain/league"
	"github.com/riskibarqy/puzzle-league/internal/domain/score"
)

const (
	wednesday = "2026-10-14"
	thursday  = "2026-10-15"
)

var (
	wordle = game.Game{ID: "g-wordle", Slug: "wordle", Name: "Wordle", ScoreType: game.ScoreTypeLowerBetter}
	bee    = game.Game{ID: "g-bee", Slug: "spelling-bee", Name: "Spelling Bee", ScoreType: game.ScoreTypeHigherBetter}
)

func gamesByID(items ...game.Game) map[string]game.Game {
	out := make(map[string]game.Game, len(items))
	for _, g := range items {
		out[g.ID] = g
	}
	return out
}

func openActivation(gameID, start string) league.Activation {
	return league.Activation{LeagueID: "l1", GameID: gameID, StartDate: start}
}

func rec(userID, gameID, date string, value float64) score.Record {
	return score.Record{UserID: userID, LeagueID: "l1", GameID: gameID, Date: date, Score: value}
}

func TestCompute_TiedScoresShareRankAndSkipNext(t *testing.T) {
	t.Parallel()

	result := Compute(Input{
		LeagueID:    "l1",
		Members:     []string{"A", "B", "C"},
		Games:       gamesByID(wordle),
		Activations: []league.Activation{openActivation(wordle.ID, "2026-01-01")},
		Scores: []score.Record{
			rec("A", wordle.ID, wednesday, 3),
			rec("B", wordle.ID, wednesday, 3),
			rec("C", wordle.ID, wednesday, 5),
		},
	})

	require.Equal(t, map[string]int{"A": 1, "B": 1, "C": 3}, result.ByGame[wordle.ID][wednesday])
	require.Equal(t, []DailyEntry{
		{UserID: "A", TotalPoints: 1, Points: 1},
		{UserID: "B", TotalPoints: 1, Points: 1},
		{UserID: "C", TotalPoints: 3, Points: 3},
	}, result.Daily[wednesday])
	require.Equal(t, []OverallEntry{
		{UserID: "A", TotalPoints: 1, Rank: 1},
		{UserID: "B", TotalPoints: 1, Rank: 1},
		{UserID: "C", TotalPoints: 3, Rank: 3},
	}, result.Overall)
}

func TestCompute_HigherBetterGameSortsDescending(t *testing.T) {
	t.Parallel()

	result := Compute(Input{
		LeagueID:    "l1",
		Members:     []string{"A", "B"},
		Games:       gamesByID(bee),
		Activations: []league.Activation{openActivation(bee.ID, "2026-01-01")},
		Scores: []score.Record{
			rec("A", bee.ID, wednesday, 1),
			rec("B", bee.ID, wednesday, 2),
		},
	})

	require.Equal(t, map[string]int{"A": 2, "B": 1}, result.ByGame[bee.ID][wednesday])
}

func TestCompute_DailySumsMatchOverall(t *testing.T) {
	t.Parallel()

	result := Compute(Input{
		LeagueID: "l1",
		Members:  []string{"A", "B", "C"},
		Games:    gamesByID(wordle, bee),
		Activations: []league.Activation{
			openActivation(wordle.ID, "2026-01-01"),
			openActivation(bee.ID, "2026-01-01"),
		},
		Scores: []score.Record{
			rec("A", wordle.ID, wednesday, 3),
			rec("B", wordle.ID, wednesday, 4),
			rec("C", wordle.ID, wednesday, 6),
			rec("A", bee.ID, wednesday, 0),
			rec("C", bee.ID, wednesday, 2),
			rec("B", wordle.ID, thursday, 2),
			rec("C", wordle.ID, thursday, 2),
		},
	})

	require.Len(t, result.Daily, 2)
	sums := map[string]int{}
	for _, entries := range result.Daily {
		for _, e := range entries {
			sums[e.UserID] += e.Points
		}
	}
	require.Len(t, result.Overall, 3)
	for _, entry := range result.Overall {
		require.Equal(t, sums[entry.UserID], entry.TotalPoints, "user %s", entry.UserID)
	}
	for i := 1; i < len(result.Overall); i++ {
		require.LessOrEqual(t, result.Overall[i-1].TotalPoints, result.Overall[i].TotalPoints)
	}
}

func TestCompute_InactiveGameExcludedFromDate(t *testing.T) {
	t.Parallel()

	thursdayEnd := thursday
	result := Compute(Input{
		LeagueID: "l1",
		Members:  []string{"A", "B"},
		Games:    gamesByID(wordle, bee),
		Activations: []league.Activation{
			openActivation(wordle.ID, "2026-01-01"),
			{LeagueID: "l1", GameID: bee.ID, StartDate: thursday, EndDate: &thursdayEnd},
		},
		Scores: []score.Record{
			rec("A", wordle.ID, wednesday, 5),
			rec("B", wordle.ID, wednesday, 4),
			rec("A", bee.ID, wednesday, 2),
			rec("B", bee.ID, wednesday, 1),
			rec("A", bee.ID, "2026-10-16", 2),
		},
	})

	require.Contains(t, result.Daily, wednesday)
	require.NotContains(t, result.ByGame[bee.ID], wednesday)
	require.NotContains(t, result.Daily, "2026-10-16")
	require.Equal(t, map[string]int{"B": 1, "A": 2}, result.ByGame[wordle.ID][wednesday])
}

func TestCompute_WeekdayHandicapAdjustsSortAndTies(t *testing.T) {
	t.Parallel()

	book := handicap.NewBook([]handicap.Rule{{
		ID:          "h1",
		LeagueID:    "l1",
		UserID:      "A",
		GameID:      wordle.ID,
		StartDate:   "2026-01-01",
		Multipliers: map[time.Weekday]float64{time.Wednesday: 0.5},
	}})

	result := Compute(Input{
		LeagueID:    "l1",
		Members:     []string{"A", "B"},
		Games:       gamesByID(wordle),
		Activations: []league.Activation{openActivation(wordle.ID, "2026-01-01")},
		Handicaps:   book,
		Scores: []score.Record{
			rec("A", wordle.ID, wednesday, 12),
			rec("B", wordle.ID, wednesday, 6),
			rec("A", wordle.ID, thursday, 12),
			rec("B", wordle.ID, thursday, 6),
		},
	})

	// 12 x 0.5 ties B's 6 on Wednesday only.
	require.Equal(t, map[string]int{"A": 1, "B": 1}, result.ByGame[wordle.ID][wednesday])
	require.Equal(t, map[string]int{"A": 2, "B": 1}, result.ByGame[wordle.ID][thursday])
}

func TestCompute_MemberWithoutScoresStillRankedDaily(t *testing.T) {
	t.Parallel()

	result := Compute(Input{
		LeagueID:    "l1",
		Members:     []string{"A", "B", "Z"},
		Games:       gamesByID(wordle),
		Activations: []league.Activation{openActivation(wordle.ID, "2026-01-01")},
		Scores: []score.Record{
			rec("A", wordle.ID, wednesday, 3),
			rec("B", wordle.ID, wednesday, 4),
			rec("outsider", wordle.ID, wednesday, 1),
		},
	})

	require.Equal(t, map[string]int{"A": 1, "B": 2}, result.ByGame[wordle.ID][wednesday])
	require.Equal(t, []DailyEntry{
		{UserID: "Z", TotalPoints: 0, Points: 1},
		{UserID: "A", TotalPoints: 1, Points: 2},
		{UserID: "B", TotalPoints: 2, Points: 3},
	}, result.Daily[wednesday])
}

func TestCompute_EmptyInputs(t *testing.T) {
	t.Parallel()

	tests := []Input{
		{LeagueID: "l1"},
		{LeagueID: "l1", Members: []string{"A"}},
		{LeagueID: "l1", Scores: []score.Record{rec("A", wordle.ID, wednesday, 1)}, Games: gamesByID(wordle)},
		{LeagueID: "l1", Members: []string{"A"}, Scores: []score.Record{rec("A", wordle.ID, wednesday, 1)}, Games: gamesByID(wordle)},
	}
	for i, in := range tests {
		result := Compute(in)
		if len(result.Overall) != 0 || len(result.Daily) != 0 || len(result.ByGame) != 0 {
			t.Fatalf("case %d: expected empty standings, got %+v", i, result)
		}
		if result.Daily == nil || result.ByGame == nil || result.Overall == nil {
			t.Fatalf("case %d: expected non-nil empty collections", i)
		}
	}
}
