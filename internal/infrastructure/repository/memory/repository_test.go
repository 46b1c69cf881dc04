package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/puzzle-league/internal/domain/handicap"
	"github.com/riskibarqy/puzzle-league/internal/domain/league"
	"github.com/riskibarqy/puzzle-league/internal/domain/score"
)

type fixedIDs struct{ next []string }

func (f *fixedIDs) NewID() (string, error) {
	v := f.next[0]
	f.next = f.next[1:]
	return v, nil
}

func TestGameRepository_LookupBySlugIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	repo := NewGameRepository(SeedGames())
	ctx := context.Background()

	g, ok, err := repo.GetBySlug(ctx, " Wordle ")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "wordle", g.ID)
	require.NotNil(t, g.Parser)

	g.Parser.Pattern = "mutated"
	again, _, err := repo.GetByID(ctx, "wordle")
	require.NoError(t, err)
	require.NotEqual(t, "mutated", again.Parser.Pattern)

	_, ok, err = repo.GetBySlug(ctx, "sudoku")
	require.NoError(t, err)
	require.False(t, ok)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, len(seedCatalog))
	for _, item := range items {
		require.NoError(t, item.Validate())
	}
}

func TestLeagueRepository_ActiveLeaguesForGame(t *testing.T) {
	t.Parallel()

	end := "2026-03-31"
	repo := NewLeagueRepository(
		[]league.League{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}},
		[]league.Activation{
			{LeagueID: "a", GameID: "wordle", StartDate: "2026-01-01", EndDate: &end},
			{LeagueID: "b", GameID: "wordle", StartDate: "2026-01-01"},
		},
		nil,
	)
	require.NoError(t, repo.AddMember("a", "u1"))
	require.NoError(t, repo.AddMember("b", "u1"))
	require.Error(t, repo.AddMember("missing", "u1"))

	ctx := context.Background()
	ids, err := repo.ListLeagueIDsByMember(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, ids)

	active, err := repo.ListActiveLeagueIDsForGame(ctx, ids, "wordle", "2026-03-31")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, active)

	active, err = repo.ListActiveLeagueIDsForGame(ctx, ids, "wordle", "2026-04-01")
	require.NoError(t, err)
	require.Equal(t, []string{"b"}, active)

	active, err = repo.ListActiveLeagueIDsForGame(ctx, ids, "connections", "2026-04-01")
	require.NoError(t, err)
	require.Empty(t, active)
}

func TestLeagueRepository_EnsurePersonalLeagueIsIdempotent(t *testing.T) {
	t.Parallel()

	repo := NewLeagueRepository(nil, nil, &fixedIDs{next: []string{"personal-1", "personal-2"}})
	ctx := context.Background()

	first, err := repo.EnsurePersonalLeague(ctx, "u1", "wordle", "2026-10-16")
	require.NoError(t, err)
	require.Equal(t, "personal-1", first.ID)
	require.True(t, first.IsPersonal)
	require.Equal(t, league.PersonalLeagueName, first.Name)
	require.Len(t, first.InviteCode, 8)

	second, err := repo.EnsurePersonalLeague(ctx, "u1", "connections", "2026-10-17")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	_, err = repo.EnsurePersonalLeague(ctx, "u1", "wordle", "2026-10-17")
	require.NoError(t, err)

	member, err := repo.IsMember(ctx, first.ID, "u1")
	require.NoError(t, err)
	require.True(t, member)

	activations, err := repo.ListActivations(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, activations, 2)
}

func TestScoreRepository_UpsertKeepsLastWrite(t *testing.T) {
	t.Parallel()

	repo := NewScoreRepository()
	created := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return created }
	ctx := context.Background()

	_, err := repo.Upsert(ctx, []score.Record{
		{UserID: "u1", LeagueID: "l1", GameID: "wordle", Date: "2026-10-16", Score: 4},
		{UserID: "u2", LeagueID: "l1", GameID: "wordle", Date: "2026-10-15", Score: 3},
	})
	require.NoError(t, err)

	repo.now = func() time.Time { return created.Add(time.Hour) }
	saved, err := repo.Upsert(ctx, []score.Record{
		{UserID: "u1", LeagueID: "l1", GameID: "wordle", Date: "2026-10-16", Score: 2},
	})
	require.NoError(t, err)
	require.Equal(t, created, saved[0].CreatedAt)

	items, err := repo.List(ctx, score.Filter{LeagueID: "l1"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "2026-10-15", items[0].Date)
	require.Equal(t, float64(2), items[1].Score)

	items, err = repo.List(ctx, score.Filter{UserIDs: []string{"u2"}, From: "2026-10-15", To: "2026-10-15"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "u2", items[0].UserID)
}

func TestHandicapRepository_ReplaceByLeague(t *testing.T) {
	t.Parallel()

	repo := NewHandicapRepository()
	ctx := context.Background()

	rules := []handicap.Rule{{
		ID:          "h1",
		UserID:      "u1",
		GameID:      "wordle",
		StartDate:   "2026-10-01",
		Multipliers: map[time.Weekday]float64{time.Wednesday: 0.5},
	}}
	require.NoError(t, repo.ReplaceByLeague(ctx, "l1", rules))
	rules[0].Multipliers[time.Wednesday] = 2

	got, err := repo.ListByLeague(ctx, "l1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "l1", got[0].LeagueID)
	require.Equal(t, 0.5, got[0].Multipliers[time.Wednesday])

	require.NoError(t, repo.ReplaceByLeague(ctx, "l1", nil))
	got, err = repo.ListByLeague(ctx, "l1")
	require.NoError(t, err)
	require.Empty(t, got)

}
