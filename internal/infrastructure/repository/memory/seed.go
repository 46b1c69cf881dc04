package memory

import (
	"sort"
	"time"

	"github.com/riskibarqy/puzzle-league/internal/domain/game"
	"github.com/riskibarqy/puzzle-league/internal/domain/league"
	"github.com/riskibarqy/puzzle-league/internal/domain/shareparse"
)

const (
	LeagueIDDemo   = "demo-league"
	demoStartDate  = "2026-01-01"
	demoInviteCode = "DEMO2026"
)

var seedCatalog = []struct {
	id        string
	name      string
	scoreType game.ScoreType
}{
	{id: "wordle", name: "Wordle", scoreType: game.ScoreTypeLowerBetter},
	{id: "connections", name: "Connections", scoreType: game.ScoreTypeLowerBetter},
	{id: "pyramid-scheme", name: "Pyramid Scheme", scoreType: game.ScoreTypeLowerBetter},
	{id: "bracket-city", name: "Bracket City", scoreType: game.ScoreTypeLowerBetter},
	{id: "keyword", name: "Keyword", scoreType: game.ScoreTypeLowerBetter},
	{id: "spelling-bee", name: "Spelling Bee", scoreType: game.ScoreTypeHigherBetter},
	{id: "quintumble", name: "Quintumble", scoreType: game.ScoreTypeHigherBetter},
}

// SeedGames mirrors the catalog inserted by the seed migration.
func SeedGames() []game.Game {
	configs := shareparse.DefaultConfigs()
	out := make([]game.Game, 0, len(seedCatalog))
	for _, item := range seedCatalog {
		g := game.Game{
			ID:        item.id,
			Slug:      item.id,
			Name:      item.name,
			ScoreType: item.scoreType,
		}
		if cfg, ok := configs[item.id]; ok {
			cfg := cfg
			g.Parser = &cfg
		}
		out = append(out, g)
	}
	return out
}

// SeedLeagues returns a shared demo league with every seeded game active.
func SeedLeagues() ([]league.League, []league.Activation) {
	start := demoStartDate
	leagues := []league.League{
		{
			ID:         LeagueIDDemo,
			Name:       "Demo League",
			InviteCode: demoInviteCode,
			CreatedBy:  "demo-owner",
			StartDate:  &start,
			CreatedAt:  time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	activations := make([]league.Activation, 0, len(seedCatalog))
	for _, item := range seedCatalog {
		activations = append(activations, league.Activation{
			LeagueID:  LeagueIDDemo,
			GameID:    item.id,
			StartDate: demoStartDate,
		})
	}
	sort.Slice(activations, func(i, j int) bool { return activations[i].GameID < activations[j].GameID })
	return leagues, activations
}
