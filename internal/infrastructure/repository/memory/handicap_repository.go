package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/puzzle-league/internal/domain/handicap"
)

type HandicapRepository struct {
	mu    sync.RWMutex
	items map[string][]handicap.Rule
}

func NewHandicapRepository() *HandicapRepository {
	return &HandicapRepository{items: make(map[string][]handicap.Rule)}
}

func (r *HandicapRepository) ListByLeague(_ context.Context, leagueID string) ([]handicap.Rule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.items[leagueID]
	out := make([]handicap.Rule, 0, len(items))
	for _, rule := range items {
		out = append(out, cloneRule(rule))
	}
	return out, nil
}

func (r *HandicapRepository) ReplaceByLeague(_ context.Context, leagueID string, rules []handicap.Rule) error {
	items := make([]handicap.Rule, 0, len(rules))
	for _, rule := range rules {
		rule.LeagueID = leagueID
		items = append(items, cloneRule(rule))
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(items) == 0 {
		delete(r.items, leagueID)
		return nil
	}
	r.items[leagueID] = items
	return nil
}

func cloneRule(rule handicap.Rule) handicap.Rule {
	if rule.EndDate != nil {
		end := *rule.EndDate
		rule.EndDate = &end
	}
	multipliers := make(map[time.Weekday]float64, len(rule.Multipliers))
	for day, m := range rule.Multipliers {
		multipliers[day] = m
	}
	rule.Multipliers = multipliers
	return rule
}
