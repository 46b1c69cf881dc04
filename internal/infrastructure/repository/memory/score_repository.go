package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/puzzle-league/internal/domain/score"
)

type scoreKey struct {
	userID   string
	leagueID string
	gameID   string
	date     string
}

type ScoreRepository struct {
	mu    sync.RWMutex
	items map[scoreKey]score.Record
	now   func() time.Time
}

func NewScoreRepository() *ScoreRepository {
	return &ScoreRepository{
		items: make(map[scoreKey]score.Record),
		now:   time.Now,
	}
}

// Upsert replaces the score of an existing (user, league, game, date) row and
// keeps its original CreatedAt.
func (r *ScoreRepository) Upsert(_ context.Context, records []score.Record) ([]score.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	out := make([]score.Record, 0, len(records))
	for _, rec := range records {
		key := scoreKey{userID: rec.UserID, leagueID: rec.LeagueID, gameID: rec.GameID, date: rec.Date}
		if existing, ok := r.items[key]; ok {
			rec.CreatedAt = existing.CreatedAt
		} else {
			rec.CreatedAt = now
		}
		r.items[key] = rec
		out = append(out, rec)
	}
	return out, nil
}

func (r *ScoreRepository) List(_ context.Context, filter score.Filter) ([]score.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var users map[string]struct{}
	if len(filter.UserIDs) > 0 {
		users = make(map[string]struct{}, len(filter.UserIDs))
		for _, userID := range filter.UserIDs {
			users[userID] = struct{}{}
		}
	}

	out := make([]score.Record, 0)
	for _, rec := range r.items {
		if filter.UserID != "" && rec.UserID != filter.UserID {
			continue
		}
		if filter.LeagueID != "" && rec.LeagueID != filter.LeagueID {
			continue
		}
		if filter.GameID != "" && rec.GameID != filter.GameID {
			continue
		}
		if filter.From != "" && rec.Date < filter.From {
			continue
		}
		if filter.To != "" && rec.Date > filter.To {
			continue
		}
		if users != nil {
			if _, ok := users[rec.UserID]; !ok {
				continue
			}
		}
		out = append(out, rec)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.GameID != b.GameID {
			return a.GameID < b.GameID
		}
		if a.LeagueID != b.LeagueID {
			return a.LeagueID < b.LeagueID
		}
		return a.UserID < b.UserID
	})
	return out, nil
}
