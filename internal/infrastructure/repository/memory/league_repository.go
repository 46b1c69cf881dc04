package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/puzzle-league/internal/domain/league"
	"github.com/riskibarqy/puzzle-league/internal/platform/calendar"
	"github.com/riskibarqy/puzzle-league/internal/platform/id"
)

type LeagueRepository struct {
	mu          sync.RWMutex
	items       map[string]league.League
	orders      []string
	members     map[string]map[string]struct{}
	activations map[string][]league.Activation
	ids         id.Generator
	now         func() time.Time
}

func NewLeagueRepository(leagues []league.League, activations []league.Activation, ids id.Generator) *LeagueRepository {
	items := make(map[string]league.League, len(leagues))
	orders := make([]string, 0, len(leagues))
	members := make(map[string]map[string]struct{}, len(leagues))

	for _, l := range leagues {
		if _, exists := items[l.ID]; !exists {
			orders = append(orders, l.ID)
		}
		items[l.ID] = l
		members[l.ID] = make(map[string]struct{})
	}

	byLeague := make(map[string][]league.Activation)
	for _, a := range activations {
		byLeague[a.LeagueID] = append(byLeague[a.LeagueID], a)
	}

	if ids == nil {
		ids = id.NewUUIDGenerator()
	}

	return &LeagueRepository{
		items:       items,
		orders:      orders,
		members:     members,
		activations: byLeague,
		ids:         ids,
		now:         time.Now,
	}
}

// AddMember joins userID to an existing league. Adding twice is a no-op.
func (r *LeagueRepository) AddMember(leagueID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.members[leagueID]
	if !ok {
		return crerr.Newf("league %s not found", leagueID)
	}
	set[userID] = struct{}{}
	return nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.items[leagueID]
	if !ok {
		return league.League{}, false, nil
	}
	return l, true, nil
}

func (r *LeagueRepository) ListMemberIDs(_ context.Context, leagueID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.members[leagueID]
	out := make([]string, 0, len(set))
	for userID := range set {
		out = append(out, userID)
	}
	sort.Strings(out)
	return out, nil
}

func (r *LeagueRepository) ListLeagueIDsByMember(_ context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0)
	for _, leagueID := range r.orders {
		if _, ok := r.members[leagueID][userID]; ok {
			out = append(out, leagueID)
		}
	}
	return out, nil
}

func (r *LeagueRepository) IsMember(_ context.Context, leagueID, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.members[leagueID][userID]
	return ok, nil
}

func (r *LeagueRepository) ListActivations(_ context.Context, leagueID string) ([]league.Activation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]league.Activation(nil), r.activations[leagueID]...), nil
}

func (r *LeagueRepository) ListActiveLeagueIDsForGame(_ context.Context, leagueIDs []string, gameID, date string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(leagueIDs))
	seen := make(map[string]struct{}, len(leagueIDs))
	for _, leagueID := range leagueIDs {
		if _, dup := seen[leagueID]; dup {
			continue
		}
		seen[leagueID] = struct{}{}
		if r.activeLocked(leagueID, gameID, date) {
			out = append(out, leagueID)
		}
	}
	return out, nil
}

func (r *LeagueRepository) EnsurePersonalLeague(_ context.Context, userID, gameID, date string) (league.League, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	personal, found := r.personalLocked(userID)
	if !found {
		leagueID, err := r.ids.NewID()
		if err != nil {
			return league.League{}, crerr.Wrap(err, "generate personal league id")
		}
		code, err := id.NewInviteCode()
		if err != nil {
			return league.League{}, err
		}
		personal = league.League{
			ID:         leagueID,
			Name:       league.PersonalLeagueName,
			InviteCode: code,
			CreatedBy:  userID,
			IsPersonal: true,
			CreatedAt:  r.now().UTC(),
		}
		r.items[leagueID] = personal
		r.orders = append(r.orders, leagueID)
		r.members[leagueID] = map[string]struct{}{userID: {}}
	}

	if !r.activeLocked(personal.ID, gameID, date) {
		r.activations[personal.ID] = append(r.activations[personal.ID], league.Activation{
			LeagueID:  personal.ID,
			GameID:    gameID,
			StartDate: date,
		})
	}
	return personal, nil
}

func (r *LeagueRepository) personalLocked(userID string) (league.League, bool) {
	for _, leagueID := range r.orders {
		l := r.items[leagueID]
		if l.IsPersonal && l.CreatedBy == userID {
			return l, true
		}
	}
	return league.League{}, false
}

func (r *LeagueRepository) activeLocked(leagueID, gameID, date string) bool {
	for _, a := range r.activations[leagueID] {
		if a.GameID == gameID && calendar.InWindow(date, a.StartDate, a.EndDate) {
			return true
		}
	}
	return false
}
