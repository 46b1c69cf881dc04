package handicap

import "context"

type Repository interface {
	ListByLeague(ctx context.Context, leagueID string) ([]Rule, error)
	ReplaceByLeague(ctx context.Context, leagueID string, rules []Rule) error
}
