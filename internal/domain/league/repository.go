package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, leagueID string) (League, bool, error)
	ListMemberIDs(ctx context.Context, leagueID string) ([]string, error)
	ListLeagueIDsByMember(ctx context.Context, userID string) ([]string, error)
	IsMember(ctx context.Context, leagueID, userID string) (bool, error)
	ListActivations(ctx context.Context, leagueID string) ([]Activation, error)
	ListActiveLeagueIDsForGame(ctx context.Context, leagueIDs []string, gameID, date string) ([]string, error)
	// EnsurePersonalLeague returns the user's personal league, creating it and
	// activating gameID in it when needed.
	EnsurePersonalLeague(ctx context.Context, userID, gameID, date string) (League, error)
}
