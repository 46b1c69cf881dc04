package game

import "context"

// Repository describes game catalog access.
type Repository interface {
	List(ctx context.Context) ([]Game, error)
	GetByID(ctx context.Context, gameID string) (Game, bool, error)
	GetBySlug(ctx context.Context, slug string) (Game, bool, error)
}
