package score

import "context"

type Repository interface {
	Upsert(ctx context.Context, records []Record) ([]Record, error)
	List(ctx context.Context, filter Filter) ([]Record, error)
}
