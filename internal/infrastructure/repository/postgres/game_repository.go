package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/puzzle-league/internal/domain/game"
	qb "github.com/riskibarqy/puzzle-league/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) List(ctx context.Context) ([]game.Game, error) {
	query, args, err := qb.Select(gameColumns...).From(gameTables).
		OrderBy("g.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select games query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapDB(err, "select games")
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameFromRow(row))
	}
	return out, nil
}

func (r *GameRepository) GetByID(ctx context.Context, gameID string) (game.Game, bool, error) {
	return r.getOne(ctx, "get game by id", qb.Eq("g.id", gameID))
}

func (r *GameRepository) GetBySlug(ctx context.Context, slug string) (game.Game, bool, error) {
	return r.getOne(ctx, "get game by slug", qb.Eq("g.slug", strings.ToLower(strings.TrimSpace(slug))))
}

func (r *GameRepository) getOne(ctx context.Context, op string, cond qb.Condition) (game.Game, bool, error) {
	query, args, err := qb.Select(gameColumns...).From(gameTables).
		Where(cond).
		Limit(1).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, wrapDB(err, op)
	}
	return gameFromRow(row), true, nil
}

func gameFromRow(row gameTableModel) game.Game {
	g := game.Game{
		ID:        row.ID,
		Slug:      row.Slug,
		Name:      row.Name,
		ScoreType: game.ScoreType(row.ScoreType),
	}
	if row.PatternType.Valid {
		g.Parser = &game.ParserConfig{
			PatternType:  game.PatternType(row.PatternType.String),
			Pattern:      row.Pattern.String,
			ScorePath:    row.ScorePath.String,
			CaptureGroup: int(row.CaptureGroup.Int64),
		}
	}
	return g
}
