package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/puzzle-league/internal/domain/handicap"
	qb "github.com/riskibarqy/puzzle-league/internal/platform/querybuilder"
)

type HandicapRepository struct {
	db *sqlx.DB
}

func NewHandicapRepository(db *sqlx.DB) *HandicapRepository {
	return &HandicapRepository{db: db}
}

func (r *HandicapRepository) ListByLeague(ctx context.Context, leagueID string) ([]handicap.Rule, error) {
	query, args, err := qb.Select(handicapColumns...).From("handicaps").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("user_id", "game_id", "start_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list handicaps query: %w", err)
	}

	var rows []handicapTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapDB(err, "list handicaps")
	}

	out := make([]handicap.Rule, 0, len(rows))
	for _, row := range rows {
		multipliers, err := decodeMultipliers(row.Multipliers)
		if err != nil {
			return nil, fmt.Errorf("handicap %s: %w", row.ID, err)
		}
		out = append(out, handicap.Rule{
			ID:          row.ID,
			LeagueID:    row.LeagueID,
			UserID:      row.UserID,
			GameID:      row.GameID,
			StartDate:   row.StartDate,
			EndDate:     nullStringPtr(row.EndDate),
			Multipliers: multipliers,
			CreatedAt:   row.CreatedAt,
		})
	}
	return out, nil
}

// ReplaceByLeague swaps the league's whole rule set atomically.
func (r *HandicapRepository) ReplaceByLeague(ctx context.Context, leagueID string, rules []handicap.Rule) error {
	models := make([]handicapInsertModel, 0, len(rules))
	for _, rule := range rules {
		multipliers, err := encodeMultipliers(rule.Multipliers)
		if err != nil {
			return err
		}
		models = append(models, handicapInsertModel{
			ID:          rule.ID,
			LeagueID:    leagueID,
			UserID:      rule.UserID,
			GameID:      rule.GameID,
			StartDate:   rule.StartDate,
			EndDate:     stringPtrToNull(rule.EndDate),
			Multipliers: multipliers,
			CreatedAt:   rule.CreatedAt,
		})
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return wrapDB(err, "begin tx for handicap replace")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteSQL, deleteArgs, err := qb.DeleteFrom("handicaps").
		Where(qb.Eq("league_id", leagueID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete handicaps query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteSQL, deleteArgs...); err != nil {
		return wrapDB(err, "delete handicaps")
	}

	if len(models) > 0 {
		insertSQL, insertArgs, err := qb.InsertModels("handicaps", models, "")
		if err != nil {
			return fmt.Errorf("build insert handicaps query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
			return wrapDB(err, "insert handicaps")
		}
	}

	if err := tx.Commit(); err != nil {
		return wrapDB(err, "commit handicap replace tx")
	}
	return nil
}
