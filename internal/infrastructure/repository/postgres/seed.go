package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/puzzle-league/internal/infrastructure/repository/memory"
)

// BootstrapSeed inserts the demo league and its game activations into an
// empty database. Games themselves come from the seed migration.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM leagues WHERE NOT is_personal`); err != nil {
		return wrapDB(err, "count leagues for bootstrap seed")
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return wrapDB(err, "begin seed tx")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	leagues, activations := memory.SeedLeagues()
	for _, l := range leagues {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO leagues (id, name, invite_code, created_by, start_date, is_personal)
VALUES (:id, :name, :invite_code, :created_by, CAST(:start_date AS DATE), FALSE)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":          l.ID,
			"name":        l.Name,
			"invite_code": l.InviteCode,
			"created_by":  l.CreatedBy,
			"start_date":  stringPtrToNull(l.StartDate),
		})
		if err != nil {
			return fmt.Errorf("bind seed league %s query: %w", l.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return wrapDB(err, "seed league "+l.ID)
		}
	}

	for _, a := range activations {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO league_games (league_id, game_id, start_date)
VALUES (:league_id, :game_id, CAST(:start_date AS DATE))`, map[string]any{
			"league_id":  a.LeagueID,
			"game_id":    a.GameID,
			"start_date": a.StartDate,
		})
		if err != nil {
			return fmt.Errorf("bind seed league game %s/%s query: %w", a.LeagueID, a.GameID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return wrapDB(err, "seed league game "+a.GameID)
		}
	}

	if err := tx.Commit(); err != nil {
		return wrapDB(err, "commit seed tx")
	}
	return nil
}
