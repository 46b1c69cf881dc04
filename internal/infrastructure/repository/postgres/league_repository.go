package postgres

import (
	"context"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/puzzle-league/internal/domain/league"
	"github.com/riskibarqy/puzzle-league/internal/platform/id"
	qb "github.com/riskibarqy/puzzle-league/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db  *sqlx.DB
	ids id.Generator
}

func NewLeagueRepository(db *sqlx.DB, ids id.Generator) *LeagueRepository {
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	return &LeagueRepository{db: db, ids: ids}
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	query, args, err := qb.Select(leagueColumns...).From("leagues").
		Where(qb.Eq("id", leagueID)).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league by id query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, wrapDB(err, "get league by id")
	}
	return leagueFromRow(row), true, nil
}

func (r *LeagueRepository) ListMemberIDs(ctx context.Context, leagueID string) ([]string, error) {
	query, args, err := qb.Select("user_id").From("league_members").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list league members query: %w", err)
	}

	var out []string
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, wrapDB(err, "list league members")
	}
	return out, nil
}

func (r *LeagueRepository) ListLeagueIDsByMember(ctx context.Context, userID string) ([]string, error) {
	query, args, err := qb.Select("league_id").From("league_members").
		Where(qb.Eq("user_id", userID)).
		OrderBy("joined_at", "league_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list leagues by member query: %w", err)
	}

	var out []string
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, wrapDB(err, "list leagues by member")
	}
	return out, nil
}

func (r *LeagueRepository) IsMember(ctx context.Context, leagueID, userID string) (bool, error) {
	query, args, err := qb.Select("1").From("league_members").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("user_id", userID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build league membership query: %w", err)
	}

	var one int
	if err := r.db.GetContext(ctx, &one, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, wrapDB(err, "check league membership")
	}
	return true, nil
}

func (r *LeagueRepository) ListActivations(ctx context.Context, leagueID string) ([]league.Activation, error) {
	query, args, err := qb.Select(activationColumns...).From("league_games").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("game_id", "start_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list league games query: %w", err)
	}

	var rows []activationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapDB(err, "list league games")
	}

	out := make([]league.Activation, 0, len(rows))
	for _, row := range rows {
		out = append(out, league.Activation{
			LeagueID:  row.LeagueID,
			GameID:    row.GameID,
			StartDate: row.StartDate,
			EndDate:   nullStringPtr(row.EndDate),
		})
	}
	return out, nil
}

func (r *LeagueRepository) ListActiveLeagueIDsForGame(ctx context.Context, leagueIDs []string, gameID, date string) ([]string, error) {
	if len(leagueIDs) == 0 {
		return []string{}, nil
	}

	query, args, err := qb.Select("DISTINCT league_id").From("league_games").
		Where(
			qb.AnyOf("league_id", leagueIDs),
			qb.Eq("game_id", gameID),
			qb.Lte("start_date", date),
			qb.Expr("(end_date IS NULL OR end_date >= ?)", date),
		).
		OrderBy("league_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list active leagues for game query: %w", err)
	}

	out := make([]string, 0, len(leagueIDs))
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, wrapDB(err, "list active leagues for game")
	}
	return out, nil
}

const activatePersonalGameQuery = `
INSERT INTO league_games (league_id, game_id, start_date)
SELECT :league_id, :game_id, CAST(:date AS DATE)
WHERE NOT EXISTS (
    SELECT 1
    FROM league_games
    WHERE league_id = :league_id
      AND game_id = :game_id
      AND start_date <= CAST(:date AS DATE)
      AND (end_date IS NULL OR end_date >= CAST(:date AS DATE))
)`

func (r *LeagueRepository) EnsurePersonalLeague(ctx context.Context, userID, gameID, date string) (league.League, error) {
	leagueID, err := r.ids.NewID()
	if err != nil {
		return league.League{}, crerr.Wrap(err, "generate personal league id")
	}
	inviteCode, err := id.NewInviteCode()
	if err != nil {
		return league.League{}, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return league.League{}, wrapDB(err, "begin tx for personal league")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	insertLeague, insertArgs, err := qb.InsertModels("leagues", []leagueInsertModel{{
		ID:         leagueID,
		Name:       league.PersonalLeagueName,
		InviteCode: inviteCode,
		CreatedBy:  userID,
		IsPersonal: true,
	}}, "ON CONFLICT (created_by) WHERE is_personal DO NOTHING")
	if err != nil {
		return league.League{}, fmt.Errorf("build insert personal league query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, insertLeague, insertArgs...); err != nil {
		return league.League{}, wrapDB(err, "insert personal league")
	}

	selectLeague, selectArgs, err := qb.Select(leagueColumns...).From("leagues").
		Where(
			qb.Eq("created_by", userID),
			qb.Expr("is_personal"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return league.League{}, fmt.Errorf("build select personal league query: %w", err)
	}
	var row leagueTableModel
	if err := tx.GetContext(ctx, &row, selectLeague, selectArgs...); err != nil {
		return league.League{}, wrapDB(err, "select personal league")
	}

	insertMember, memberArgs, err := qb.InsertModels("league_members", []leagueMemberInsertModel{{
		LeagueID: row.ID,
		UserID:   userID,
	}}, "ON CONFLICT (league_id, user_id) DO NOTHING")
	if err != nil {
		return league.League{}, fmt.Errorf("build insert personal league member query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, insertMember, memberArgs...); err != nil {
		return league.League{}, wrapDB(err, "insert personal league member")
	}

	activateSQL, activateArgs, err := sqlx.Named(activatePersonalGameQuery, map[string]any{
		"league_id": row.ID,
		"game_id":   gameID,
		"date":      date,
	})
	if err != nil {
		return league.League{}, fmt.Errorf("bind activate personal game query: %w", err)
	}
	activateSQL = tx.Rebind(activateSQL)
	if _, err := tx.ExecContext(ctx, activateSQL, activateArgs...); err != nil {
		return league.League{}, wrapDB(err, "activate personal league game")
	}

	if err := tx.Commit(); err != nil {
		return league.League{}, wrapDB(err, "commit personal league tx")
	}
	return leagueFromRow(row), nil
}

func leagueFromRow(row leagueTableModel) league.League {
	return league.League{
		ID:         row.ID,
		Name:       row.Name,
		InviteCode: row.InviteCode,
		CreatedBy:  row.CreatedBy,
		StartDate:  nullStringPtr(row.StartDate),
		EndDate:    nullStringPtr(row.EndDate),
		IsPersonal: row.IsPersonal,
		CreatedAt:  row.CreatedAt,
	}
}
