package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/puzzle-league/internal/domain/score"
	qb "github.com/riskibarqy/puzzle-league/internal/platform/querybuilder"
)

type ScoreRepository struct {
	db *sqlx.DB
}

func NewScoreRepository(db *sqlx.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

var upsertScoreSuffix = `ON CONFLICT (user_id, league_id, game_id, date)
DO UPDATE SET
    score = EXCLUDED.score,
    updated_at = NOW()
RETURNING ` + strings.Join(scoreColumns, ", ")

// Upsert writes all records in one statement. Records sharing a key collapse
// to the last one, since Postgres rejects touching a row twice per command.
func (r *ScoreRepository) Upsert(ctx context.Context, records []score.Record) ([]score.Record, error) {
	if len(records) == 0 {
		return []score.Record{}, nil
	}

	models := dedupeScores(records)
	query, args, err := qb.InsertModels("scores", models, upsertScoreSuffix)
	if err != nil {
		return nil, fmt.Errorf("build upsert scores query: %w", err)
	}

	var rows []scoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapDB(err, "upsert scores")
	}
	return scoresFromRows(rows), nil
}

func (r *ScoreRepository) List(ctx context.Context, filter score.Filter) ([]score.Record, error) {
	conditions := make([]qb.Condition, 0, 6)
	if filter.UserID != "" {
		conditions = append(conditions, qb.Eq("user_id", filter.UserID))
	}
	if filter.LeagueID != "" {
		conditions = append(conditions, qb.Eq("league_id", filter.LeagueID))
	}
	if filter.GameID != "" {
		conditions = append(conditions, qb.Eq("game_id", filter.GameID))
	}
	if filter.From != "" {
		conditions = append(conditions, qb.Gte("date", filter.From))
	}
	if filter.To != "" {
		conditions = append(conditions, qb.Lte("date", filter.To))
	}
	if len(filter.UserIDs) > 0 {
		conditions = append(conditions, qb.AnyOf("user_id", filter.UserIDs))
	}

	query, args, err := qb.Select(scoreColumns...).From("scores").
		Where(conditions...).
		OrderBy("date", "game_id", "league_id", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list scores query: %w", err)
	}

	var rows []scoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapDB(err, "list scores")
	}
	return scoresFromRows(rows), nil
}

func dedupeScores(records []score.Record) []scoreInsertModel {
	type key struct{ userID, leagueID, gameID, date string }

	index := make(map[key]int, len(records))
	out := make([]scoreInsertModel, 0, len(records))
	for _, rec := range records {
		k := key{rec.UserID, rec.LeagueID, rec.GameID, rec.Date}
		model := scoreInsertModel{
			UserID:   rec.UserID,
			LeagueID: rec.LeagueID,
			GameID:   rec.GameID,
			Date:     rec.Date,
			Score:    rec.Score,
		}
		if i, ok := index[k]; ok {
			out[i] = model
			continue
		}
		index[k] = len(out)
		out = append(out, model)
	}
	return out
}

func scoresFromRows(rows []scoreTableModel) []score.Record {
	out := make([]score.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, score.Record{
			UserID:    row.UserID,
			LeagueID:  row.LeagueID,
			GameID:    row.GameID,
			Date:      row.Date,
			Score:     row.Score,
			CreatedAt: row.CreatedAt,
		})
	}
	return out
}
