package postgres

import (
	"database/sql"
	"time"
)

type gameTableModel struct {
	ID        string    `db:"id"`
	Slug      string    `db:"slug"`
	Name      string    `db:"name"`
	ScoreType string    `db:"score_type"`
	CreatedAt time.Time `db:"created_at"`

	PatternType  sql.NullString `db:"pattern_type"`
	Pattern      sql.NullString `db:"pattern"`
	ScorePath    sql.NullString `db:"score_path"`
	CaptureGroup sql.NullInt64  `db:"capture_group"`
}

var gameColumns = []string{
	"g.id",
	"g.slug",
	"g.name",
	"g.score_type",
	"g.created_at",
	"p.pattern_type",
	"p.pattern",
	"p.score_path",
	"p.capture_group",
}

const gameTables = "games g LEFT JOIN game_parsers p ON p.game_id = g.id"
