package postgres

import "time"

type scoreTableModel struct {
	UserID    string    `db:"user_id"`
	LeagueID  string    `db:"league_id"`
	GameID    string    `db:"game_id"`
	Date      string    `db:"date"`
	Score     float64   `db:"score"`
	CreatedAt time.Time `db:"created_at"`
}

type scoreInsertModel struct {
	UserID   string  `db:"user_id"`
	LeagueID string  `db:"league_id"`
	GameID   string  `db:"game_id"`
	Date     string  `db:"date"`
	Score    float64 `db:"score"`
}

var scoreColumns = []string{
	"user_id",
	"league_id",
	"game_id",
	dateColumn("date", "date"),
	"score",
	"created_at",
}
