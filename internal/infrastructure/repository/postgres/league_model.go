package postgres

import (
	"database/sql"
	"time"
)

type leagueTableModel struct {
	ID         string         `db:"id"`
	Name       string         `db:"name"`
	InviteCode string         `db:"invite_code"`
	CreatedBy  string         `db:"created_by"`
	StartDate  sql.NullString `db:"start_date"`
	EndDate    sql.NullString `db:"end_date"`
	IsPersonal bool           `db:"is_personal"`
	CreatedAt  time.Time      `db:"created_at"`
}

// leagueInsertModel omits created_at so the column default applies.
type leagueInsertModel struct {
	ID         string         `db:"id"`
	Name       string         `db:"name"`
	InviteCode string         `db:"invite_code"`
	CreatedBy  string         `db:"created_by"`
	StartDate  sql.NullString `db:"start_date"`
	EndDate    sql.NullString `db:"end_date"`
	IsPersonal bool           `db:"is_personal"`
}

type leagueMemberInsertModel struct {
	LeagueID string `db:"league_id"`
	UserID   string `db:"user_id"`
}

type activationTableModel struct {
	LeagueID  string         `db:"league_id"`
	GameID    string         `db:"game_id"`
	StartDate string         `db:"start_date"`
	EndDate   sql.NullString `db:"end_date"`
}

var leagueColumns = []string{
	"id",
	"name",
	"invite_code",
	"created_by",
	dateColumn("start_date", "start_date"),
	dateColumn("end_date", "end_date"),
	"is_personal",
	"created_at",
}

var activationColumns = []string{
	"league_id",
	"game_id",
	dateColumn("start_date", "start_date"),
	dateColumn("end_date", "end_date"),
}
