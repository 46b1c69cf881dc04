package postgres

import (
	"database/sql"
	"strconv"
	"time"

	crerr "github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type handicapTableModel struct {
	ID          string         `db:"id"`
	LeagueID    string         `db:"league_id"`
	UserID      string         `db:"user_id"`
	GameID      string         `db:"game_id"`
	StartDate   string         `db:"start_date"`
	EndDate     sql.NullString `db:"end_date"`
	Multipliers []byte         `db:"multipliers"`
	CreatedAt   time.Time      `db:"created_at"`
}

type handicapInsertModel struct {
	ID          string         `db:"id"`
	LeagueID    string         `db:"league_id"`
	UserID      string         `db:"user_id"`
	GameID      string         `db:"game_id"`
	StartDate   string         `db:"start_date"`
	EndDate     sql.NullString `db:"end_date"`
	Multipliers string         `db:"multipliers"`
	CreatedAt   time.Time      `db:"created_at"`
}

var handicapColumns = []string{
	"id",
	"league_id",
	"user_id",
	"game_id",
	dateColumn("start_date", "start_date"),
	dateColumn("end_date", "end_date"),
	"multipliers",
	"created_at",
}

// The multipliers column is a JSON object keyed by weekday number, 0=Sunday.
func encodeMultipliers(m map[time.Weekday]float64) (string, error) {
	raw := make(map[string]float64, len(m))
	for day, v := range m {
		raw[strconv.Itoa(int(day))] = v
	}
	out, err := json.MarshalToString(raw)
	if err != nil {
		return "", crerr.Wrap(err, "encode handicap multipliers")
	}
	return out, nil
}

func decodeMultipliers(data []byte) (map[time.Weekday]float64, error) {
	out := make(map[time.Weekday]float64)
	if len(data) == 0 {
		return out, nil
	}

	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, crerr.Wrap(err, "decode handicap multipliers")
	}
	for key, v := range raw {
		n, err := strconv.Atoi(key)
		if err != nil || n < int(time.Sunday) || n > int(time.Saturday) {
			return nil, crerr.Newf("invalid weekday key %q in handicap multipliers", key)
		}
		out[time.Weekday(n)] = v
	}
	return out, nil
}
