package score

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/riskibarqy/puzzle-league/internal/platform/calendar"
)

// Record is one user's result for one game on one civil date in one league.
// (UserID, LeagueID, GameID, Date) is unique; later writes replace earlier ones.
type Record struct {
	UserID    string
	LeagueID  string
	GameID    string
	Date      string
	Score     float64
	CreatedAt time.Time
}

func (r Record) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(r.LeagueID) == "" {
		return fmt.Errorf("league id is required")
	}
	if strings.TrimSpace(r.GameID) == "" {
		return fmt.Errorf("game id is required")
	}
	if !calendar.Valid(r.Date) {
		return fmt.Errorf("invalid score date %q", r.Date)
	}
	if math.IsNaN(r.Score) || math.IsInf(r.Score, 0) {
		return fmt.Errorf("score must be a finite number")
	}
	return nil
}

// Filter narrows score listings. Empty fields do not filter.
type Filter struct {
	UserID   string
	LeagueID string
	GameID   string
	From     string
	To       string
	UserIDs  []string
}
