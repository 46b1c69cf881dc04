package league

import (
	"fmt"
	"strings"
	"time"
)

// PersonalLeagueName is the name of the implicit single-member league that
// collects scores for games the user plays outside any shared league.
const PersonalLeagueName = "Personal"

// League groups members competing on a set of games.
type League struct {
	ID         string
	Name       string
	InviteCode string
	CreatedBy  string
	StartDate  *string
	EndDate    *string
	IsPersonal bool
	CreatedAt  time.Time
}

func (l League) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return fmt.Errorf("league id is required")
	}
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("league name is required")
	}
	return nil
}

// Activation is a window during which a game counts toward a league's standings.
// A nil EndDate leaves the window open.
type Activation struct {
	LeagueID  string
	GameID    string
	StartDate string
	EndDate   *string
}
