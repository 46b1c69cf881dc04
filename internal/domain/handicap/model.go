package handicap

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/puzzle-league/internal/platform/calendar"
)

// Rule scales one member's raw score for one game on selected weekdays while
// the date lies in [StartDate, EndDate]. Weekdays missing from Multipliers keep
// the raw score.
type Rule struct {
	ID          string
	LeagueID    string
	UserID      string
	GameID      string
	StartDate   string
	EndDate     *string
	Multipliers map[time.Weekday]float64
	CreatedAt   time.Time
}

func (r Rule) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return fmt.Errorf("handicap user id is required")
	}
	if strings.TrimSpace(r.GameID) == "" {
		return fmt.Errorf("handicap game id is required")
	}
	if !calendar.Valid(r.StartDate) {
		return fmt.Errorf("invalid handicap start date %q", r.StartDate)
	}
	if r.EndDate != nil {
		if !calendar.Valid(*r.EndDate) {
			return fmt.Errorf("invalid handicap end date %q", *r.EndDate)
		}
		if *r.EndDate < r.StartDate {
			return fmt.Errorf("handicap end date %s is before start date %s", *r.EndDate, r.StartDate)
		}
	}
	for day, m := range r.Multipliers {
		if day < time.Sunday || day > time.Saturday {
			return fmt.Errorf("invalid weekday %d", day)
		}
		if math.IsNaN(m) || math.IsInf(m, 0) || m <= 0 {
			return fmt.Errorf("multiplier for %s must be > 0", day)
		}
	}
	return nil
}

func (r Rule) covers(date string) bool {
	return calendar.InWindow(date, r.StartDate, r.EndDate)
}

var percentPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*%$`)

// ParseMultiplier accepts "75%" style percentages (0 < p <= 100) or plain
// decimal factors in (0, 10].
func ParseMultiplier(raw string) (float64, error) {
	value := strings.TrimSpace(raw)
	if m := percentPattern.FindStringSubmatch(value); m != nil {
		pct, err := strconv.ParseFloat(m[1], 64)
		if err != nil || pct <= 0 || pct > 100 {
			return 0, fmt.Errorf("invalid handicap percentage %q", raw)
		}
		return pct / 100, nil
	}

	factor, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(factor) || factor <= 0 || factor > 10 {
		return 0, fmt.Errorf("invalid handicap multiplier %q", raw)
	}
	return factor, nil
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// ParseWeekday accepts 0 (Sunday) through 6 or an English day name.
func ParseWeekday(raw string) (time.Weekday, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if day, ok := weekdayNames[value]; ok {
		return day, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 || n > 6 {
		return 0, fmt.Errorf("invalid weekday %q", raw)
	}
	return time.Weekday(n), nil
}
