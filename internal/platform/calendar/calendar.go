package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Layout is the canonical civil date format stored with every score.
const Layout = "2006-01-02"

// DefaultTimeZone is the zone whose wall clock decides which day a score belongs to.
const DefaultTimeZone = "America/New_York"

// Today returns the civil date of now in loc.
func Today(loc *time.Location, now time.Time) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format(Layout)
}

// Parse validates a YYYY-MM-DD date and returns it normalised.
func Parse(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	t, err := time.Parse(Layout, value)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
	}
	return t.Format(Layout), nil
}

// Valid reports whether raw is a well-formed civil date.
func Valid(raw string) bool {
	_, err := Parse(raw)
	return err == nil
}

// Weekday returns the day of week for date, 0=Sunday. Malformed dates report false.
func Weekday(date string) (time.Weekday, bool) {
	t, err := time.Parse(Layout, strings.TrimSpace(date))
	if err != nil {
		return time.Sunday, false
	}
	return t.Weekday(), true
}

// InWindow reports start <= date <= end, with a nil end meaning open-ended.
// Dates compare lexically, which is chronological for the canonical layout.
func InWindow(date, start string, end *string) bool {
	if date < start {
		return false
	}
	if end == nil || strings.TrimSpace(*end) == "" {
		return true
	}
	return date <= *end
}

// LoadLocation resolves a zone name, falling back to DefaultTimeZone when empty.
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultTimeZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", name, err)
	}
	return loc, nil
}
