package handicap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBook_Multiplier_AppliesOnlyConfiguredWeekdayInsideWindow(t *testing.T) {
	t.Parallel()

	end := "2026-10-31"
	book := NewBook([]Rule{{
		ID:          "h1",
		UserID:      "alice",
		GameID:      "crossword",
		StartDate:   "2026-10-01",
		EndDate:     &end,
		Multipliers: map[time.Weekday]float64{time.Wednesday: 0.5},
	}})

	// 2026-10-14 and 2026-11-04 are wednesdays.
	require.Equal(t, 0.5, book.Multiplier("alice", "crossword", "2026-10-14"))
	require.Equal(t, 1.0, book.Multiplier("alice", "crossword", "2026-10-15"))
	require.Equal(t, 1.0, book.Multiplier("alice", "crossword", "2026-11-04"))
	require.Equal(t, 1.0, book.Multiplier("bob", "crossword", "2026-10-14"))
	require.Equal(t, 1.0, book.Multiplier("alice", "connections", "2026-10-14"))
}

func TestBook_Multiplier_OverlappingRulesPreferLatestStart(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rules := []Rule{
		{ID: "newer-start", UserID: "u", GameID: "g", StartDate: "2026-03-01", Multipliers: map[time.Weekday]float64{time.Sunday: 0.25}, CreatedAt: created},
		{ID: "older-start", UserID: "u", GameID: "g", StartDate: "2026-01-01", Multipliers: map[time.Weekday]float64{time.Sunday: 0.75}, CreatedAt: created.Add(time.Hour)},
	}

	forward := NewBook(rules)
	reversed := NewBook([]Rule{rules[1], rules[0]})

	// 2026-03-08 is a sunday covered by both rules.
	require.Equal(t, 0.25, forward.Multiplier("u", "g", "2026-03-08"))
	require.Equal(t, 0.25, reversed.Multiplier("u", "g", "2026-03-08"))
	// 2026-02-01 is a sunday only the older rule covers.
	require.Equal(t, 0.75, forward.Multiplier("u", "g", "2026-02-01"))
}

func TestBook_Multiplier_SameStartPrefersLatestCreated(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	book := NewBook([]Rule{
		{ID: "a", UserID: "u", GameID: "g", StartDate: "2026-01-01", Multipliers: map[time.Weekday]float64{time.Monday: 0.9}, CreatedAt: created},
		{ID: "b", UserID: "u", GameID: "g", StartDate: "2026-01-01", Multipliers: map[time.Weekday]float64{time.Monday: 0.6}, CreatedAt: created.Add(time.Minute)},
	})

	rule, ok := book.RuleFor("u", "g", "2026-01-05")
	require.True(t, ok)
	require.Equal(t, "b", rule.ID)
	require.Equal(t, 2, book.Len())
}

func TestParseMultiplier(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{raw: "75%", want: 0.75},
		{raw: " 50 % ", want: 0.5},
		{raw: "100%", want: 1},
		{raw: "0.8", want: 0.8},
		{raw: "0%", wantErr: true},
		{raw: "150%", wantErr: true},
		{raw: "-1", wantErr: true},
		{raw: "abc", wantErr: true},
	}

	for _, tc := range tests {
		got, err := ParseMultiplier(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseMultiplier(%q) error: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("ParseMultiplier(%q)=%v want %v", tc.raw, got, tc.want)
		}
	}
}

func TestRule_Validate(t *testing.T) {
	before := "2025-12-31"
	rule := Rule{UserID: "u", GameID: "g", StartDate: "2026-01-01", EndDate: &before}
	require.Error(t, rule.Validate())

	rule.EndDate = nil
	rule.Multipliers = map[time.Weekday]float64{time.Friday: 0}
	require.Error(t, rule.Validate())

	rule.Multipliers[time.Friday] = 0.5
	require.NoError(t, rule.Validate())
}

func TestParseWeekday(t *testing.T) {
	for raw, want := range map[string]time.Weekday{"0": time.Sunday, "3": time.Wednesday, "Wed": time.Wednesday, " saturday ": time.Saturday} {
		got, err := ParseWeekday(raw)
		require.NoError(t, err, raw)
		require.Equal(t, want, got, raw)
	}
	for _, raw := range []string{"7", "-1", "someday", ""} {
		_, err := ParseWeekday(raw)
		require.Error(t, err, raw)
	}
}
