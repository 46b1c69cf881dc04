package handicap

import (
	"sort"

	"github.com/riskibarqy/puzzle-league/internal/platform/calendar"
)

type bookKey struct {
	userID string
	gameID string
}

// Book answers multiplier lookups for a league's rules. Rules sharing a
// (user, game) pair are kept most specific first: latest StartDate, then latest
// CreatedAt, then highest ID, so overlapping windows resolve the same way no
// matter how storage ordered them.
type Book struct {
	rules map[bookKey][]Rule
}

func NewBook(rules []Rule) Book {
	index := make(map[bookKey][]Rule)
	for _, rule := range rules {
		key := bookKey{userID: rule.UserID, gameID: rule.GameID}
		index[key] = append(index[key], rule)
	}
	for key := range index {
		items := index[key]
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].StartDate != items[j].StartDate {
				return items[i].StartDate > items[j].StartDate
			}
			if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
				return items[i].CreatedAt.After(items[j].CreatedAt)
			}
			return items[i].ID > items[j].ID
		})
	}
	return Book{rules: index}
}

// Multiplier returns the factor applied to userID's raw score for gameID on
// date. It is 1 when no rule covers the date or the weekday is not configured.
func (b Book) Multiplier(userID, gameID, date string) float64 {
	rule, ok := b.RuleFor(userID, gameID, date)
	if !ok {
		return 1
	}
	day, ok := calendar.Weekday(date)
	if !ok {
		return 1
	}
	if m, ok := rule.Multipliers[day]; ok {
		return m
	}
	return 1
}

func (b Book) RuleFor(userID, gameID, date string) (Rule, bool) {
	for _, rule := range b.rules[bookKey{userID: userID, gameID: gameID}] {
		if rule.covers(date) {
			return rule, true
		}
	}
	return Rule{}, false
}

func (b Book) Len() int {
	n := 0
	for _, items := range b.rules {
		n += len(items)
	}
	return n
}
