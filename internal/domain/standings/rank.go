package standings

import "sort"

type rankable struct {
	userID string
	value  float64
}

// rank sorts entries in place, best first with user id breaking ties, and
// returns competition points per user: tied values share the position of the
// first of the group and the next group skips past it (1, 1, 3).
func rank(entries []rankable, ascending bool) map[string]int {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].value != entries[j].value {
			if ascending {
				return entries[i].value < entries[j].value
			}
			return entries[i].value > entries[j].value
		}
		return entries[i].userID < entries[j].userID
	})

	points := make(map[string]int, len(entries))
	current := 0
	for idx, e := range entries {
		if idx == 0 || e.value != entries[idx-1].value {
			current = idx + 1
		}
		points[e.userID] = current
	}
	return points
}
