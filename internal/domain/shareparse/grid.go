package shareparse

import (
	"regexp"
	"strings"
)

// MarkerSet is an immutable set of grid glyphs.
type MarkerSet struct {
	runes map[rune]struct{}
}

func NewMarkerSet(markers ...rune) MarkerSet {
	set := make(map[rune]struct{}, len(markers))
	for _, r := range markers {
		set[r] = struct{}{}
	}
	return MarkerSet{runes: set}
}

func (m MarkerSet) Has(r rune) bool {
	_, ok := m.runes[r]
	return ok
}

func (m MarkerSet) inLine(line string) bool {
	return strings.IndexFunc(line, m.Has) >= 0
}

var (
	// Letter-guess grid: absent (light and dark theme), present, correct.
	GuessGridMarkers = NewMarkerSet('⬜', '⬛', '🟨', '🟩')
	// Four colour groups of the grouping puzzle.
	GroupGridMarkers = NewMarkerSet('🟪', '🟦', '🟩', '🟨')
)

// CountMarkerLines scores one point per line carrying any marker. A text with
// no marker lines is not a grid and yields no score.
func CountMarkerLines(markers MarkerSet) Strategy {
	return func(text string) (float64, bool) {
		count := 0
		for _, line := range lines(text) {
			if strings.TrimSpace(line) == "" {
				continue
			}
			if markers.inLine(line) {
				count++
			}
		}
		if count == 0 {
			return 0, false
		}
		return float64(count), true
	}
}

// CountMixedLines scores one point per marker line whose glyphs are not all
// the same marker, i.e. each wrong group guess.
func CountMixedLines(markers MarkerSet) Strategy {
	return func(text string) (float64, bool) {
		seen := 0
		mixed := 0
		for _, line := range lines(text) {
			if !markers.inLine(line) {
				continue
			}
			seen++
			if !uniformLine(line, markers) {
				mixed++
			}
		}
		if seen == 0 {
			return 0, false
		}
		return float64(mixed), true
	}
}

func uniformLine(line string, markers MarkerSet) bool {
	rs := glyphs(line)
	if len(rs) == 0 || !markers.Has(rs[0]) {
		return false
	}
	for _, r := range rs[1:] {
		if r != rs[0] {
			return false
		}
	}
	return true
}

const failedGuessScore = 7

var guessHeaderPattern = regexp.MustCompile(`(?i)\bwordle\s+[\d,.]+\s+([1-6x])/6\b`)

// GuessHeader reads the attempt count from a result header when the grid is
// missing. A failed game ("X/6") scores one more than the worst solve.
func GuessHeader(text string) (float64, bool) {
	m := guessHeaderPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	if strings.EqualFold(m[1], "x") {
		return failedGuessScore, true
	}
	n, ok := parseInt(m[1])
	return float64(n), ok
}
