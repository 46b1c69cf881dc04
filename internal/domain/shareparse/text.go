package shareparse

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	numberPattern  = regexp.MustCompile(`\d+(?:\.\d+)?`)
	integerPattern = regexp.MustCompile(`\d+`)
)

// normalize folds full-width digits and punctuation to ASCII and unifies line
// endings. The ratio sign is not covered by NFKC but shows up as a colon in
// some timer renderings.
func normalize(text string) string {
	out := norm.NFKC.String(text)
	out = strings.ReplaceAll(out, "∶", ":")
	out = strings.ReplaceAll(out, "\r\n", "\n")
	return strings.ReplaceAll(out, "\r", "\n")
}

func parseNumber(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || !acceptable(v) {
		return 0, false
	}
	return v, true
}

func parseInt(raw string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func acceptable(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// numbersInOrder returns every integer or decimal in document order.
func numbersInOrder(text string) []float64 {
	matches := numberPattern.FindAllString(text, -1)
	out := make([]float64, 0, len(matches))
	for _, m := range matches {
		if v, ok := parseNumber(m); ok {
			out = append(out, v)
		}
	}
	return out
}

// glyphs strips whitespace and emoji presentation selectors from line.
func glyphs(line string) []rune {
	out := make([]rune, 0, len(line))
	for _, r := range line {
		switch r {
		case ' ', '\t', '\u00a0', '\ufe0f', '\ufe0e', '\u200d':
			continue
		}
		out = append(out, r)
	}
	return out
}

func lines(text string) []string {
	return strings.Split(text, "\n")
}
