package shareparse

import "regexp"

var labelledScorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Total Score:\s*(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)Score:\s*(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)score is\s*(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*points?`),
	regexp.MustCompile(`(\d+(?:\.\d+)?)\s*/\s*\d+`),
}

// LabelledScore reads a decimal score next to a "Total Score", "Score",
// "points" or N/M label.
func LabelledScore(text string) (float64, bool) {
	for _, re := range labelledScorePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if v, ok := parseNumber(m[1]); ok {
				return v, true
			}
		}
	}
	return 0, false
}

// highestAboveOne replaces a leading 0 or 1, usually a puzzle ordinal, with
// the largest number above one.
func highestAboveOne(first float64, all []float64) float64 {
	if first > 1 {
		return first
	}
	best := first
	for _, v := range all {
		if v > 1 && v > best {
			best = v
		}
	}
	return best
}

// skipLeadingZero reads "0:23" style text as 23 seconds.
func skipLeadingZero(first float64, all []float64) float64 {
	if first != 0 || len(all) < 2 {
		return first
	}
	if second := all[1]; second >= 1 && second <= maxElapsedSeconds {
		return second
	}
	return first
}
