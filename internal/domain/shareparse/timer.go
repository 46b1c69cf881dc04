package shareparse

import "regexp"

const maxElapsedSeconds = 3599

var (
	contextualClockPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Solved on Expert Mode in (\d+):(\d+)`),
		regexp.MustCompile(`(?i)Solved in (\d+):(\d+)`),
		regexp.MustCompile(`(?i)Expert Mode in (\d+):(\d+)`),
		regexp.MustCompile(`(?i)Completed in (\d+):(\d+)`),
		regexp.MustCompile(`(?:in|:)\s*(\d+):(\d{1,2})\b`),
		regexp.MustCompile(`\b(\d{1,2}):(\d{1,2})\b`),
	}
	secondsPattern       = regexp.MustCompile(`(?i)(\d+)\s*seconds?`)
	secPattern           = regexp.MustCompile(`(?i)(\d+)\s*sec\b`)
	looseZeroClock       = regexp.MustCompile(`0\s*:\s*(\d{1,2})\b`)
	looseClockPattern    = regexp.MustCompile(`(\d{1,2})\s*:\s*(\d{1,2})\b`)
	clockShapedPattern   = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	secondsShapedPattern = regexp.MustCompile(`(?i)\b(\d+)\s*(?:seconds?|secs?|s)\b`)
)

// clockSeconds converts minutes and seconds captures, rejecting values that
// are not a valid clock reading under one hour.
func clockSeconds(minutesRaw, secondsRaw string) (int, bool) {
	minutes, ok := parseInt(minutesRaw)
	if !ok {
		return 0, false
	}
	seconds, ok := parseInt(secondsRaw)
	if !ok {
		return 0, false
	}
	if minutes >= 60 || seconds >= 60 {
		return 0, false
	}
	return minutes*60 + seconds, true
}

// ElapsedSeconds reads a solve time. Phrased timers ("Solved in 1:05") win
// over bare clock readings, which win over "N seconds" and "N sec".
func ElapsedSeconds(text string) (float64, bool) {
	for _, re := range contextualClockPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if total, ok := clockSeconds(m[1], m[2]); ok {
			return float64(total), true
		}
	}

	for _, re := range []*regexp.Regexp{secondsPattern, secPattern} {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if sec, ok := parseInt(m[1]); ok && sec <= maxElapsedSeconds {
			return float64(sec), true
		}
	}

	if m := looseZeroClock.FindStringSubmatch(text); m != nil {
		if sec, ok := parseInt(m[1]); ok && sec < 60 {
			return float64(sec), true
		}
	}
	if m := looseClockPattern.FindStringSubmatch(text); m != nil {
		if total, ok := clockSeconds(m[1], m[2]); ok {
			return float64(total), true
		}
	}

	return 0, false
}

type timeToken struct {
	seconds int
	end     int
}

// longestTimeShaped scans every clock or seconds-shaped token and returns the
// largest value under one hour.
func longestTimeShaped(text string) (timeToken, bool) {
	best := timeToken{seconds: -1}
	for _, loc := range clockShapedPattern.FindAllStringSubmatchIndex(text, -1) {
		total, ok := clockSeconds(text[loc[2]:loc[3]], text[loc[4]:loc[5]])
		if ok && total > best.seconds {
			best = timeToken{seconds: total, end: loc[1]}
		}
	}
	for _, loc := range secondsShapedPattern.FindAllStringSubmatchIndex(text, -1) {
		sec, ok := parseInt(text[loc[2]:loc[3]])
		if ok && sec <= maxElapsedSeconds && sec > best.seconds {
			best = timeToken{seconds: sec, end: loc[1]}
		}
	}
	if best.seconds < 0 {
		return timeToken{}, false
	}
	return best, true
}
