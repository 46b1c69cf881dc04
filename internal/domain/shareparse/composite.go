package shareparse

import "regexp"

const (
	maxCompositeErrors = 49
	// A guess count includes the winning guesses of a clean solve.
	freeGuesses     = 6
	errorPenalty    = 10
	fallbackBandMin = 10
	fallbackBandMax = 2000
)

var (
	timeLabelPattern    = regexp.MustCompile(`(?i)\btime\s*:\s*(\d+)(?::(\d{1,2}))?`)
	errorLabelPattern   = regexp.MustCompile(`(?i)\b(?:errors?|wrong|mistakes?)\s*:\s*(\d+)`)
	errorSuffixPattern  = regexp.MustCompile(`(?i)\b(\d+)\s+(?:errors?|mistakes?)\b`)
	guessLabelPattern   = regexp.MustCompile(`(?i)\bguess(?:es)?\s*:\s*(\d+)`)
	trailingBarePattern = regexp.MustCompile(`(\d+)\s*$`)

	compositePairPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)time\s*:\s*(\d+)\s*,\s*errors\s*:\s*(\d+)`),
		regexp.MustCompile(`(?is)time\s*:\s*(\d+).*errors\s*:\s*(\d+)`),
		regexp.MustCompile(`(\d+)\s*,\s*(\d+)`),
		regexp.MustCompile(`(?is)(\d+)\s+seconds?.*?(\d+)\s+errors?`),
		regexp.MustCompile(`(?is)(\d+)\s+sec.*?(\d+)\s+errors?`),
	}
)

// CompositeScore combines elapsed seconds and an error count into
// seconds + errors*10.
func CompositeScore(seconds, errors int) float64 {
	return float64(seconds + errors*errorPenalty)
}

// TimeWithErrors reads the elapsed time and error count of a timed word
// puzzle independently and combines them. A guess count stands in for the
// error count when no error label is present.
func TimeWithErrors(text string) (float64, bool) {
	tok, timeOK := labelledTime(text)
	errs, errsOK := labelledErrors(text)
	if timeOK && errsOK {
		return CompositeScore(tok.seconds, errs), true
	}
	if !errsOK && hasCountLabel(text) {
		return 0, false
	}

	for _, re := range compositePairPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		seconds, ok1 := parseInt(m[1])
		count, ok2 := parseInt(m[2])
		if !ok1 || !ok2 {
			continue
		}
		if timeOK {
			seconds = tok.seconds
		}
		if errsOK {
			count = errs
		}
		if seconds > maxElapsedSeconds || count > maxCompositeErrors {
			continue
		}
		return CompositeScore(seconds, count), true
	}

	if !timeOK {
		tok, timeOK = longestTimeShaped(text)
	}
	if !timeOK {
		return 0, false
	}
	if !errsOK {
		loc := trailingBarePattern.FindStringSubmatchIndex(text)
		if loc == nil || loc[0] < tok.end {
			return 0, false
		}
		errs, errsOK = parseInt(text[loc[2]:loc[3]])
		if !errsOK || errs > maxCompositeErrors {
			return 0, false
		}
	}
	return CompositeScore(tok.seconds, errs), true
}

func labelledTime(text string) (timeToken, bool) {
	loc := timeLabelPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return timeToken{}, false
	}
	if loc[4] >= 0 {
		total, ok := clockSeconds(text[loc[2]:loc[3]], text[loc[4]:loc[5]])
		if !ok {
			return timeToken{}, false
		}
		return timeToken{seconds: total, end: loc[1]}, true
	}
	seconds, ok := parseInt(text[loc[2]:loc[3]])
	if !ok || seconds > maxElapsedSeconds {
		return timeToken{}, false
	}
	return timeToken{seconds: seconds, end: loc[1]}, true
}

func labelledErrors(text string) (int, bool) {
	for _, re := range []*regexp.Regexp{errorLabelPattern, errorSuffixPattern} {
		if m := re.FindStringSubmatch(text); m != nil {
			if n, ok := parseInt(m[1]); ok && n <= maxCompositeErrors {
				return n, true
			}
		}
	}
	if m := guessLabelPattern.FindStringSubmatch(text); m != nil {
		n, ok := parseInt(m[1])
		if ok && n >= freeGuesses && n-freeGuesses <= maxCompositeErrors {
			return n - freeGuesses, true
		}
	}
	return 0, false
}

// hasCountLabel reports a labelled error or guess count, valid or not.
func hasCountLabel(text string) bool {
	return errorLabelPattern.MatchString(text) ||
		errorSuffixPattern.MatchString(text) ||
		guessLabelPattern.MatchString(text)
}

// compositeFallback reinterprets a pair of bare numbers as time and errors in
// whichever order lands in a plausible band, preferring the larger.
func compositeFallback(first float64, all []float64) float64 {
	if len(all) != 2 {
		return first
	}
	a, b := all[0], all[1]
	score := first
	if s := a + b*errorPenalty; inBand(s) {
		score = s
	}
	if s := b + a*errorPenalty; inBand(s) && s > score {
		score = s
	}
	return score
}

func inBand(v float64) bool {
	return v >= fallbackBandMin && v < fallbackBandMax
}

// hasCompositeLabel reports a labelled time or count. Such text is judged by
// TimeWithErrors alone so out-of-range values are not rescued by a bare number.
func hasCompositeLabel(text string) bool {
	return timeLabelPattern.MatchString(text) || hasCountLabel(text)
}
