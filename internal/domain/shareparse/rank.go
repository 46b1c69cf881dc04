package shareparse

import (
	"net/url"
	"regexp"
	"strings"
)

type rankWord struct {
	phrase string
	match  *regexp.Regexp
	value  float64
}

// Highest rank first.
var rankVocabulary = []rankWord{
	{phrase: "queen bee", match: regexp.MustCompile(`(?i)queen\s+bee`), value: 2},
	{phrase: "genius", match: regexp.MustCompile(`(?i)genius`), value: 1},
}

// RankFromValue maps an exact rank name to its ordinal; unknown names are 0.
func RankFromValue(value string) float64 {
	v := strings.ToLower(strings.Join(strings.Fields(value), " "))
	for _, w := range rankVocabulary {
		if v == w.phrase {
			return w.value
		}
	}
	return 0
}

// RankFromText maps the best rank phrase found anywhere in text.
func RankFromText(text string) float64 {
	for _, w := range rankVocabulary {
		if w.match.MatchString(text) {
			return w.value
		}
	}
	return 0
}

// parseResultURL accepts absolute URLs only.
func parseResultURL(text string) (*url.URL, bool) {
	u, err := url.Parse(strings.TrimSpace(text))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, false
	}
	return u, true
}

// RankFromURLParam reads param from a result URL. Free text that is not a URL
// is scanned for rank phrases instead.
func RankFromURLParam(text, param string) float64 {
	u, ok := parseResultURL(text)
	if !ok {
		return RankFromText(text)
	}
	return RankFromValue(u.Query().Get(param))
}

// CategoricalRank maps rank phrases in free text. Result URLs are left to the
// game's configured query parameter.
func CategoricalRank(text string) (float64, bool) {
	if _, ok := parseResultURL(text); ok {
		return 0, false
	}
	return RankFromText(text), true
}
