package shareparse

import (
	"regexp"

	"github.com/riskibarqy/puzzle-league/internal/domain/game"
)

// DeclaredPattern applies a game's configured regular expression, trying
// multi-line mode before the plain pattern. Patterns that do not compile are
// treated as no match.
func DeclaredPattern(pattern string, group int) Strategy {
	if group <= 0 {
		group = 1
	}
	compiled := make([]*regexp.Regexp, 0, 2)
	for _, src := range []string{"(?m)" + pattern, pattern} {
		re, err := regexp.Compile(src)
		if err != nil {
			return func(string) (float64, bool) { return 0, false }
		}
		compiled = append(compiled, re)
	}

	return func(text string) (float64, bool) {
		if m := compiled[0].FindStringSubmatch(text); len(m) > group {
			if v, ok := parseNumber(m[group]); ok {
				return v, true
			}
		}
		for _, m := range compiled[1].FindAllStringSubmatch(text, -1) {
			if len(m) <= group || m[group] == "" {
				continue
			}
			if v, ok := parseNumber(m[group]); ok {
				return v, true
			}
		}
		return 0, false
	}
}

// URLParamRank reads a rank from the configured query parameter.
func URLParamRank(param string) Strategy {
	return func(text string) (float64, bool) {
		return RankFromURLParam(text, param), true
	}
}

func configStrategy(cfg *game.ParserConfig) (Strategy, bool) {
	if cfg == nil {
		return nil, false
	}
	switch cfg.PatternType {
	case game.PatternTypeRegex:
		if cfg.Pattern == "" {
			return nil, false
		}
		return DeclaredPattern(cfg.Pattern, cfg.CaptureGroup), true
	case game.PatternTypeURLParam:
		if cfg.Pattern == "" {
			return nil, false
		}
		return URLParamRank(cfg.Pattern), true
	default:
		return nil, false
	}
}
