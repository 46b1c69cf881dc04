package shareparse

import (
	"errors"
	"strings"

	"github.com/riskibarqy/puzzle-league/internal/domain/game"
)

// ErrNoScoreExtractable reports share text that yields no plausible score.
var ErrNoScoreExtractable = errors.New("no score extractable from share text")

// Parser is safe for concurrent use.
type Parser struct {
	registry Registry
	configs  map[string]game.ParserConfig
}

// New builds a parser. configs supplies the declared pattern used for a slug
// when the caller passes none.
func New(registry Registry, configs map[string]game.ParserConfig) *Parser {
	copied := make(map[string]game.ParserConfig, len(configs))
	for slug, cfg := range configs {
		copied[slug] = cfg
	}
	return &Parser{registry: registry, configs: copied}
}

func NewDefault() *Parser {
	return New(DefaultRegistry(), DefaultConfigs())
}

// Parse extracts a score for slug using its built-in parser config.
func (p *Parser) Parse(slug, text string) (float64, error) {
	var cfg *game.ParserConfig
	if c, ok := p.configs[slug]; ok {
		cfg = &c
	}
	return p.ParseWithConfig(slug, cfg, text)
}

// ParseWithConfig runs the extraction chain: the slug's structural
// strategies, then cfg's declared pattern or URL parameter, then the first
// number in the text with the slug's correction applied. Text in a format the
// slug claims stops after the structural strategies.
func (p *Parser) ParseWithConfig(slug string, cfg *game.ParserConfig, text string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, ErrNoScoreExtractable
	}
	normalized := normalize(text)

	for _, strategy := range p.registry.Strategies(slug) {
		if v, ok := strategy(normalized); ok && acceptable(v) {
			return v, nil
		}
	}
	if p.registry.Claimed(slug, normalized) {
		return 0, ErrNoScoreExtractable
	}

	if strategy, ok := configStrategy(cfg); ok {
		if v, ok := strategy(normalized); ok && acceptable(v) {
			return v, nil
		}
	}

	return p.fallback(slug, normalized)
}

func (p *Parser) fallback(slug, text string) (float64, error) {
	all := numbersInOrder(text)
	if len(all) == 0 {
		return 0, ErrNoScoreExtractable
	}
	score := all[0]
	if correct, ok := p.registry.Corrector(slug); ok {
		score = correct(score, all)
	}
	if !acceptable(score) {
		return 0, ErrNoScoreExtractable
	}
	return score, nil
}

// DefaultConfigs are the parser rows seeded for the built-in games.
func DefaultConfigs() map[string]game.ParserConfig {
	return map[string]game.ParserConfig{
		"wordle": {
			PatternType:  game.PatternTypeRegex,
			Pattern:      `Wordle\s+[\d,]+\s+(\d)/6`,
			ScorePath:    "count_lines",
			CaptureGroup: 1,
		},
		"connections": {
			PatternType: game.PatternTypeRegex,
			ScorePath:   "count_errors",
		},
		"pyramid-scheme": {
			PatternType:  game.PatternTypeRegex,
			Pattern:      `(?i)in\s+(\d+)\s*seconds?`,
			ScorePath:    "time_mm_ss",
			CaptureGroup: 1,
		},
		"bracket-city": {
			PatternType:  game.PatternTypeRegex,
			Pattern:      `(?i)Total Score:\s*(\d+(?:\.\d+)?)`,
			ScorePath:    "total_score",
			CaptureGroup: 1,
		},
		"keyword": {
			PatternType: game.PatternTypeRegex,
			ScorePath:   "time_errors",
		},
		"spelling-bee": {
			PatternType: game.PatternTypeURLParam,
			Pattern:     "rank",
			ScorePath:   "spelling_bee_rank",
		},
		"quintumble": {
			PatternType:  game.PatternTypeRegex,
			Pattern:      `🎯\s*(\d+)`,
			ScorePath:    "target",
			CaptureGroup: 1,
		},
	}
}
