package game

import (
	"fmt"
	"strings"
)

type ScoreType string

const (
	ScoreTypeLowerBetter  ScoreType = "lower_better"
	ScoreTypeHigherBetter ScoreType = "higher_better"
)

// Game is a third-party daily puzzle tracked by leagues.
type Game struct {
	ID        string
	Slug      string
	Name      string
	ScoreType ScoreType
	Parser    *ParserConfig
}

func (g Game) LowerIsBetter() bool {
	return g.ScoreType == ScoreTypeLowerBetter
}

func (g Game) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return fmt.Errorf("game id is required")
	}
	if strings.TrimSpace(g.Slug) == "" {
		return fmt.Errorf("game slug is required")
	}
	switch g.ScoreType {
	case ScoreTypeLowerBetter, ScoreTypeHigherBetter:
	default:
		return fmt.Errorf("unknown score type %q", g.ScoreType)
	}
	if g.Parser != nil {
		return g.Parser.Validate()
	}
	return nil
}

type PatternType string

const (
	PatternTypeRegex    PatternType = "regex"
	PatternTypeURLParam PatternType = "url_param"
)

// ParserConfig is the per-game share parser row. Pattern holds a regular
// expression for regex parsers and a query parameter name for url_param ones.
type ParserConfig struct {
	PatternType  PatternType
	Pattern      string
	ScorePath    string
	CaptureGroup int
}

func (c ParserConfig) Validate() error {
	switch c.PatternType {
	case PatternTypeRegex, PatternTypeURLParam:
	default:
		return fmt.Errorf("unknown parser pattern type %q", c.PatternType)
	}
	if c.CaptureGroup < 0 {
		return fmt.Errorf("capture group must be >= 0")
	}
	return nil
}
