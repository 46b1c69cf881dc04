package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/puzzle-league/internal/domain/game"
	"github.com/riskibarqy/puzzle-league/internal/domain/shareparse"
	"github.com/riskibarqy/puzzle-league/internal/platform/logging"
	"github.com/riskibarqy/puzzle-league/internal/platform/workerpool"
)

const DefaultParseBatchMax = 50

type ParseInput struct {
	Game      GameRef
	ShareText string
}

type ParseResult struct {
	Game  game.Game
	Score float64
}

// BatchParseResult carries the outcome of one batch item; Err is set instead
// of failing the whole batch.
type BatchParseResult struct {
	ParseResult
	Err error
}

type ShareParserService struct {
	games    game.Repository
	parser   *shareparse.Parser
	pool     *workerpool.Pool
	batchMax int
	logger   *logging.Logger
}

func NewShareParserService(games game.Repository, parser *shareparse.Parser, pool *workerpool.Pool, batchMax int, logger *logging.Logger) *ShareParserService {
	if parser == nil {
		parser = shareparse.NewDefault()
	}
	if batchMax <= 0 {
		batchMax = DefaultParseBatchMax
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ShareParserService{
		games:    games,
		parser:   parser,
		pool:     pool,
		batchMax: batchMax,
		logger:   logger,
	}
}

func (s *ShareParserService) Parse(ctx context.Context, input ParseInput) (ParseResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ShareParserService.Parse")
	result, err := s.parse(ctx, input)
	if err == nil {
		span.SetAttributes(attribute.String("game.slug", result.Game.Slug), attribute.Float64("score", result.Score))
	}
	endSpan(span, err)
	return result, err
}

func (s *ShareParserService) parse(ctx context.Context, input ParseInput) (ParseResult, error) {
	if strings.TrimSpace(input.ShareText) == "" {
		return ParseResult{}, fmt.Errorf("%w: share_text is required", ErrInvalidInput)
	}
	g, err := resolveGame(ctx, s.games, input.Game)
	if err != nil {
		return ParseResult{}, err
	}

	var score float64
	if g.Parser != nil {
		score, err = s.parser.ParseWithConfig(g.Slug, g.Parser, input.ShareText)
	} else {
		score, err = s.parser.Parse(g.Slug, input.ShareText)
	}
	if err != nil {
		if errors.Is(err, shareparse.ErrNoScoreExtractable) {
			s.logger.DebugContext(ctx, "share text rejected", "game_slug", g.Slug, "text_length", len(input.ShareText))
			return ParseResult{}, fmt.Errorf("%w: could not read a %s score from the shared text", ErrNoScoreExtractable, g.Name)
		}
		return ParseResult{}, err
	}
	return ParseResult{Game: g, Score: score}, nil
}

// ParseBatch parses items concurrently and returns results in input order.
func (s *ShareParserService) ParseBatch(ctx context.Context, items []ParseInput) ([]BatchParseResult, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", ErrInvalidInput)
	}
	if len(items) > s.batchMax {
		return nil, fmt.Errorf("%w: at most %d items per batch, got %d", ErrInvalidInput, s.batchMax, len(items))
	}

	ctx, span := startUsecaseSpan(ctx, "usecase.ShareParserService.ParseBatch", attribute.Int("batch.size", len(items)))
	results := make([]BatchParseResult, len(items))
	err := s.pool.Run(ctx, len(items), func(ctx context.Context, i int) {
		res, parseErr := s.parse(ctx, items[i])
		results[i] = BatchParseResult{ParseResult: res, Err: parseErr}
	})
	endSpan(span, err)
	if err != nil {
		return nil, err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	s.logger.InfoContext(ctx, "share batch parsed", "items", len(items), "failed", failed)
	return results, nil
}
