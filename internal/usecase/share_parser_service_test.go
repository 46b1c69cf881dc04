package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/puzzle-league/internal/domain/game"
	gamemock "github.com/riskibarqy/puzzle-league/internal/mocks/domain/game"
	"github.com/riskibarqy/puzzle-league/internal/platform/workerpool"
)

var (
	wordleGame  = game.Game{ID: "g-wordle", Slug: "wordle", Name: "Wordle", ScoreType: game.ScoreTypeLowerBetter}
	keywordGame = game.Game{ID: "g-keyword", Slug: "keyword", Name: "Keyword", ScoreType: game.ScoreTypeLowerBetter}
)

func TestShareParserService_Parse_BySlug(t *testing.T) {
	t.Parallel()

	games := gamemock.NewRepository(t)
	games.On("GetBySlug", mock.Anything, "keyword").Return(keywordGame, true, nil).Once()

	svc := NewShareParserService(games, nil, nil, 0, nil)
	got, err := svc.Parse(context.Background(), ParseInput{
		Game:      GameRef{Slug: "Keyword"},
		ShareText: "Time: 11, Errors: 1",
	})
	require.NoError(t, err)
	require.Equal(t, 21.0, got.Score)
	require.Equal(t, keywordGame.ID, got.Game.ID)
}

func TestShareParserService_Parse_ByPagePath(t *testing.T) {
	t.Parallel()

	games := gamemock.NewRepository(t)
	games.On("GetBySlug", mock.Anything, "wordle").Return(wordleGame, true, nil).Once()

	svc := NewShareParserService(games, nil, nil, 0, nil)
	got, err := svc.Parse(context.Background(), ParseInput{
		Game:      GameRef{PagePath: "/games/wordle/index.html"},
		ShareText: "Wordle 1,500 3/6\n⬜🟨⬜⬜⬜\n🟩🟩⬜🟩⬜\n🟩🟩🟩🟩🟩",
	})
	require.NoError(t, err)
	require.Equal(t, 3.0, got.Score)
}

func TestShareParserService_Parse_Errors(t *testing.T) {
	t.Parallel()

	games := gamemock.NewRepository(t)
	games.On("GetBySlug", mock.Anything, "missing").Return(game.Game{}, false, nil).Once()
	games.On("GetByID", mock.Anything, keywordGame.ID).Return(keywordGame, true, nil).Once()
	games.On("GetByID", mock.Anything, "broken").Return(game.Game{}, false, errors.New("db down")).Once()

	svc := NewShareParserService(games, nil, nil, 0, nil)
	ctx := context.Background()

	_, err := svc.Parse(ctx, ParseInput{Game: GameRef{Slug: "wordle"}})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Parse(ctx, ParseInput{Game: GameRef{Slug: "missing"}, ShareText: "1"})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Parse(ctx, ParseInput{Game: GameRef{PagePath: "/news"}, ShareText: "1"})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Parse(ctx, ParseInput{Game: GameRef{ID: keywordGame.ID}, ShareText: "great game today"})
	require.ErrorIs(t, err, ErrNoScoreExtractable)

	_, err = svc.Parse(ctx, ParseInput{Game: GameRef{ID: "broken"}, ShareText: "1"})
	require.ErrorIs(t, err, ErrDependencyUnavailable)
}

func TestShareParserService_ParseBatch_PreservesOrder(t *testing.T) {
	t.Parallel()

	games := gamemock.NewRepository(t)
	games.On("GetBySlug", mock.Anything, "keyword").Return(keywordGame, true, nil)

	pool, err := workerpool.New(4)
	require.NoError(t, err)
	defer pool.Release()

	svc := NewShareParserService(games, nil, pool, 10, nil)
	items := []ParseInput{
		{Game: GameRef{Slug: "keyword"}, ShareText: "Time: 11, Errors: 1"},
		{Game: GameRef{Slug: "keyword"}, ShareText: "nothing here"},
		{Game: GameRef{Slug: "keyword"}, ShareText: "Time: 12, Guesses: 7"},
	}
	results, err := svc.ParseBatch(context.Background(), items)
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.NoError(t, results[0].Err)
	require.Equal(t, 21.0, results[0].Score)
	require.ErrorIs(t, results[1].Err, ErrNoScoreExtractable)
	require.NoError(t, results[2].Err)
	require.Equal(t, 22.0, results[2].Score)
}

func TestShareParserService_ParseBatch_Limits(t *testing.T) {
	t.Parallel()

	svc := NewShareParserService(gamemock.NewRepository(t), nil, nil, 2, nil)

	_, err := svc.ParseBatch(context.Background(), nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ParseBatch(context.Background(), make([]ParseInput, 3))
	require.ErrorIs(t, err, ErrInvalidInput)
}
