package guarded

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/puzzle-league/internal/domain/game"
	"github.com/riskibarqy/puzzle-league/internal/domain/score"
	gamemock "github.com/riskibarqy/puzzle-league/internal/mocks/domain/game"
	scoremock "github.com/riskibarqy/puzzle-league/internal/mocks/domain/score"
	"github.com/riskibarqy/puzzle-league/internal/platform/resilience"
)

func TestScoreRepository_OpensAfterFailures(t *testing.T) {
	next := scoremock.NewRepository(t)
	dbDown := errors.New("dial tcp: connection refused")
	next.On("List", mock.Anything, mock.Anything).Return(nil, dbDown).Twice()

	repo := NewScoreRepository(next, resilience.NewCircuitBreaker(2, time.Minute, 1))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := repo.List(ctx, score.Filter{LeagueID: "demo-league"})
		require.ErrorIs(t, err, dbDown)
	}

	_, err := repo.List(ctx, score.Filter{LeagueID: "demo-league"})
	require.ErrorIs(t, err, resilience.ErrCircuitOpen)
	next.AssertNumberOfCalls(t, "List", 2)
}

func TestGameRepository_PassesLookupThrough(t *testing.T) {
	next := gamemock.NewRepository(t)
	next.On("GetBySlug", mock.Anything, "wordle").Return(game.Game{ID: "wordle"}, true, nil).Once()
	next.On("GetByID", mock.Anything, "nope").Return(game.Game{}, false, nil).Once()

	repo := NewGameRepository(next, nil)

	got, ok, err := repo.GetBySlug(context.Background(), "wordle")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "wordle", got.ID)

	_, ok, err = repo.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	require.False(t, ok)
}
