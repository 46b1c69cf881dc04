package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/puzzle-league/internal/config"
	"github.com/riskibarqy/puzzle-league/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		HTTPAddr:           ":0",
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		CacheEnabled:       true,
		CacheTTL:           time.Minute,
		CORSAllowedOrigins: []string{"*"},
		ScoreTimeZone:      "UTC",
		ScoreLocation:      time.UTC,
		ParseWorkers:       2,
		ParseBatchMax:      10,
	}
}

func TestNew_InMemoryServesRoutes(t *testing.T) {
	a, err := New(context.Background(), memoryConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, a.Close()) })

	rec := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/games", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/leagues/demo-league/standings", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestNew_RejectsEmptyAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""

	_, err := New(context.Background(), cfg, nil)
	require.Error(t, err)
}

func TestStoreName(t *testing.T) {
	cfg := memoryConfig()
	require.Equal(t, "memory", storeName(cfg))
	cfg.DBURL = "postgres://localhost/puzzle_league"
	require.Equal(t, "postgres", storeName(cfg))
}
