package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/puzzle-league/internal/domain/shareparse"
	"github.com/riskibarqy/puzzle-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/puzzle-league/internal/platform/cache"
	"github.com/riskibarqy/puzzle-league/internal/platform/id"
	"github.com/riskibarqy/puzzle-league/internal/platform/logging"
	"github.com/riskibarqy/puzzle-league/internal/platform/workerpool"
	"github.com/riskibarqy/puzzle-league/internal/usecase"
)

type testServer struct {
	router  http.Handler
	leagues *memory.LeagueRepository
}

func newTestServer(t *testing.T) testServer {
	t.Helper()

	logger := logging.NewNop()
	games := memory.NewGameRepository(memory.SeedGames())
	seedLeagues, activations := memory.SeedLeagues()
	leagues := memory.NewLeagueRepository(seedLeagues, activations, id.NewUUIDGenerator())
	scores := memory.NewScoreRepository()
	handicaps := memory.NewHandicapRepository()

	pool, err := workerpool.New(4)
	require.NoError(t, err)
	t.Cleanup(pool.Release)

	standings := usecase.NewStandingsService(leagues, games, scores, handicaps, cache.NewStore(time.Minute), logger)
	handler := NewHandler(
		usecase.NewGameService(games),
		usecase.NewShareParserService(games, shareparse.NewDefault(), pool, 3, logger),
		usecase.NewScoreService(games, leagues, scores, standings, time.UTC, logger),
		standings,
		usecase.NewHandicapService(leagues, handicaps, id.NewUUIDGenerator(), standings),
		logger,
	)
	return testServer{router: NewRouter(handler, logger, []string{"*"}), leagues: leagues}
}

func (s testServer) do(t *testing.T, method, path, body string) (int, map[string]any) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec.Code, out
}

func errorStatus(t *testing.T, body map[string]any) string {
	t.Helper()
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected error object, got %v", body)
	status, _ := errObj["status"].(string)
	return status
}

func TestHandler_HealthzAndGames(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	code, body := srv.do(t, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "ok", body["data"].(map[string]any)["status"])

	code, body = srv.do(t, http.MethodGet, "/v1/games", "")
	require.Equal(t, http.StatusOK, code)
	items := body["data"].([]any)
	require.Len(t, items, len(memory.SeedGames()))
	first := items[0].(map[string]any)
	require.Equal(t, "wordle", first["id"])
	require.NotNil(t, first["parser"])
}

func TestHandler_ParseShare(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	code, body := srv.do(t, http.MethodPost, "/v1/share-parser/parse",
		`{"game_slug":"keyword","share_text":"Keyword\nTime: 11, Errors: 1"}`)
	require.Equal(t, http.StatusOK, code)
	data := body["data"].(map[string]any)
	require.Equal(t, "keyword", data["game_id"])
	require.Equal(t, float64(21), data["score"])

	code, body = srv.do(t, http.MethodPost, "/v1/share-parser/parse",
		`{"page_path":"/games/keyword","share_text":"nothing to see"}`)
	require.Equal(t, http.StatusUnprocessableEntity, code)
	require.Equal(t, "FAILED_PRECONDITION", errorStatus(t, body))

	code, body = srv.do(t, http.MethodPost, "/v1/share-parser/parse",
		`{"game_slug":"sudoku","share_text":"12"}`)
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, "NOT_FOUND", errorStatus(t, body))

	code, body = srv.do(t, http.MethodPost, "/v1/share-parser/parse", `{"share_text":"12"}`)
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "INVALID_ARGUMENT", errorStatus(t, body))

	code, _ = srv.do(t, http.MethodPost, "/v1/share-parser/parse", `{"game_id":"keyword","share_text":"1","extra":true}`)
	require.Equal(t, http.StatusBadRequest, code)
}

func TestHandler_ParseShareBatchKeepsOrder(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	code, body := srv.do(t, http.MethodPost, "/v1/share-parser/parse-batch", `{"items":[
		{"game_id":"keyword","share_text":"Time: 12, Errors: 0"},
		{"game_id":"keyword","share_text":"no numbers"},
		{"game_id":"bracket-city","share_text":"Total Score: 88.5"}
	]}`)
	require.Equal(t, http.StatusOK, code)

	results := body["data"].(map[string]any)["results"].([]any)
	require.Len(t, results, 3)
	require.Equal(t, float64(12), results[0].(map[string]any)["score"])
	require.NotNil(t, results[1].(map[string]any)["error"])
	require.Equal(t, 88.5, results[2].(map[string]any)["score"])

	code, _ = srv.do(t, http.MethodPost, "/v1/share-parser/parse-batch", `{"items":[
		{"game_id":"keyword","share_text":"1"},
		{"game_id":"keyword","share_text":"2"},
		{"game_id":"keyword","share_text":"3"},
		{"game_id":"keyword","share_text":"4"}
	]}`)
	require.Equal(t, http.StatusBadRequest, code)
}

func TestHandler_DailyScoresFeedStandings(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	require.NoError(t, srv.leagues.AddMember(memory.LeagueIDDemo, "alice"))
	require.NoError(t, srv.leagues.AddMember(memory.LeagueIDDemo, "bob"))

	code, body := srv.do(t, http.MethodPost, "/v1/scores/daily", `{"user_id":"alice","game_id":"wordle","score":3}`)
	require.Equal(t, http.StatusOK, code)
	data := body["data"].(map[string]any)
	require.Equal(t, []any{memory.LeagueIDDemo}, data["leagues"])

	code, _ = srv.do(t, http.MethodPost, "/v1/scores/daily", `{"user_id":"bob","game_id":"wordle","score":4}`)
	require.Equal(t, http.StatusOK, code)

	code, body = srv.do(t, http.MethodGet, "/v1/leagues/"+memory.LeagueIDDemo+"/standings", "")
	require.Equal(t, http.StatusOK, code)
	data = body["data"].(map[string]any)
	overall := data["overallStandings"].([]any)
	require.Len(t, overall, 2)
	require.Equal(t, "alice", overall[0].(map[string]any)["userId"])
	require.Equal(t, float64(1), overall[0].(map[string]any)["rank"])
	require.Equal(t, "bob", overall[1].(map[string]any)["userId"])
	require.Contains(t, data["gameStandings"].(map[string]any), "wordle")

	code, body = srv.do(t, http.MethodGet, "/v1/scores/today/alice", "")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, body["data"].(map[string]any)["scores"].([]any), 1)
}

func TestHandler_DailyScoreWithoutLeagueUsesPersonalLeague(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	code, body := srv.do(t, http.MethodPost, "/v1/scores/daily", `{"user_id":"carol","game_id":"keyword","score":0}`)
	require.Equal(t, http.StatusOK, code)
	leagues := body["data"].(map[string]any)["leagues"].([]any)
	require.Len(t, leagues, 1)
	require.NotEqual(t, memory.LeagueIDDemo, leagues[0])

	code, _ = srv.do(t, http.MethodPost, "/v1/scores/daily", `{"user_id":"carol","game_id":"keyword"}`)
	require.Equal(t, http.StatusBadRequest, code)
}

func TestHandler_SubmitScoreRequiresMembership(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	code, body := srv.do(t, http.MethodPost, "/v1/scores",
		`{"user_id":"mallory","league_id":"demo-league","game_id":"wordle","date":"2026-10-16","score":2}`)
	require.Equal(t, http.StatusForbidden, code)
	require.Equal(t, "PERMISSION_DENIED", errorStatus(t, body))

	code, _ = srv.do(t, http.MethodPost, "/v1/scores",
		`{"user_id":"mallory","league_id":"demo-league","game_id":"wordle","date":"16/10/2026","score":2}`)
	require.Equal(t, http.StatusBadRequest, code)

	code, _ = srv.do(t, http.MethodGet, "/v1/leagues/missing/standings", "")
	require.Equal(t, http.StatusNotFound, code)
}

func TestHandler_ReplaceHandicapsAcceptsPercentages(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	require.NoError(t, srv.leagues.AddMember(memory.LeagueIDDemo, "alice"))

	code, body := srv.do(t, http.MethodPut, "/v1/leagues/demo-league/handicaps", `{"rules":[
		{"user_id":"alice","game_id":"wordle","start_date":"2026-10-01","multipliers":{"wed":"75%","3":0.5,"fri":0.9}}
	]}`)
	require.Equal(t, http.StatusBadRequest, code, body)

	code, body = srv.do(t, http.MethodPut, "/v1/leagues/demo-league/handicaps", `{"rules":[
		{"user_id":"alice","game_id":"wordle","start_date":"2026-10-01","multipliers":{"wed":"75%","fri":0.9}}
	]}`)
	require.Equal(t, http.StatusOK, code, body)

	code, body = srv.do(t, http.MethodGet, "/v1/leagues/demo-league/handicaps", "")
	require.Equal(t, http.StatusOK, code)
	rules := body["data"].([]any)
	require.Len(t, rules, 1)
	multipliers := rules[0].(map[string]any)["multipliers"].(map[string]any)
	require.Equal(t, 0.75, multipliers["3"])
	require.Equal(t, 0.9, multipliers["5"])

	code, _ = srv.do(t, http.MethodPut, "/v1/leagues/demo-league/handicaps", `{"rules":[
		{"user_id":"stranger","game_id":"wordle","start_date":"2026-10-01","multipliers":{"wed":0.5}}
	]}`)
	require.Equal(t, http.StatusBadRequest, code)
}

func TestRecoverPanic_WritesInternalEnvelope(t *testing.T) {
	t.Parallel()

	handler := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/games", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]any
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "INTERNAL", errorStatus(t, body))
}
