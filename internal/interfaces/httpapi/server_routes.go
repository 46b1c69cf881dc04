package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerGameRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/games", handler.ListGames)
	mux.HandleFunc("POST /v1/share-parser/parse", handler.ParseShare)
	mux.HandleFunc("POST /v1/share-parser/parse-batch", handler.ParseShareBatch)
}

func registerScoreRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/scores/daily", handler.SubmitDailyScore)
	mux.HandleFunc("POST /v1/scores", handler.SubmitScore)
	mux.HandleFunc("GET /v1/scores/stats", handler.ScoreStats)
	mux.HandleFunc("GET /v1/scores/today/{userID}", handler.TodayScores)
}

func registerLeagueRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues/{leagueID}/standings", handler.LeagueStandings)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/handicaps", handler.ListHandicaps)
	mux.HandleFunc("PUT /v1/leagues/{leagueID}/handicaps", handler.ReplaceHandicaps)
}
