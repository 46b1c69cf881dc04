package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/puzzle-league/internal/usecase"
)

func (h *Handler) SubmitDailyScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitDailyScore")
	defer span.End()

	var req submitDailyRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	res, err := h.scoreService.SubmitDaily(ctx, usecase.DailySubmission{
		UserID: req.UserID,
		GameID: req.GameID,
		Score:  *req.Score,
	})
	if err != nil {
		h.logFailure(ctx, "submit daily score failed", err, "user_id", req.UserID, "game_id", req.GameID)
		writeError(ctx, w, err)
		return
	}

	scores := make([]scoreDTO, 0, len(res.Scores))
	for _, rec := range res.Scores {
		scores = append(scores, scoreToDTO(rec))
	}
	writeSuccess(ctx, w, http.StatusOK, dailySubmissionDTO{
		Date:    res.Date,
		Scores:  scores,
		Leagues: append([]string{}, res.LeagueIDs...),
	})
}

func (h *Handler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitScore")
	defer span.End()

	var req submitScoreRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	rec, err := h.scoreService.Submit(ctx, usecase.Submission{
		UserID:   req.UserID,
		LeagueID: req.LeagueID,
		GameID:   req.GameID,
		Date:     req.Date,
		Score:    *req.Score,
	})
	if err != nil {
		h.logFailure(ctx, "submit score failed", err,
			"user_id", req.UserID,
			"league_id", req.LeagueID,
			"game_id", req.GameID,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoreToDTO(rec))
}

func (h *Handler) ScoreStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ScoreStats")
	defer span.End()

	q := r.URL.Query()
	query := usecase.StatsQuery{
		UserID:   strings.TrimSpace(q.Get("user_id")),
		LeagueID: strings.TrimSpace(q.Get("league_id")),
		GameID:   strings.TrimSpace(q.Get("game_id")),
		From:     strings.TrimSpace(q.Get("from")),
		To:       strings.TrimSpace(q.Get("to")),
	}

	items, err := h.scoreService.Stats(ctx, query)
	if err != nil {
		h.logFailure(ctx, "score stats failed", err, "user_id", query.UserID)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, scoresWithGameToDTO(items))
}

func (h *Handler) TodayScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TodayScores")
	defer span.End()

	userID := r.PathValue("userID")
	items, err := h.scoreService.TodayFor(ctx, userID)
	if err != nil {
		h.logFailure(ctx, "today scores failed", err, "user_id", userID)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"date":   h.scoreService.Today(),
		"scores": scoresWithGameToDTO(items),
	})
}
