package httpapi

import "net/http"

func (h *Handler) LeagueStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LeagueStandings")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	res, err := h.standingsService.Compute(ctx, leagueID)
	if err != nil {
		h.logFailure(ctx, "compute standings failed", err, "league_id", leagueID)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(res))
}

func (h *Handler) ListHandicaps(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListHandicaps")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	rules, err := h.handicapService.List(ctx, leagueID)
	if err != nil {
		h.logFailure(ctx, "list handicaps failed", err, "league_id", leagueID)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, handicapsToDTO(rules))
}

func (h *Handler) ReplaceHandicaps(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReplaceHandicaps")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	var req replaceHandicapsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	rules, err := h.handicapService.Replace(ctx, leagueID, req.toInputs())
	if err != nil {
		h.logFailure(ctx, "replace handicaps failed", err, "league_id", leagueID, "rules", len(req.Rules))
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, handicapsToDTO(rules))
}
