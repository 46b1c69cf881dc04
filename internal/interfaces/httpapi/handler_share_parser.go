package httpapi

import (
	"net/http"

	"github.com/riskibarqy/puzzle-league/internal/usecase"
)

func (h *Handler) ParseShare(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ParseShare")
	defer span.End()

	var req parseShareRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	res, err := h.shareParserService.Parse(ctx, req.toInput())
	if err != nil {
		h.logFailure(ctx, "parse share text failed",
			err,
			"game_id", req.GameID,
			"game_slug", req.GameSlug,
			"page_path", req.PagePath,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, parseResultDTO{
		GameID: res.Game.ID,
		Score:  res.Score,
	})
}

func (h *Handler) ParseShareBatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ParseShareBatch")
	defer span.End()

	var req parseBatchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	inputs := make([]usecase.ParseInput, 0, len(req.Items))
	for _, item := range req.Items {
		inputs = append(inputs, item.toInput())
	}

	results, err := h.shareParserService.ParseBatch(ctx, inputs)
	if err != nil {
		h.logFailure(ctx, "parse share batch failed", err, "items", len(req.Items))
		writeError(ctx, w, err)
		return
	}

	items := make([]batchItemDTO, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			items = append(items, batchItemDTO{
				GameID: res.Game.ID,
				Error:  errorBody(ctx, res.Err),
			})
			continue
		}
		value := res.Score
		items = append(items, batchItemDTO{
			GameID: res.Game.ID,
			Score:  &value,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]any{"results": items})
}
