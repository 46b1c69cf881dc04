package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/riskibarqy/puzzle-league/internal/platform/logging"
	"github.com/riskibarqy/puzzle-league/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Handler struct {
	gameService        *usecase.GameService
	shareParserService *usecase.ShareParserService
	scoreService       *usecase.ScoreService
	standingsService   *usecase.StandingsService
	handicapService    *usecase.HandicapService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	gameService *usecase.GameService,
	shareParserService *usecase.ShareParserService,
	scoreService *usecase.ScoreService,
	standingsService *usecase.StandingsService,
	handicapService *usecase.HandicapService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		gameService:        gameService,
		shareParserService: shareParserService,
		scoreService:       scoreService,
		standingsService:   standingsService,
		handicapService:    handicapService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, payload any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, payload)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// logFailure keeps client mistakes at warn and everything else at error.
func (h *Handler) logFailure(ctx context.Context, msg string, err error, args ...any) {
	args = append(args, "error", err)
	if mapError(ctx, err).HTTPStatus < http.StatusInternalServerError {
		h.logger.WarnContext(ctx, msg, args...)
		return
	}
	h.logger.ErrorContext(ctx, msg, args...)
}
