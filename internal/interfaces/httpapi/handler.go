package httpapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/league-engine/internal/platform/logging"
	"github.com/riskibarqy/league-engine/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	standingService   *usecase.StandingService
	matchService      *usecase.MatchService
	playoffService    *usecase.PlayoffService
	transitionService *usecase.SeasonTransitionService
	jobOrchestrator   *usecase.JobOrchestratorService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	standingService *usecase.StandingService,
	matchService *usecase.MatchService,
	playoffService *usecase.PlayoffService,
	transitionService *usecase.SeasonTransitionService,
	jobOrchestrator *usecase.JobOrchestratorService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		standingService:   standingService,
		matchService:      matchService,
		playoffService:    playoffService,
		transitionService: transitionService,
		jobOrchestrator:   jobOrchestrator,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeJSON reads an optional JSON body into dst. An empty body leaves dst
// untouched.
func decodeJSON(r *http.Request, dst any) error {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", usecase.ErrInvalidInput, err)
	}
	if len(raw) > maxRequestBodyBytes {
		return fmt.Errorf("%w: request body is too large", usecase.ErrInvalidInput)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	decoder := sonic.ConfigStd.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) requireService(ctx context.Context, w http.ResponseWriter, available bool, name string) bool {
	if available {
		return true
	}
	writeError(ctx, w, fmt.Errorf("%w: %s is not configured", usecase.ErrDependencyUnavailable, name))
	return false
}
