package httpapi

import (
	"net/http"

	"github.com/riskibarqy/league-engine/internal/usecase"
)

// Dispatch bookkeeping for these endpoints happens in the orchestrator so
// the in-process ticker and queue callbacks record the same events.

func (h *Handler) RunMatchDayJob(w http.ResponseWriter, r *http.Request) {
	h.runJob(w, r, "httpapi.Handler.RunMatchDayJob", "match-day", h.jobOrchestratorRun)
}

func (h *Handler) RunMatchDayDirect(w http.ResponseWriter, r *http.Request) {
	h.runJob(w, r, "httpapi.Handler.RunMatchDayDirect", "match-day-direct", h.jobOrchestratorDirect)
}

func (h *Handler) RunBootstrapJob(w http.ResponseWriter, r *http.Request) {
	h.runJob(w, r, "httpapi.Handler.RunBootstrapJob", "bootstrap", h.jobOrchestratorBootstrap)
}

type jobRunner func(r *http.Request, input usecase.JobRunInput) (usecase.JobRunResult, error)

func (h *Handler) jobOrchestratorRun(r *http.Request, input usecase.JobRunInput) (usecase.JobRunResult, error) {
	return h.jobOrchestrator.RunMatchDay(r.Context(), input)
}

func (h *Handler) jobOrchestratorDirect(r *http.Request, input usecase.JobRunInput) (usecase.JobRunResult, error) {
	return h.jobOrchestrator.RunMatchDayDirect(r.Context(), input)
}

func (h *Handler) jobOrchestratorBootstrap(r *http.Request, input usecase.JobRunInput) (usecase.JobRunResult, error) {
	return h.jobOrchestrator.Bootstrap(r.Context(), input)
}

func (h *Handler) runJob(w http.ResponseWriter, r *http.Request, spanName, jobName string, run jobRunner) {
	ctx, span := startHandlerSpan(r, spanName)
	defer span.End()
	r = r.WithContext(ctx)

	if !h.requireService(ctx, w, h.jobOrchestrator != nil, "job orchestrator") {
		return
	}

	var req internalJobRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := run(r, usecase.JobRunInput{SeasonID: req.SeasonID, DispatchID: req.DispatchID})
	if err != nil {
		h.logger.WarnContext(ctx, "internal job failed",
			"job_name", jobName,
			"season_id", req.SeasonID,
			"dispatch_id", req.DispatchID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
