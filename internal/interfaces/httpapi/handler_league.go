package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/league-engine/internal/usecase"
)

func (h *Handler) GetLiveStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.GetLiveStandings")
	defer span.End()

	seasonID, groupID := r.PathValue("seasonID"), r.PathValue("groupID")
	table, err := h.standingService.Live(ctx, seasonID, groupID)
	if err != nil {
		h.logger.WarnContext(ctx, "live standings failed", "season_id", seasonID, "group_id", groupID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, groupTableToDTO(table))
}

func (h *Handler) ListStoredStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.ListStoredStandings")
	defer span.End()

	seasonID, groupID := r.PathValue("seasonID"), r.PathValue("groupID")
	items, err := h.standingService.ListByGroup(ctx, seasonID, groupID)
	if err != nil {
		h.logger.WarnContext(ctx, "list stored standings failed", "season_id", seasonID, "group_id", groupID, "error", err)
		writeError(ctx, w, err)
		return
	}

	rows := make([]standingDTO, 0, len(items))
	for _, item := range items {
		rows = append(rows, standingToDTO(item, ""))
	}
	writeSuccess(ctx, w, http.StatusOK, rows)
}

func (h *Handler) GetDivisionOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.GetDivisionOverview")
	defer span.End()

	seasonID, divisionID := r.PathValue("seasonID"), r.PathValue("divisionID")
	overview, err := h.transitionService.Overview(ctx, seasonID, divisionID)
	if err != nil {
		h.logger.WarnContext(ctx, "division overview failed", "season_id", seasonID, "division_id", divisionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, overviewToDTO(overview))
}

func (h *Handler) GetPlayoffBracket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.GetPlayoffBracket")
	defer span.End()

	seasonID, divisionID := r.PathValue("seasonID"), r.PathValue("divisionID")
	items, err := h.playoffService.Bracket(ctx, seasonID, divisionID)
	if err != nil {
		h.logger.WarnContext(ctx, "playoff bracket failed", "season_id", seasonID, "division_id", divisionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTO(items))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	item, err := h.matchService.Get(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) RecordMatchResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.RecordMatchResult")
	defer span.End()

	var req recordResultRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := r.PathValue("matchID")
	item, err := h.matchService.RecordResult(ctx, usecase.RecordResultInput{
		MatchID:   matchID,
		HomeScore: *req.HomeScore,
		AwayScore: *req.AwayScore,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record match result failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) RecomputeGroup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.RecomputeGroup")
	defer span.End()

	seasonID, groupID := r.PathValue("seasonID"), r.PathValue("groupID")
	table, err := h.transitionService.RefreshGroup(ctx, seasonID, groupID)
	if err != nil {
		h.logger.WarnContext(ctx, "recompute group failed", "season_id", seasonID, "group_id", groupID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, groupTableToDTO(table))
}

func (h *Handler) ProcessDivision(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.ProcessDivision")
	defer span.End()

	seasonID, divisionID := r.PathValue("seasonID"), r.PathValue("divisionID")
	report, err := h.transitionService.ProcessDivision(ctx, seasonID, divisionID)
	if err != nil {
		h.logger.WarnContext(ctx, "process division failed", "season_id", seasonID, "division_id", divisionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

func (h *Handler) PlanNextSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.PlanNextSeason")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	plan, err := h.transitionService.PlanNextSeason(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "plan next season failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, planToDTO(plan))
}

func (h *Handler) RolloverSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.RolloverSeason")
	defer span.End()

	var req rolloverRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	startsOn, err := parseDate(req.StartsOn)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	endsOn, err := parseDate(req.EndsOn)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	seasonID := r.PathValue("seasonID")
	result, err := h.transitionService.ExecutePlan(ctx, usecase.RolloverInput{
		FromSeasonID: seasonID,
		ToSeasonID:   req.ToSeasonID,
		Name:         req.Name,
		StartsOn:     startsOn,
		EndsOn:       endsOn,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "season rollover failed", "season_id", seasonID, "to_season_id", req.ToSeasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	value, err := time.ParseInLocation(time.DateOnly, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", usecase.ErrInvalidInput, raw)
	}
	return value, nil
}
