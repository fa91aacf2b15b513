package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/league-engine/internal/domain/standing"
	"github.com/riskibarqy/league-engine/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/league-engine/internal/platform/logging"
	"github.com/riskibarqy/league-engine/internal/usecase"
)

const testJobToken = "job-secret"

type seededAPI struct {
	router  http.Handler
	matches *memory.MatchRepository
}

func newSeededAPI() seededAPI {
	logger := logging.NewNop()
	seasons := memory.NewSeasonRepository(memory.SeedSeasons())
	divisions := memory.NewDivisionRepository(memory.SeedDivisions())
	groups := memory.NewGroupRepository(memory.SeedGroups())
	teams := memory.NewTeamRepository(memory.SeedTeams())
	assignments := memory.NewAssignmentRepository(memory.SeedAssignments())
	matches := memory.NewMatchRepository(memory.SeedMatches())
	standings := memory.NewStandingRepository()

	standingSvc := usecase.NewStandingService(seasons, divisions, groups, teams, assignments, matches, standings, standing.StableDraw{}, logger)
	playoffSvc := usecase.NewPlayoffService(divisions, groups, assignments, matches, standings, nil, usecase.PlayoffConfig{}, logger)
	matchSvc := usecase.NewMatchService(seasons, matches, logger)
	transitionSvc := usecase.NewSeasonTransitionService(seasons, divisions, groups, assignments, matches, standings, standingSvc, playoffSvc, usecase.SeasonTransitionConfig{}, logger)
	jobs := usecase.NewJobOrchestratorService(seasons, transitionSvc, nil, memory.NewJobDispatchRepository(), usecase.JobOrchestratorConfig{}, logger)

	handler := NewHandler(standingSvc, matchSvc, playoffSvc, transitionSvc, jobs, logger)
	return seededAPI{
		router:  NewRouter(handler, logger, []string{"*"}, testJobToken),
		matches: matches,
	}
}

func (a seededAPI) do(t *testing.T, method, path, body string, withToken bool) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if withToken {
		req.Header.Set(internalJobTokenHeader, testJobToken)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var envelope map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode %s %s response: %v body=%s", method, path, err, rec.Body.String())
	}
	return rec.Code, envelope
}

func (a seededAPI) pendingMatchID(t *testing.T) string {
	t.Helper()

	items, err := a.matches.ListByGroups(context.Background(), memory.SeasonID2026, []string{memory.DivisionIDPremier + "-A"})
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	for _, item := range items {
		if item.IsPending() {
			return item.ID
		}
	}
	t.Fatalf("seed has no pending premier match")
	return ""
}

func TestRouter_HealthzAndLiveStandings(t *testing.T) {
	t.Parallel()

	api := newSeededAPI()
	if code, _ := api.do(t, http.MethodGet, "/healthz", "", false); code != http.StatusOK {
		t.Fatalf("healthz status=%d", code)
	}

	code, body := api.do(t, http.MethodGet, "/v1/seasons/"+memory.SeasonID2026+"/groups/"+memory.DivisionIDPremier+"-A/standings", "", false)
	if code != http.StatusOK {
		t.Fatalf("live standings status=%d body=%v", code, body)
	}
	data, _ := body["data"].(map[string]any)
	rows, _ := data["standings"].([]any)
	if len(rows) != 6 {
		t.Fatalf("expected 6 standing rows, got %d", len(rows))
	}
	first, _ := rows[0].(map[string]any)
	if pos, _ := first["position"].(float64); pos != 1 {
		t.Fatalf("first row must be position 1, got %v", first["position"])
	}
}

func TestRouter_UnknownSeasonIsNotFound(t *testing.T) {
	t.Parallel()

	api := newSeededAPI()
	code, body := api.do(t, http.MethodGet, "/v1/seasons/missing/divisions/"+memory.DivisionIDPremier, "", false)
	if code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%v", code, body)
	}
}

func TestRouter_RecordResultRequiresToken(t *testing.T) {
	t.Parallel()

	api := newSeededAPI()
	matchID := api.pendingMatchID(t)
	path := "/v1/internal/matches/" + matchID + "/result"

	if code, _ := api.do(t, http.MethodPost, path, `{"home_score":2,"away_score":1}`, false); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", code)
	}
	if code, _ := api.do(t, http.MethodPost, path, `{"home_score":-1,"away_score":1}`, true); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative score, got %d", code)
	}
	if code, _ := api.do(t, http.MethodPost, path, `{"home_score":2}`, true); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing score, got %d", code)
	}

	code, body := api.do(t, http.MethodPost, path, `{"home_score":2,"away_score":1}`, true)
	if code != http.StatusOK {
		t.Fatalf("record result status=%d body=%v", code, body)
	}
	data, _ := body["data"].(map[string]any)
	if status, _ := data["status"].(string); status != "FINISHED" {
		t.Fatalf("unexpected match status: %v", data["status"])
	}
}

func TestRouter_RolloverRejectsBadDate(t *testing.T) {
	t.Parallel()

	api := newSeededAPI()
	path := "/v1/internal/seasons/" + memory.SeasonID2026 + "/rollover"
	code, _ := api.do(t, http.MethodPost, path, `{"to_season_id":"season-2027","starts_on":"2027/01/01"}`, true)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad date, got %d", code)
	}
	code, _ = api.do(t, http.MethodPost, path, `{"to_season_id":"season-2027","unknown":true}`, true)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", code)
	}
}

func TestRouter_MatchDayJobRunsActiveSeason(t *testing.T) {
	t.Parallel()

	api := newSeededAPI()
	code, body := api.do(t, http.MethodPost, "/v1/internal/jobs/match-day/direct", "", true)
	if code != http.StatusOK {
		t.Fatalf("match-day status=%d body=%v", code, body)
	}
	data, _ := body["data"].(map[string]any)
	if seasonID, _ := data["season_id"].(string); seasonID != memory.SeasonID2026 {
		t.Fatalf("expected active season, got %v", data["season_id"])
	}
}

func TestRequireInternalJobToken_Unconfigured(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/match-day", nil)
	req.Header.Set(internalJobTokenHeader, "anything")
	rec := httptest.NewRecorder()
	RequireInternalJobToken("  ", next).ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when token is not configured, got %d", rec.Code)
	}
}
