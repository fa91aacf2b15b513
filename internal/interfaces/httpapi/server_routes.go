package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicLeagueRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/seasons/{seasonID}/groups/{groupID}/standings", handler.GetLiveStandings)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/groups/{groupID}/standings/stored", handler.ListStoredStandings)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/divisions/{divisionID}", handler.GetDivisionOverview)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/divisions/{divisionID}/playoffs", handler.GetPlayoffBracket)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
}

func registerInternalSeasonRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	internal := internalOnly(internalJobToken)

	mux.Handle("POST /v1/internal/matches/{matchID}/result", internal(handler.RecordMatchResult))
	mux.Handle("POST /v1/internal/seasons/{seasonID}/groups/{groupID}/recompute", internal(handler.RecomputeGroup))
	// Runs the phase machine for a single division, as one match-day trigger would.
	mux.Handle("POST /v1/internal/seasons/{seasonID}/divisions/{divisionID}/process", internal(handler.ProcessDivision))
	mux.Handle("POST /v1/internal/seasons/{seasonID}/plan", internal(handler.PlanNextSeason))
	mux.Handle("POST /v1/internal/seasons/{seasonID}/rollover", internal(handler.RolloverSeason))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	internal := internalOnly(internalJobToken)

	mux.Handle("POST /v1/internal/jobs/bootstrap", internal(handler.RunBootstrapJob))
	mux.Handle("POST /v1/internal/jobs/match-day", internal(handler.RunMatchDayJob))
	mux.Handle("POST /v1/internal/jobs/match-day/direct", internal(handler.RunMatchDayDirect))
}

func internalOnly(token string) func(http.HandlerFunc) http.Handler {
	return func(next http.HandlerFunc) http.Handler {
		return RequireInternalJobToken(token, next)
	}
}
