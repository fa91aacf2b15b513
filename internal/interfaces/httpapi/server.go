package httpapi

import (
	"net/http"

	"github.com/riskibarqy/league-engine/internal/platform/logging"
)

// NewRouter builds the engine's HTTP surface. Internal routes are closed
// when internalJobToken is empty.
func NewRouter(
	handler *Handler,
	logger *logging.Logger,
	corsAllowedOrigins []string,
	internalJobToken string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerPublicLeagueRoutes(mux, handler)
	registerInternalSeasonRoutes(mux, handler, internalJobToken)
	registerInternalJobRoutes(mux, handler, internalJobToken)

	return chain(mux,
		RequestTracing,
		RequestLogging(logger),
		func(next http.Handler) http.Handler { return CORS(corsAllowedOrigins, next) },
		recoverPanic(logger),
	)
}

func recoverPanic(logger *logging.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.ErrorContext(r.Context(), "panic recovered", "panic", rec, "path", r.URL.Path)
					writeInternalError(r.Context(), w)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
