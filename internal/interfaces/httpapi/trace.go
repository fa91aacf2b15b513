package httpapi

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("league-engine/internal/interfaces/httpapi")

// routeParams are the path wildcards copied onto handler spans.
var routeParams = []struct {
	name string
	key  attribute.Key
}{
	{name: "seasonID", key: "league.season_id"},
	{name: "divisionID", key: "league.division_id"},
	{name: "groupID", key: "league.group_id"},
	{name: "matchID", key: "league.match_id"},
}

// startSpan only opens spans for handlers; middleware and response helpers
// share the request span. Untraced routes such as /healthz get none.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() || !shouldCreateHTTPAPISpan(name) {
		return ctx, trace.SpanFromContext(context.Background())
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func startHandlerSpan(r *http.Request, name string) (context.Context, trace.Span) {
	return startSpan(r.Context(), name, routeAttributes(r)...)
}

func routeAttributes(r *http.Request) []attribute.KeyValue {
	out := make([]attribute.KeyValue, 0, len(routeParams))
	for _, param := range routeParams {
		if value := strings.TrimSpace(r.PathValue(param.name)); value != "" {
			out = append(out, param.key.String(value))
		}
	}
	return out
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}
