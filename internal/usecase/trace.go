package usecase

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("league-engine/internal/usecase")

// Span attribute keys shared by the engine services.
const (
	attrSeasonID   = attribute.Key("league.season_id")
	attrDivisionID = attribute.Key("league.division_id")
	attrGroupID    = attribute.Key("league.group_id")
	attrMatchID    = attribute.Key("league.match_id")
	attrPhase      = attribute.Key("league.phase")
)

// startUsecaseSpan opens a child span only under a sampled request so
// background work such as the ticker does not start orphan traces.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if strings.TrimSpace(name) == "" || !parent.SpanContext().IsValid() {
		return ctx, trace.SpanFromContext(context.Background())
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// failSpan records err on the span and returns it unchanged.
func failSpan(span trace.Span, err error) error {
	if err != nil && span.IsRecording() {
		span.RecordError(err)
	}
	return err
}
