package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q)=%s want=%s", in, got, want)
		}
	}
}

func TestLogger_WritesFieldsNameAndTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := newJSON(zapcore.AddSync(&buf), LevelInfo).With("service", "league-engine").Named("playoff")

	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{1, 2, 3},
		SpanID:  trace.SpanID{4, 5, 6},
	})
	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)

	logger.DebugContext(ctx, "hidden below level")
	logger.WarnContext(ctx, "bracket advanced", "division_id", "d2", "err", errors.New("late result"))

	out := buf.String()
	if strings.Contains(out, "hidden below level") {
		t.Fatalf("debug entry must be filtered: %s", out)
	}
	for _, want := range []string{
		`"msg":"bracket advanced"`,
		`"logger":"playoff"`,
		`"service":"league-engine"`,
		`"division_id":"d2"`,
		`"err":"late result"`,
		`"trace_id":"` + spanCtx.TraceID().String() + `"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in log line: %s", want, out)
		}
	}
}

func TestLogger_NilFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("dropped")
	if logger.Named("x") == nil || logger.With("k", "v") == nil {
		t.Fatalf("nil logger helpers must return usable loggers")
	}
	if err := logger.Sync(); err != nil {
		t.Fatalf("nil sync: %v", err)
	}
}

func TestZapFields_OddArgs(t *testing.T) {
	fields := zapFields([]any{"season_id", "s1", 42, "v", "dangling"})
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}
	if fields[1].Key != "arg" || fields[2].Key != "dangling" {
		t.Fatalf("unexpected keys: %q %q", fields[1].Key, fields[2].Key)
	}
}
