package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/league-engine/internal/config"
	"github.com/riskibarqy/league-engine/internal/platform/logging"
)

func TestStart_AllDisabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{name: "flags off", cfg: config.Config{ServiceName: "league-engine-api", AppEnv: config.EnvDev}},
		{name: "uptrace without dsn", cfg: config.Config{UptraceEnabled: true, UptraceDSN: "  ", ServiceName: "league-engine-api", AppEnv: config.EnvDev}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			telemetry, err := Start(context.Background(), tt.cfg, logging.NewNop())
			if err != nil {
				t.Fatalf("start telemetry: %v", err)
			}
			if running := telemetry.Running(); len(running) != 0 {
				t.Fatalf("nothing should run, got %v", running)
			}
			if err := telemetry.Shutdown(context.Background()); err != nil {
				t.Fatalf("shutdown telemetry: %v", err)
			}
		})
	}
}

func TestTelemetry_ShutdownReverseOrderJoinsErrors(t *testing.T) {
	var order []string
	boom := errors.New("flush failed")
	telemetry := &Telemetry{logger: logging.NewNop()}
	for _, name := range []string{"uptrace", "pyroscope", "pprof"} {
		telemetry.stops = append(telemetry.stops, namedStop{name: name, stop: func(context.Context) error {
			order = append(order, name)
			if name == "uptrace" {
				return boom
			}
			return nil
		}})
	}

	err := telemetry.Shutdown(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined stop error, got %v", err)
	}
	if len(order) != 3 || order[0] != "pprof" || order[2] != "uptrace" {
		t.Fatalf("unexpected stop order: %v", order)
	}
	if err := telemetry.Shutdown(context.Background()); err != nil {
		t.Fatalf("second shutdown must be a no-op: %v", err)
	}

	var none *Telemetry
	if err := none.Shutdown(context.Background()); err != nil || none.Running() != nil {
		t.Fatalf("nil telemetry must be inert")
	}
}

func TestPprofMux_ServesIndex(t *testing.T) {
	rec := httptest.NewRecorder()
	pprofMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected pprof index, got %d", rec.Code)
	}
}
