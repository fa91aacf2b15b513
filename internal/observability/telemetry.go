// Package observability starts tracing, continuous profiling and the pprof
// listener for a process and stops them in reverse order.
package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/league-engine/internal/config"
	"github.com/riskibarqy/league-engine/internal/platform/logging"
)

// Telemetry holds the shutdown hooks of every started backend.
type Telemetry struct {
	logger *logging.Logger
	stops  []namedStop
}

type namedStop struct {
	name string
	stop func(context.Context) error
}

// Start brings up each backend enabled in cfg. A failure stops the backends
// already running before returning.
func Start(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}
	t := &Telemetry{logger: logger}

	starters := []struct {
		name  string
		start func(config.Config, *logging.Logger) (func(context.Context) error, error)
	}{
		{name: "uptrace", start: startUptrace},
		{name: "pyroscope", start: startPyroscope},
		{name: "pprof", start: startPprof},
	}
	for _, s := range starters {
		stop, err := s.start(cfg, logger.Named(s.name))
		if err != nil {
			_ = t.Shutdown(ctx)
			return nil, fmt.Errorf("start %s: %w", s.name, err)
		}
		if stop != nil {
			t.stops = append(t.stops, namedStop{name: s.name, stop: stop})
		}
	}
	return t, nil
}

// Running lists the started backends in start order.
func (t *Telemetry) Running() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.stops))
	for _, s := range t.stops {
		out = append(out, s.name)
	}
	return out
}

// Shutdown stops backends last-started first and joins their errors.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}

	var errs []error
	for i := len(t.stops) - 1; i >= 0; i-- {
		s := t.stops[i]
		if err := s.stop(ctx); err != nil {
			t.logger.WarnContext(ctx, "telemetry shutdown failed", "backend", s.name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}
	t.stops = nil
	return errors.Join(errs...)
}
