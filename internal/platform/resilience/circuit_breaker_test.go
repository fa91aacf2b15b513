package resilience

import (
	"errors"
	"testing"
	"time"
)

func newTestBreaker(cfg CircuitBreakerConfig, now *time.Time) *CircuitBreaker {
	b := NewCircuitBreaker("qstash", cfg)
	b.now = func() time.Time { return *now }
	return b
}

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	var changes []string
	b := newTestBreaker(CircuitBreakerConfig{
		FailureThreshold: 2,
		OpenTimeout:      5 * time.Second,
		HalfOpenMaxReq:   1,
		OnStateChange: func(name string, from, to CircuitState) {
			changes = append(changes, name+":"+string(from)+"->"+string(to))
		},
	}, &now)

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open trial call to pass, got %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("second trial call must wait for the first, got %v", err)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open trial call, got %s", state)
	}

	want := []string{"qstash:closed->open", "qstash:open->half_open", "qstash:half_open->closed"}
	if len(changes) != len(want) {
		t.Fatalf("unexpected transitions: %v", changes)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Fatalf("unexpected transitions: %v", changes)
		}
	}
}

func TestCircuitBreaker_ExecuteSkipsNonFailures(t *testing.T) {
	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b := newTestBreaker(CircuitBreakerConfig{FailureThreshold: 1, OpenTimeout: time.Minute}, &now)

	transient := errors.New("upstream 503")
	rejected := errors.New("bad request")
	isFailure := func(err error) bool { return errors.Is(err, transient) }

	for i := 0; i < 3; i++ {
		if err := b.Execute(func() error { return rejected }, isFailure); !errors.Is(err, rejected) {
			t.Fatalf("expected caller error, got %v", err)
		}
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("caller errors must not open the circuit, got %s", state)
	}

	if err := b.Execute(func() error { return transient }, isFailure); !errors.Is(err, transient) {
		t.Fatalf("expected transient error, got %v", err)
	}

	calls := 0
	err := b.Execute(func() error {
		calls++
		return nil
	}, isFailure)
	if !errors.Is(err, ErrCircuitOpen) || calls != 0 {
		t.Fatalf("open circuit must short-circuit, err=%v calls=%d", err, calls)
	}
}

func TestNormalizeCircuitBreakerConfig_FillsDefaults(t *testing.T) {
	cfg := NormalizeCircuitBreakerConfig(CircuitBreakerConfig{Enabled: false, OpenTimeout: -time.Second})
	defaults := DefaultCircuitBreakerConfig()

	if cfg.Enabled {
		t.Fatalf("normalize must keep Enabled as given")
	}
	if cfg.FailureThreshold != defaults.FailureThreshold || cfg.OpenTimeout != defaults.OpenTimeout || cfg.HalfOpenMaxReq != defaults.HalfOpenMaxReq {
		t.Fatalf("unexpected normalized config: %+v", cfg)
	}
}

func TestNewCircuitBreaker_ZeroConfigUsesDefaultThreshold(t *testing.T) {
	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b := newTestBreaker(CircuitBreakerConfig{}, &now)

	for i := 1; i < defaultFailureThreshold; i++ {
		b.RecordFailure()
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed below default threshold, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open at default threshold, got %s", state)
	}
}
