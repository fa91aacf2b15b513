// Package jobscheduler describes the audit trail of match-day triggers: each
// trigger id is recorded when it is queued, completed or failed.
package jobscheduler

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidEvent = errors.New("invalid dispatch event")

type DispatchStatus string

const (
	StatusSent      DispatchStatus = "sent"
	StatusCompleted DispatchStatus = "completed"
	StatusFailed    DispatchStatus = "failed"
)

func (s DispatchStatus) Valid() bool {
	switch s {
	case StatusSent, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further event is expected for the dispatch.
func (s DispatchStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// DispatchEvent records one state change of a job trigger. DispatchID is the
// queue deduplication id, so a trigger delivered twice maps to one record.
type DispatchEvent struct {
	DispatchID   string
	JobName      string
	JobPath      string
	SeasonID     string
	Status       DispatchStatus
	Payload      map[string]any
	ErrorMessage string
	OccurredAt   time.Time
	TraceID      string
	SpanID       string
}

func (e DispatchEvent) Validate() error {
	if strings.TrimSpace(e.DispatchID) == "" {
		return fmt.Errorf("%w: dispatch id is required", ErrInvalidEvent)
	}
	if !e.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidEvent, e.Status)
	}
	if e.Status == StatusFailed && strings.TrimSpace(e.ErrorMessage) == "" {
		return fmt.Errorf("%w: failed dispatch %s needs an error message", ErrInvalidEvent, e.DispatchID)
	}
	return nil
}
