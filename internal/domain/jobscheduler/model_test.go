package jobscheduler

import (
	"errors"
	"testing"
)

func TestDispatchEvent_Validate(t *testing.T) {
	cases := []struct {
		name  string
		event DispatchEvent
		ok    bool
	}{
		{name: "sent", event: DispatchEvent{DispatchID: "match-day-s1", Status: StatusSent}, ok: true},
		{name: "failed with message", event: DispatchEvent{DispatchID: "d", Status: StatusFailed, ErrorMessage: "boom"}, ok: true},
		{name: "blank id", event: DispatchEvent{DispatchID: " ", Status: StatusSent}},
		{name: "unknown status", event: DispatchEvent{DispatchID: "d", Status: "queued"}},
		{name: "failed without message", event: DispatchEvent{DispatchID: "d", Status: StatusFailed}},
	}
	for _, tc := range cases {
		err := tc.event.Validate()
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidEvent) {
			t.Fatalf("%s: expected ErrInvalidEvent, got %v", tc.name, err)
		}
	}
}

func TestDispatchStatus_Terminal(t *testing.T) {
	if StatusSent.Terminal() || !StatusCompleted.Terminal() || !StatusFailed.Terminal() {
		t.Fatalf("unexpected terminal statuses")
	}
}
