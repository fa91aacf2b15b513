package season

import (
	"errors"
	"testing"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name     string
		snapshot Snapshot
		want     Phase
	}{
		{
			name:     "regular matches outstanding",
			snapshot: Snapshot{RegularPending: 3, PlayoffsConfigured: true},
			want:     PhaseRegularInProgress,
		},
		{
			name:     "no playoff configured finalizes directly",
			snapshot: Snapshot{},
			want:     PhaseConsequencesFinalized,
		},
		{
			name:     "playoff configured but not generated",
			snapshot: Snapshot{PlayoffsConfigured: true},
			want:     PhaseRegularComplete,
		},
		{
			name:     "bracket running",
			snapshot: Snapshot{PlayoffsConfigured: true, PlayoffFixtures: 2, PlayoffPending: 1},
			want:     PhasePlayoffsInProgress,
		},
		{
			name:     "final played promotion pending",
			snapshot: Snapshot{PlayoffsConfigured: true, PlayoffFixtures: 3, FinalFinished: true},
			want:     PhasePlayoffsComplete,
		},
		{
			name:     "finalized",
			snapshot: Snapshot{PlayoffsConfigured: true, PlayoffFixtures: 3, FinalFinished: true, PromotionFinalized: true},
			want:     PhaseConsequencesFinalized,
		},
		{
			name:     "planned",
			snapshot: Snapshot{Planned: true},
			want:     PhaseNextSeasonPlanned,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Derive(tc.snapshot); got != tc.want {
				t.Fatalf("unexpected phase: got=%s want=%s", got, tc.want)
			}
		})
	}
}

func TestTransition(t *testing.T) {
	valid := [][2]Phase{
		{PhaseRegularInProgress, PhaseRegularComplete},
		{PhaseRegularComplete, PhasePlayoffsNone},
		{PhaseRegularComplete, PhasePlayoffsInProgress},
		{PhasePlayoffsNone, PhaseConsequencesFinalized},
		{PhasePlayoffsInProgress, PhasePlayoffsComplete},
		{PhasePlayoffsComplete, PhaseConsequencesFinalized},
		{PhaseConsequencesFinalized, PhaseNextSeasonPlanned},
	}
	for _, step := range valid {
		if err := Transition(step[0], step[1]); err != nil {
			t.Fatalf("expected %s -> %s to be valid: %v", step[0], step[1], err)
		}
	}

	err := Transition(PhaseRegularInProgress, PhasePlayoffsInProgress)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestPreservesPromotion(t *testing.T) {
	if (Snapshot{PlayoffsConfigured: true}).PreservesPromotion() {
		t.Fatalf("promotion must be reapplied while no bracket exists")
	}
	if !(Snapshot{PlayoffsConfigured: true, PlayoffFixtures: 2}).PreservesPromotion() {
		t.Fatalf("promotion must be preserved once a bracket exists")
	}
}

func TestPhaseAtLeast(t *testing.T) {
	if !PhaseNextSeasonPlanned.AtLeast(PhaseConsequencesFinalized) {
		t.Fatalf("planned must be past finalized")
	}
	if PhasePlayoffsInProgress.AtLeast(PhaseConsequencesFinalized) {
		t.Fatalf("playoffs in progress must be before finalized")
	}
}
