package season

import (
	"fmt"

	"github.com/riskibarqy/league-engine/internal/domain/domainerr"
)

// Phase is the lifecycle state of one division within one season.
type Phase string

const (
	PhaseRegularInProgress     Phase = "REGULAR_IN_PROGRESS"
	PhaseRegularComplete       Phase = "REGULAR_COMPLETE"
	PhasePlayoffsNone          Phase = "PLAYOFFS_NONE"
	PhasePlayoffsInProgress    Phase = "PLAYOFFS_IN_PROGRESS"
	PhasePlayoffsComplete      Phase = "PLAYOFFS_COMPLETE"
	PhaseConsequencesFinalized Phase = "CONSEQUENCES_FINALIZED"
	PhaseNextSeasonPlanned     Phase = "NEXT_SEASON_PLANNED"
)

var ErrInvalidTransition = domainerr.InconsistentState("invalid phase transition")

var transitions = map[Phase][]Phase{
	PhaseRegularInProgress:     {PhaseRegularComplete},
	PhaseRegularComplete:       {PhasePlayoffsNone, PhasePlayoffsInProgress},
	PhasePlayoffsNone:          {PhaseConsequencesFinalized},
	PhasePlayoffsInProgress:    {PhasePlayoffsComplete},
	PhasePlayoffsComplete:      {PhaseConsequencesFinalized},
	PhaseConsequencesFinalized: {PhaseNextSeasonPlanned},
}

var order = map[Phase]int{
	PhaseRegularInProgress:     0,
	PhaseRegularComplete:       1,
	PhasePlayoffsNone:          2,
	PhasePlayoffsInProgress:    2,
	PhasePlayoffsComplete:      3,
	PhaseConsequencesFinalized: 4,
	PhaseNextSeasonPlanned:     5,
}

// Snapshot holds the facts a division phase is derived from.
type Snapshot struct {
	RegularPending     int
	PlayoffsConfigured bool
	PlayoffFixtures    int
	PlayoffPending     int
	FinalFinished      bool
	PromotionFinalized bool
	Planned            bool
}

// Derive maps the current facts of a division to its lifecycle phase.
func Derive(s Snapshot) Phase {
	if s.RegularPending > 0 {
		return PhaseRegularInProgress
	}

	var phase Phase
	switch {
	case !s.PlayoffsConfigured:
		phase = PhaseConsequencesFinalized
	case s.PlayoffFixtures == 0:
		return PhaseRegularComplete
	case !s.FinalFinished:
		return PhasePlayoffsInProgress
	case !s.PromotionFinalized:
		return PhasePlayoffsComplete
	default:
		phase = PhaseConsequencesFinalized
	}

	if s.Planned {
		return PhaseNextSeasonPlanned
	}
	return phase
}

// PreservesPromotion reports whether promotion marks must survive a
// standings recompute. Once a bracket exists, promotion is owned by it.
func (s Snapshot) PreservesPromotion() bool {
	return s.PlayoffsConfigured && s.PlayoffFixtures > 0
}

func CanTransition(from, to Phase) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates a single step of the lifecycle.
func Transition(from, to Phase) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// AtLeast reports whether p has reached target in lifecycle order.
func (p Phase) AtLeast(target Phase) bool {
	return order[p] >= order[target]
}
