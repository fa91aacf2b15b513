package outcome

import (
	"github.com/riskibarqy/league-engine/internal/domain/assignment"
	"github.com/riskibarqy/league-engine/internal/domain/division"
	"github.com/riskibarqy/league-engine/internal/domain/standing"
)

// Label is the season outcome implied by a final position.
type Label string

const (
	LabelTournament Label = "TOURNAMENT"
	LabelPromotion  Label = "PROMOTION"
	LabelPlayoff    Label = "PLAYOFF"
	LabelRelegation Label = "RELEGATION"
	LabelSafe       Label = "SAFE"
)

// Classify maps every ranked team of a group to its outcome label.
func Classify(table []standing.Standing, div division.Division, bottomLevel int) map[string]Label {
	size := len(table)
	out := make(map[string]Label, size)
	for _, row := range table {
		out[row.TeamID] = classifyPosition(row.Position, size, div, bottomLevel)
	}
	return out
}

func classifyPosition(position, size int, div division.Division, bottomLevel int) Label {
	if div.IsTop() {
		if position <= div.TournamentSlots {
			return LabelTournament
		}
	} else {
		if position <= div.PromoteSlots {
			return LabelPromotion
		}
		if position <= div.PromoteSlots+div.PromotePlayoffSlots {
			return LabelPlayoff
		}
	}

	if div.Level < bottomLevel && position > size-div.RelegateSlots {
		return LabelRelegation
	}
	return LabelSafe
}

// Policy controls how Apply treats flags set outside classification.
type Policy struct {
	// PreservePromotion keeps existing promotion marks, e.g. those granted by
	// a playoff bracket, instead of resetting them before reapplying labels.
	PreservePromotion bool
}

func (p Policy) String() string {
	if p.PreservePromotion {
		return "preserve-promotion"
	}
	return "reset-promotion"
}

// Apply resets and reapplies outcome flags on assignments from labels.
// Relegation, playoff and tournament flags are always recomputed. The
// promotion flag is only reset when the policy does not preserve it; a team
// keeping a preserved promotion mark does not get the playoff flag back.
func Apply(items []assignment.Assignment, labels map[string]Label, policy Policy) []assignment.Assignment {
	out := make([]assignment.Assignment, 0, len(items))
	for _, item := range items {
		item.RelegatedNextSeason = false
		item.PlayoffNextSeason = false
		item.QualifiedForTournament = false
		if !policy.PreservePromotion {
			item.PromotedNextSeason = false
		}

		switch labels[item.TeamID] {
		case LabelTournament:
			item.QualifiedForTournament = !item.PromotedNextSeason
		case LabelPromotion:
			item.PromotedNextSeason = true
		case LabelPlayoff:
			item.PlayoffNextSeason = !item.PromotedNextSeason
		case LabelRelegation:
			item.RelegatedNextSeason = !item.PromotedNextSeason
		}
		out = append(out, item)
	}
	return out
}

// Count tallies labels, handy for reporting.
func Count(labels map[string]Label) map[Label]int {
	out := make(map[Label]int, 5)
	for _, label := range labels {
		out[label]++
	}
	return out
}
