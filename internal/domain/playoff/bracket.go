package playoff

import (
	"fmt"
	"sort"

	"github.com/riskibarqy/league-engine/internal/domain/domainerr"
	"github.com/riskibarqy/league-engine/internal/domain/match"
)

var (
	ErrPlayoffDraw       = domainerr.InconsistentState("playoff match finished level")
	ErrMalformedBracket  = domainerr.InconsistentState("playoff bracket is malformed")
	ErrMatchNotFinished  = domainerr.InsufficientData("playoff match not finished")
	ErrBracketUnresolved = domainerr.InsufficientData("playoff bracket not resolved")
)

// Pairing is a playoff fixture before it is persisted.
type Pairing struct {
	Round      match.Round
	Slot       int
	HomeTeamID string
	AwayTeamID string
}

// Bracket is the set of playoff fixtures of one division and season, by round.
type Bracket struct {
	rounds map[match.Round][]match.Match
}

func NewBracket(matches []match.Match) Bracket {
	rounds := make(map[match.Round][]match.Match)
	for _, item := range matches {
		if !item.IsPlayoff || item.PlayoffRound == match.RoundNone {
			continue
		}
		rounds[item.PlayoffRound] = append(rounds[item.PlayoffRound], item)
	}
	for round := range rounds {
		fixtures := rounds[round]
		sort.SliceStable(fixtures, func(i, j int) bool {
			if fixtures[i].PlayoffSlot != fixtures[j].PlayoffSlot {
				return fixtures[i].PlayoffSlot < fixtures[j].PlayoffSlot
			}
			return fixtures[i].ID < fixtures[j].ID
		})
	}
	return Bracket{rounds: rounds}
}

func (b Bracket) Empty() bool {
	return len(b.rounds) == 0
}

func (b Bracket) Size() int {
	total := 0
	for _, fixtures := range b.rounds {
		total += len(fixtures)
	}
	return total
}

func (b Bracket) Round(round match.Round) []match.Match {
	return b.rounds[round]
}

func (b Bracket) sortedRounds() []match.Round {
	out := make([]match.Round, 0, len(b.rounds))
	for round := range b.rounds {
		out = append(out, round)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Opening returns the first round played.
func (b Bracket) Opening() (match.Round, []match.Match) {
	rounds := b.sortedRounds()
	if len(rounds) == 0 {
		return match.RoundNone, nil
	}
	return rounds[0], b.rounds[rounds[0]]
}

// Latest returns the round currently in progress or last played.
func (b Bracket) Latest() (match.Round, []match.Match) {
	rounds := b.sortedRounds()
	if len(rounds) == 0 {
		return match.RoundNone, nil
	}
	last := rounds[len(rounds)-1]
	return last, b.rounds[last]
}

func (b Bracket) Pending() int {
	total := 0
	for _, fixtures := range b.rounds {
		total += match.CountPending(fixtures)
	}
	return total
}

func (b Bracket) RoundComplete(round match.Round) bool {
	fixtures := b.rounds[round]
	if len(fixtures) == 0 {
		return false
	}
	for _, item := range fixtures {
		if !item.IsFinished() {
			return false
		}
	}
	return true
}

func (b Bracket) FinalFinished() bool {
	return b.RoundComplete(match.RoundFinal)
}

// TeamIDs lists every team that appears in the bracket.
func (b Bracket) TeamIDs() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, round := range b.sortedRounds() {
		for _, item := range b.rounds[round] {
			for _, id := range []string{item.HomeTeamID, item.AwayTeamID} {
				if _, ok := seen[id]; ok {
					continue
				}
				seen[id] = struct{}{}
				out = append(out, id)
			}
		}
	}
	return out
}

// Winner returns the winner and loser of a finished playoff match.
func Winner(item match.Match) (string, string, error) {
	if !item.IsFinished() {
		return "", "", fmt.Errorf("%w: match=%s", ErrMatchNotFinished, item.ID)
	}
	home, away := *item.HomeScore, *item.AwayScore
	switch {
	case home > away:
		return item.HomeTeamID, item.AwayTeamID, nil
	case away > home:
		return item.AwayTeamID, item.HomeTeamID, nil
	default:
		return "", "", fmt.Errorf("%w: match=%s score=%d-%d", ErrPlayoffDraw, item.ID, home, away)
	}
}

// NextRound pairs the winners of the latest round once all of its fixtures
// are finished: winner of slot 2k hosts winner of slot 2k+1. It returns
// nothing while the round is still running or after the final.
func NextRound(b Bracket) ([]Pairing, error) {
	round, fixtures := b.Latest()
	if round == match.RoundNone || round == match.RoundFinal {
		return nil, nil
	}
	if !b.RoundComplete(round) {
		return nil, nil
	}
	next, ok := round.Next()
	if !ok || len(fixtures)%2 != 0 {
		return nil, fmt.Errorf("%w: round=%s fixtures=%d", ErrMalformedBracket, round, len(fixtures))
	}

	winners := make([]string, 0, len(fixtures))
	for _, item := range fixtures {
		winner, _, err := Winner(item)
		if err != nil {
			return nil, err
		}
		winners = append(winners, winner)
	}

	out := make([]Pairing, 0, len(winners)/2)
	for i := 0; i+1 < len(winners); i += 2 {
		out = append(out, Pairing{
			Round:      next,
			Slot:       i / 2,
			HomeTeamID: winners[i],
			AwayTeamID: winners[i+1],
		})
	}
	return out, nil
}
