package playoff

import (
	"fmt"

	"github.com/riskibarqy/league-engine/internal/domain/division"
	"github.com/riskibarqy/league-engine/internal/domain/match"
)

// Promoted returns the bracket teams promoted under the given policy.
func Promoted(policy division.PlayoffPolicy, b Bracket) ([]string, error) {
	switch policy {
	case division.PolicyFinalists:
		final := b.Round(match.RoundFinal)
		if len(final) != 1 {
			return nil, fmt.Errorf("%w: final not scheduled", ErrBracketUnresolved)
		}
		return []string{final[0].HomeTeamID, final[0].AwayTeamID}, nil
	case division.PolicyOpeningRoundWinners:
		round, fixtures := b.Opening()
		if !b.RoundComplete(round) {
			return nil, fmt.Errorf("%w: opening round %s not complete", ErrBracketUnresolved, round)
		}
		out := make([]string, 0, len(fixtures))
		for _, item := range fixtures {
			winner, _, err := Winner(item)
			if err != nil {
				return nil, err
			}
			out = append(out, winner)
		}
		return out, nil
	default:
		final := b.Round(match.RoundFinal)
		if len(final) != 1 {
			return nil, fmt.Errorf("%w: final not scheduled", ErrBracketUnresolved)
		}
		winner, _, err := Winner(final[0])
		if err != nil {
			return nil, err
		}
		return []string{winner}, nil
	}
}
