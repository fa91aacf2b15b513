package division

import (
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/league-engine/internal/domain/domainerr"
)

// TopLevel is the level of the highest division.
const TopLevel = 1

// PlayoffPolicy decides which playoff participants are promoted.
type PlayoffPolicy string

const (
	PolicyWinner              PlayoffPolicy = "WINNER"
	PolicyFinalists           PlayoffPolicy = "FINALISTS"
	PolicyOpeningRoundWinners PlayoffPolicy = "OPENING_ROUND_WINNERS"
)

var ErrInvalidConfig = domainerr.Configuration("invalid division configuration")

// Division is one competitive tier with its own slot configuration.
type Division struct {
	ID                  string
	Name                string
	Level               int
	GroupCount          int
	TeamsPerGroup       int
	PromoteSlots        int
	PromotePlayoffSlots int
	RelegateSlots       int
	TournamentSlots     int
	PlayoffPolicy       PlayoffPolicy
}

func NormalizePolicy(value string) PlayoffPolicy {
	switch PlayoffPolicy(strings.ToUpper(strings.TrimSpace(value))) {
	case PolicyFinalists:
		return PolicyFinalists
	case PolicyOpeningRoundWinners:
		return PolicyOpeningRoundWinners
	default:
		return PolicyWinner
	}
}

func (d Division) IsTop() bool {
	return d.Level == TopLevel
}

// HasPlayoffs reports whether the division runs a promotion playoff.
// The top division never promotes, so it never has one.
func (d Division) HasPlayoffs() bool {
	return !d.IsTop() && d.PromotePlayoffSlots > 0
}

// crossGroupBands holds the table positions each group sends into a
// multi-group playoff, keyed by group count.
var crossGroupBands = map[int][2]int{
	2: {2, 3},
	4: {2, 2},
	8: {2, 2},
}

// CrossGroupBand returns the first and last table position that every group
// of a multi-group playoff contributes.
func CrossGroupBand(groupCount int) (first, last int, ok bool) {
	band, ok := crossGroupBands[groupCount]
	return band[0], band[1], ok
}

func (d Division) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("%w: division id is required", ErrInvalidConfig)
	}
	if d.Level < TopLevel {
		return fmt.Errorf("%w: division=%s level must be >= %d", ErrInvalidConfig, d.ID, TopLevel)
	}
	if d.GroupCount < 1 {
		return fmt.Errorf("%w: division=%s group count must be >= 1", ErrInvalidConfig, d.ID)
	}
	if d.PromoteSlots < 0 || d.PromotePlayoffSlots < 0 || d.RelegateSlots < 0 || d.TournamentSlots < 0 {
		return fmt.Errorf("%w: division=%s slot counts must be >= 0", ErrInvalidConfig, d.ID)
	}
	if d.TeamsPerGroup > 0 {
		if d.PromoteSlots+d.PromotePlayoffSlots+d.RelegateSlots > d.TeamsPerGroup {
			return fmt.Errorf("%w: division=%s promotion and relegation bands exceed %d teams", ErrInvalidConfig, d.ID, d.TeamsPerGroup)
		}
		if d.TournamentSlots+d.RelegateSlots > d.TeamsPerGroup {
			return fmt.Errorf("%w: division=%s tournament and relegation bands exceed %d teams", ErrInvalidConfig, d.ID, d.TeamsPerGroup)
		}
	}
	if d.GroupCount > 1 && d.HasPlayoffs() {
		// Unsupported group counts are rejected when the bracket is seeded.
		if first, last, ok := CrossGroupBand(d.GroupCount); ok && (d.PromoteSlots+1 != first || d.PromoteSlots+d.PromotePlayoffSlots != last) {
			return fmt.Errorf("%w: division=%s playoff band %d-%d must be positions %d-%d for %d groups",
				ErrInvalidConfig, d.ID, d.PromoteSlots+1, d.PromoteSlots+d.PromotePlayoffSlots, first, last, d.GroupCount)
		}
	}

	return nil
}

// BottomLevel returns the deepest level among divisions, or TopLevel when empty.
func BottomLevel(items []Division) int {
	bottom := TopLevel
	for _, item := range items {
		if item.Level > bottom {
			bottom = item.Level
		}
	}
	return bottom
}

// SortByLevel orders divisions top first.
func SortByLevel(items []Division) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Level != items[j].Level {
			return items[i].Level < items[j].Level
		}
		return items[i].ID < items[j].ID
	})
}
