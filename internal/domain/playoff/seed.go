package playoff

import (
	"fmt"

	"github.com/riskibarqy/league-engine/internal/domain/division"
	"github.com/riskibarqy/league-engine/internal/domain/domainerr"
	"github.com/riskibarqy/league-engine/internal/domain/group"
	"github.com/riskibarqy/league-engine/internal/domain/match"
	"github.com/riskibarqy/league-engine/internal/domain/standing"
)

var (
	ErrUnsupportedGroupCount  = domainerr.Configuration("no playoff pairing defined for group count")
	ErrUnsupportedBracketSize = domainerr.Configuration("playoff qualifier count must be 2, 4 or 8")
	ErrInsufficientTeams      = domainerr.InsufficientData("not enough qualified teams for playoff")
	ErrScheduleIncomplete     = domainerr.InsufficientData("regular season schedule not complete")
)

// GroupTable is the ranked table of one group.
type GroupTable struct {
	Group     group.Group
	Standings []standing.Standing
}

// Seed selects qualifiers and builds the opening round of a division playoff.
func Seed(div division.Division, tables []GroupTable) ([]Pairing, error) {
	if len(tables) != div.GroupCount {
		return nil, fmt.Errorf("%w: division=%s has %d of %d group tables", ErrInsufficientTeams, div.ID, len(tables), div.GroupCount)
	}

	sorted := make([]GroupTable, len(tables))
	copy(sorted, tables)
	groups := make([]group.Group, 0, len(sorted))
	for _, item := range sorted {
		groups = append(groups, item.Group)
	}
	group.SortByCode(groups)
	byGroup := make(map[string]GroupTable, len(sorted))
	for _, item := range sorted {
		byGroup[item.Group.ID] = item
	}
	for i, item := range groups {
		sorted[i] = byGroup[item.ID]
	}

	switch div.GroupCount {
	case 1:
		return seedSingleGroup(div, sorted[0])
	case 2:
		return seedCrossPairs(div, sorted, match.RoundSemifinal, [][4]int{
			{0, 2, 1, 3},
			{1, 2, 0, 3},
		})
	case 4:
		return seedCrossPairs(div, sorted, match.RoundSemifinal, [][4]int{
			{0, 2, 3, 2},
			{1, 2, 2, 2},
		})
	case 8:
		return seedCrossPairs(div, sorted, match.RoundQuarterfinal, [][4]int{
			{0, 2, 7, 2},
			{1, 2, 6, 2},
			{2, 2, 5, 2},
			{3, 2, 4, 2},
		})
	default:
		return nil, fmt.Errorf("%w: division=%s groups=%d", ErrUnsupportedGroupCount, div.ID, div.GroupCount)
	}
}

func seedSingleGroup(div division.Division, table GroupTable) ([]Pairing, error) {
	count := div.PromotePlayoffSlots
	round, ok := openingRound(count)
	if !ok {
		return nil, fmt.Errorf("%w: division=%s qualifiers=%d", ErrUnsupportedBracketSize, div.ID, count)
	}

	seeds := make([]string, 0, count)
	for position := div.PromoteSlots + 1; position <= div.PromoteSlots+count; position++ {
		teamID, err := teamAt(div, table, position)
		if err != nil {
			return nil, err
		}
		seeds = append(seeds, teamID)
	}

	order := seedOrder(count)
	out := make([]Pairing, 0, count/2)
	for i := 0; i+1 < len(order); i += 2 {
		out = append(out, Pairing{
			Round:      round,
			Slot:       i / 2,
			HomeTeamID: seeds[order[i]-1],
			AwayTeamID: seeds[order[i+1]-1],
		})
	}
	return out, nil
}

// seedCrossPairs builds fixtures from {homeGroup, homePosition, awayGroup, awayPosition} rules.
func seedCrossPairs(div division.Division, tables []GroupTable, round match.Round, rules [][4]int) ([]Pairing, error) {
	out := make([]Pairing, 0, len(rules))
	for slot, rule := range rules {
		home, err := teamAt(div, tables[rule[0]], rule[1])
		if err != nil {
			return nil, err
		}
		away, err := teamAt(div, tables[rule[2]], rule[3])
		if err != nil {
			return nil, err
		}
		out = append(out, Pairing{Round: round, Slot: slot, HomeTeamID: home, AwayTeamID: away})
	}
	return out, nil
}

func teamAt(div division.Division, table GroupTable, position int) (string, error) {
	for _, row := range table.Standings {
		if row.Position == position && row.TeamID != "" {
			return row.TeamID, nil
		}
	}
	return "", fmt.Errorf("%w: division=%s group=%s position=%d", ErrInsufficientTeams, div.ID, table.Group.Code, position)
}

func openingRound(qualifiers int) (match.Round, bool) {
	switch qualifiers {
	case 2:
		return match.RoundFinal, true
	case 4:
		return match.RoundSemifinal, true
	case 8:
		return match.RoundQuarterfinal, true
	default:
		return match.RoundNone, false
	}
}

// seedOrder lists seeds in bracket order so that the top seeds can only meet
// late: 4 -> 1,4,2,3 and 8 -> 1,8,4,5,2,7,3,6.
func seedOrder(size int) []int {
	order := []int{1, 2}
	for len(order) < size {
		next := make([]int, 0, len(order)*2)
		total := len(order)*2 + 1
		for _, seed := range order {
			next = append(next, seed, total-seed)
		}
		order = next
	}
	return order
}
