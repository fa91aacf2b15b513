package transition

import (
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/league-engine/internal/domain/division"
	"github.com/riskibarqy/league-engine/internal/domain/domainerr"
	"github.com/riskibarqy/league-engine/internal/domain/group"
)

var (
	ErrNotEnoughVacancies = domainerr.Configuration("more relegated teams than vacated slots")
	ErrNoDivisionAbove    = domainerr.Configuration("promoted team has no division above")
	ErrNoDivisionBelow    = domainerr.Configuration("relegated team has no division below")
	ErrUnknownGroup       = domainerr.InconsistentState("assignment references a group outside its division")
	ErrConflictingFlags   = domainerr.InconsistentState("team is both promoted and relegated")
)

type MoveKind string

const (
	MoveStay     MoveKind = "STAY"
	MovePromote  MoveKind = "PROMOTE"
	MoveRelegate MoveKind = "RELEGATE"
)

// Entry is one team's final state in its current group.
type Entry struct {
	TeamID    string
	GroupID   string
	Position  int
	Promoted  bool
	Relegated bool
}

// DivisionInput is everything the planner needs about one division.
type DivisionInput struct {
	Division division.Division
	Groups   []group.Group
	Entries  []Entry
}

type Move struct {
	TeamID      string
	FromGroupID string
	ToGroupID   string
	Kind        MoveKind
}

// Plan maps every team to its group for the next season.
type Plan struct {
	Moves []Move
}

func (p Plan) Targets() map[string]string {
	out := make(map[string]string, len(p.Moves))
	for _, move := range p.Moves {
		out[move.TeamID] = move.ToGroupID
	}
	return out
}

func (p Plan) Count(kind MoveKind) int {
	count := 0
	for _, move := range p.Moves {
		if move.Kind == kind {
			count++
		}
	}
	return count
}

type placed struct {
	entry Entry
	code  string
}

// Build computes the next-season plan. Teams without a flag keep their group.
// Relegated teams fill, one for one, the slots vacated by teams promoted out
// of the division below, in group code order. Promoted teams join the least
// filled group of the division above.
func Build(inputs []DivisionInput) (Plan, error) {
	divisions := make([]DivisionInput, len(inputs))
	copy(divisions, inputs)
	sort.SliceStable(divisions, func(i, j int) bool {
		return divisions[i].Division.Level < divisions[j].Division.Level
	})

	codes := make(map[string]string)
	occupancy := make(map[string]int)
	groupsByDivision := make([][]group.Group, len(divisions))
	for i, input := range divisions {
		groups := make([]group.Group, len(input.Groups))
		copy(groups, input.Groups)
		group.SortByCode(groups)
		groupsByDivision[i] = groups
		for _, item := range groups {
			codes[item.ID] = item.Code
			occupancy[item.ID] = 0
		}
	}

	moves := make([]Move, 0)
	promoted := make([][]placed, len(divisions))
	relegated := make([][]placed, len(divisions))
	for i, input := range divisions {
		own := make(map[string]struct{}, len(groupsByDivision[i]))
		for _, item := range groupsByDivision[i] {
			own[item.ID] = struct{}{}
		}

		for _, entry := range input.Entries {
			if _, ok := own[entry.GroupID]; !ok {
				return Plan{}, fmt.Errorf("%w: team=%s group=%s division=%s", ErrUnknownGroup, entry.TeamID, entry.GroupID, input.Division.ID)
			}
			switch {
			case entry.Promoted && entry.Relegated:
				return Plan{}, fmt.Errorf("%w: team=%s", ErrConflictingFlags, entry.TeamID)
			case entry.Promoted:
				promoted[i] = append(promoted[i], placed{entry: entry, code: codes[entry.GroupID]})
			case entry.Relegated:
				relegated[i] = append(relegated[i], placed{entry: entry, code: codes[entry.GroupID]})
			default:
				occupancy[entry.GroupID]++
				moves = append(moves, Move{TeamID: entry.TeamID, FromGroupID: entry.GroupID, ToGroupID: entry.GroupID, Kind: MoveStay})
			}
		}
		sortPlaced(promoted[i])
		sortPlaced(relegated[i])
	}

	for i, input := range divisions {
		if len(relegated[i]) == 0 {
			continue
		}
		if i+1 >= len(divisions) {
			return Plan{}, fmt.Errorf("%w: division=%s teams=%d", ErrNoDivisionBelow, input.Division.ID, len(relegated[i]))
		}
		vacancies := promoted[i+1]
		if len(relegated[i]) > len(vacancies) {
			return Plan{}, fmt.Errorf("%w: division=%s relegated=%d vacated=%d in division=%s",
				ErrNotEnoughVacancies, input.Division.ID, len(relegated[i]), len(vacancies), divisions[i+1].Division.ID)
		}
		for k, item := range relegated[i] {
			target := vacancies[k].entry.GroupID
			occupancy[target]++
			moves = append(moves, Move{TeamID: item.entry.TeamID, FromGroupID: item.entry.GroupID, ToGroupID: target, Kind: MoveRelegate})
		}
	}

	for i, input := range divisions {
		if len(promoted[i]) == 0 {
			continue
		}
		if i == 0 {
			return Plan{}, fmt.Errorf("%w: division=%s teams=%d", ErrNoDivisionAbove, input.Division.ID, len(promoted[i]))
		}
		targets := groupsByDivision[i-1]
		if len(targets) == 0 {
			return Plan{}, fmt.Errorf("%w: division=%s has no groups", ErrNoDivisionAbove, divisions[i-1].Division.ID)
		}
		for _, item := range promoted[i] {
			target := leastFilled(targets, occupancy)
			occupancy[target]++
			moves = append(moves, Move{TeamID: item.entry.TeamID, FromGroupID: item.entry.GroupID, ToGroupID: target, Kind: MovePromote})
		}
	}

	sort.SliceStable(moves, func(i, j int) bool {
		return moves[i].TeamID < moves[j].TeamID
	})
	return Plan{Moves: moves}, nil
}

func sortPlaced(items []placed) {
	sort.SliceStable(items, func(i, j int) bool {
		left, right := strings.ToUpper(items[i].code), strings.ToUpper(items[j].code)
		if left != right {
			return left < right
		}
		if items[i].entry.Position != items[j].entry.Position {
			return items[i].entry.Position < items[j].entry.Position
		}
		return items[i].entry.TeamID < items[j].entry.TeamID
	})
}

// leastFilled picks the group with the fewest assigned teams; groups are
// already in code order so ties resolve to the lowest code.
func leastFilled(groups []group.Group, occupancy map[string]int) string {
	best := groups[0].ID
	for _, item := range groups[1:] {
		if occupancy[item.ID] < occupancy[best] {
			best = item.ID
		}
	}
	return best
}
