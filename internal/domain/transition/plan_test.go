package transition

import (
	"errors"
	"fmt"
	"testing"

	"github.com/riskibarqy/league-engine/internal/domain/division"
	"github.com/riskibarqy/league-engine/internal/domain/domainerr"
	"github.com/riskibarqy/league-engine/internal/domain/group"
)

func groupsOf(divisionID string, codes ...string) []group.Group {
	out := make([]group.Group, 0, len(codes))
	for _, code := range codes {
		out = append(out, group.Group{ID: divisionID + "-" + code, DivisionID: divisionID, Code: code})
	}
	return out
}

func entriesOf(groupID string, size int, promoted, relegated []int) []Entry {
	flag := func(set []int, pos int) bool {
		for _, item := range set {
			if item == pos {
				return true
			}
		}
		return false
	}
	out := make([]Entry, 0, size)
	for pos := 1; pos <= size; pos++ {
		out = append(out, Entry{
			TeamID:    fmt.Sprintf("%s-t%d", groupID, pos),
			GroupID:   groupID,
			Position:  pos,
			Promoted:  flag(promoted, pos),
			Relegated: flag(relegated, pos),
		})
	}
	return out
}

func TestBuild_BackfillsVacatedSlotsAndBalancesPromotions(t *testing.T) {
	top := DivisionInput{
		Division: division.Division{ID: "d1", Level: 1},
		Groups:   groupsOf("d1", "A"),
		Entries:  entriesOf("d1-A", 6, nil, []int{5, 6}),
	}
	middle := DivisionInput{
		Division: division.Division{ID: "d2", Level: 2},
		Groups:   groupsOf("d2", "B", "A"),
		Entries: append(
			entriesOf("d2-A", 4, []int{1}, []int{4}),
			entriesOf("d2-B", 4, []int{1}, []int{4})...,
		),
	}
	bottom := DivisionInput{
		Division: division.Division{ID: "d3", Level: 3},
		Groups:   groupsOf("d3", "A", "B"),
		Entries: append(
			entriesOf("d3-A", 4, []int{1}, nil),
			entriesOf("d3-B", 4, []int{1}, nil)...,
		),
	}

	plan, err := Build([]DivisionInput{bottom, top, middle})
	if err != nil {
		t.Fatalf("build plan: %v", err)
	}
	targets := plan.Targets()
	if len(targets) != 6+8+8 {
		t.Fatalf("every team must have a target, got %d", len(targets))
	}

	expect := map[string]string{
		"d1-A-t1": "d1-A",
		"d1-A-t5": "d2-A",
		"d1-A-t6": "d2-B",
		"d2-A-t1": "d1-A",
		"d2-B-t1": "d1-A",
		"d2-A-t4": "d3-A",
		"d2-B-t4": "d3-B",
		"d3-A-t1": "d2-A",
		"d3-B-t1": "d2-B",
		"d3-B-t2": "d3-B",
	}
	for team, want := range expect {
		if got := targets[team]; got != want {
			t.Fatalf("unexpected target for %s: got=%s want=%s", team, got, want)
		}
	}
	if plan.Count(MovePromote) != 4 || plan.Count(MoveRelegate) != 4 {
		t.Fatalf("unexpected move counts: promote=%d relegate=%d", plan.Count(MovePromote), plan.Count(MoveRelegate))
	}
}

func TestBuild_PromotionGoesToLeastFilledGroup(t *testing.T) {
	top := DivisionInput{
		Division: division.Division{ID: "d1", Level: 1},
		Groups:   groupsOf("d1", "A", "B"),
		Entries: append(
			entriesOf("d1-A", 4, nil, nil),
			entriesOf("d1-B", 3, nil, nil)...,
		),
	}
	lower := DivisionInput{
		Division: division.Division{ID: "d2", Level: 2},
		Groups:   groupsOf("d2", "A"),
		Entries:  entriesOf("d2-A", 6, []int{1, 2, 3}, nil),
	}

	plan, err := Build([]DivisionInput{top, lower})
	if err != nil {
		t.Fatalf("build plan: %v", err)
	}
	targets := plan.Targets()
	if targets["d2-A-t1"] != "d1-B" || targets["d2-A-t2"] != "d1-A" || targets["d2-A-t3"] != "d1-B" {
		t.Fatalf("unexpected promotion targets: %+v", targets)
	}
}

func TestBuild_Errors(t *testing.T) {
	top := DivisionInput{
		Division: division.Division{ID: "d1", Level: 1},
		Groups:   groupsOf("d1", "A"),
		Entries:  entriesOf("d1-A", 6, nil, []int{4, 5, 6}),
	}
	lower := DivisionInput{
		Division: division.Division{ID: "d2", Level: 2},
		Groups:   groupsOf("d2", "A"),
		Entries:  entriesOf("d2-A", 6, []int{1, 2}, nil),
	}

	_, err := Build([]DivisionInput{top, lower})
	if !errors.Is(err, ErrNotEnoughVacancies) || domainerr.KindOf(err) != domainerr.KindConfiguration {
		t.Fatalf("expected vacancy configuration error, got %v", err)
	}

	onlyTop := DivisionInput{
		Division: division.Division{ID: "d1", Level: 1},
		Groups:   groupsOf("d1", "A"),
		Entries:  entriesOf("d1-A", 4, []int{1}, nil),
	}
	if _, err := Build([]DivisionInput{onlyTop}); !errors.Is(err, ErrNoDivisionAbove) {
		t.Fatalf("expected no division above, got %v", err)
	}

	stray := DivisionInput{
		Division: division.Division{ID: "d1", Level: 1},
		Groups:   groupsOf("d1", "A"),
		Entries:  entriesOf("d9-A", 2, nil, nil),
	}
	if _, err := Build([]DivisionInput{stray}); !errors.Is(err, ErrUnknownGroup) {
		t.Fatalf("expected unknown group, got %v", err)
	}
}
