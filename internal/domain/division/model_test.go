package division

import (
	"errors"
	"testing"

	"github.com/riskibarqy/league-engine/internal/domain/domainerr"
)

func TestDivisionValidate(t *testing.T) {
	valid := Division{
		ID:                  "div-2",
		Level:               2,
		GroupCount:          1,
		TeamsPerGroup:       20,
		PromoteSlots:        2,
		PromotePlayoffSlots: 4,
		RelegateSlots:       3,
	}

	tests := []struct {
		name    string
		mutate  func(*Division)
		wantErr bool
	}{
		{name: "valid", mutate: func(_ *Division) {}},
		{name: "missing id", mutate: func(d *Division) { d.ID = " " }, wantErr: true},
		{name: "level zero", mutate: func(d *Division) { d.Level = 0 }, wantErr: true},
		{name: "no groups", mutate: func(d *Division) { d.GroupCount = 0 }, wantErr: true},
		{name: "negative slots", mutate: func(d *Division) { d.RelegateSlots = -1 }, wantErr: true},
		{name: "bands overflow", mutate: func(d *Division) { d.TeamsPerGroup = 8 }, wantErr: true},
		{name: "two groups seeded band", mutate: crossGroup(2, 1, 2)},
		{name: "two groups band starts at first place", mutate: crossGroup(2, 0, 2), wantErr: true},
		{name: "four groups seeded band", mutate: crossGroup(4, 1, 1)},
		{name: "four groups two qualifiers", mutate: crossGroup(4, 1, 2), wantErr: true},
		{name: "eight groups band shifted", mutate: crossGroup(8, 2, 1), wantErr: true},
		{name: "three groups left to seeding", mutate: crossGroup(3, 0, 1)},
		{name: "multi group without playoff", mutate: crossGroup(4, 2, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			item := valid
			tc.mutate(&item)
			err := item.Validate()
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Fatalf("expected ErrInvalidConfig, got %v", err)
				}
				if domainerr.KindOf(err) != domainerr.KindConfiguration {
					t.Fatalf("expected configuration kind, got %q", domainerr.KindOf(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestHasPlayoffs(t *testing.T) {
	if (Division{Level: 1, PromotePlayoffSlots: 4}).HasPlayoffs() {
		t.Fatalf("top division must never run a promotion playoff")
	}
	if !(Division{Level: 2, PromotePlayoffSlots: 4}).HasPlayoffs() {
		t.Fatalf("expected playoff for level 2 with playoff slots")
	}
}

func TestBottomLevelAndPolicy(t *testing.T) {
	items := []Division{{ID: "c", Level: 3}, {ID: "a", Level: 1}, {ID: "b", Level: 2}}
	if got := BottomLevel(items); got != 3 {
		t.Fatalf("unexpected bottom level: %d", got)
	}
	SortByLevel(items)
	if items[0].ID != "a" || items[2].ID != "c" {
		t.Fatalf("unexpected order: %+v", items)
	}
	if NormalizePolicy(" finalists ") != PolicyFinalists {
		t.Fatalf("expected finalists policy")
	}
	if NormalizePolicy("") != PolicyWinner {
		t.Fatalf("expected winner policy by default")
	}
}

func crossGroup(groups, promote, playoff int) func(*Division) {
	return func(d *Division) {
		d.GroupCount = groups
		d.PromoteSlots = promote
		d.PromotePlayoffSlots = playoff
	}
}
