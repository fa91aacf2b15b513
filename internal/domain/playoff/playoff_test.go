package playoff

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/riskibarqy/league-engine/internal/domain/division"
	"github.com/riskibarqy/league-engine/internal/domain/domainerr"
	"github.com/riskibarqy/league-engine/internal/domain/group"
	"github.com/riskibarqy/league-engine/internal/domain/match"
	"github.com/riskibarqy/league-engine/internal/domain/standing"
)

func groupTable(code string, size int) GroupTable {
	rows := make([]standing.Standing, 0, size)
	for i := 1; i <= size; i++ {
		rows = append(rows, standing.Standing{TeamID: fmt.Sprintf("%s%d", code, i), Position: i})
	}
	return GroupTable{Group: group.Group{ID: "g-" + code, Code: code}, Standings: rows}
}

func pairs(items []Pairing) [][2]string {
	out := make([][2]string, 0, len(items))
	for _, item := range items {
		out = append(out, [2]string{item.HomeTeamID, item.AwayTeamID})
	}
	return out
}

func playoffMatch(id string, round match.Round, slot int, home, away string, homeScore, awayScore *int) match.Match {
	status := match.StatusScheduled
	if homeScore != nil && awayScore != nil {
		status = match.StatusFinished
	}
	return match.Match{
		ID:           id,
		HomeTeamID:   home,
		AwayTeamID:   away,
		Status:       status,
		HomeScore:    homeScore,
		AwayScore:    awayScore,
		IsPlayoff:    true,
		PlayoffRound: round,
		PlayoffSlot:  slot,
	}
}

func score(v int) *int {
	return &v
}

func TestSeed_SingleGroupBestVersusWorst(t *testing.T) {
	div := division.Division{ID: "d2", Level: 2, GroupCount: 1, PromoteSlots: 2, PromotePlayoffSlots: 4}

	got, err := Seed(div, []GroupTable{groupTable("A", 12)})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	want := [][2]string{{"A3", "A6"}, {"A4", "A5"}}
	if !reflect.DeepEqual(pairs(got), want) {
		t.Fatalf("unexpected pairs: got=%v want=%v", pairs(got), want)
	}
	for i, item := range got {
		if item.Round != match.RoundSemifinal || item.Slot != i {
			t.Fatalf("unexpected round or slot: %+v", item)
		}
	}
}

func TestSeed_SingleGroupEightQualifiers(t *testing.T) {
	div := division.Division{ID: "d2", Level: 2, GroupCount: 1, PromotePlayoffSlots: 8}

	got, err := Seed(div, []GroupTable{groupTable("A", 10)})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	want := [][2]string{{"A1", "A8"}, {"A4", "A5"}, {"A2", "A7"}, {"A3", "A6"}}
	if !reflect.DeepEqual(pairs(got), want) {
		t.Fatalf("unexpected pairs: got=%v want=%v", pairs(got), want)
	}
	if got[0].Round != match.RoundQuarterfinal {
		t.Fatalf("expected quarterfinals, got %s", got[0].Round)
	}
}

func TestSeed_CrossGroupRules(t *testing.T) {
	tests := []struct {
		name   string
		groups []string
		round  match.Round
		want   [][2]string
	}{
		{name: "two groups", groups: []string{"B", "A"}, round: match.RoundSemifinal, want: [][2]string{{"A2", "B3"}, {"B2", "A3"}}},
		{name: "four groups", groups: []string{"A", "B", "C", "D"}, round: match.RoundSemifinal, want: [][2]string{{"A2", "D2"}, {"B2", "C2"}}},
		{
			name:   "eight groups",
			groups: []string{"H", "G", "F", "E", "D", "C", "B", "A"},
			round:  match.RoundQuarterfinal,
			want:   [][2]string{{"A2", "H2"}, {"B2", "G2"}, {"C2", "F2"}, {"D2", "E2"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tables := make([]GroupTable, 0, len(tc.groups))
			for _, code := range tc.groups {
				tables = append(tables, groupTable(code, 4))
			}
			first, last, ok := division.CrossGroupBand(len(tc.groups))
			if !ok {
				t.Fatalf("no seeded band for %d groups", len(tc.groups))
			}
			div := division.Division{ID: "d", Level: 2, GroupCount: len(tc.groups), PromoteSlots: first - 1, PromotePlayoffSlots: last - first + 1}
			if err := div.Validate(); err != nil {
				t.Fatalf("seeded band must validate: %v", err)
			}

			got, err := Seed(div, tables)
			if err != nil {
				t.Fatalf("seed: %v", err)
			}
			if !reflect.DeepEqual(pairs(got), tc.want) {
				t.Fatalf("unexpected pairs: got=%v want=%v", pairs(got), tc.want)
			}
			for _, item := range got {
				if item.Round != tc.round {
					t.Fatalf("unexpected round: %s", item.Round)
				}
			}
		})
	}
}

func TestSeed_Errors(t *testing.T) {
	threeGroups := []GroupTable{groupTable("A", 4), groupTable("B", 4), groupTable("C", 4)}
	_, err := Seed(division.Division{ID: "d", Level: 2, GroupCount: 3, PromotePlayoffSlots: 1}, threeGroups)
	if !errors.Is(err, ErrUnsupportedGroupCount) || domainerr.KindOf(err) != domainerr.KindConfiguration {
		t.Fatalf("expected configuration error, got %v", err)
	}

	_, err = Seed(division.Division{ID: "d", Level: 2, GroupCount: 1, PromoteSlots: 2, PromotePlayoffSlots: 4}, []GroupTable{groupTable("A", 5)})
	if !errors.Is(err, ErrInsufficientTeams) || domainerr.KindOf(err) != domainerr.KindInsufficientData {
		t.Fatalf("expected insufficient data, got %v", err)
	}

	_, err = Seed(division.Division{ID: "d", Level: 2, GroupCount: 1, PromotePlayoffSlots: 3}, []GroupTable{groupTable("A", 8)})
	if !errors.Is(err, ErrUnsupportedBracketSize) {
		t.Fatalf("expected unsupported bracket size, got %v", err)
	}
}

func TestNextRound_AdvancesOnlyWhenRoundComplete(t *testing.T) {
	semis := []match.Match{
		playoffMatch("sf1", match.RoundSemifinal, 0, "a", "d", score(2), score(1)),
		playoffMatch("sf2", match.RoundSemifinal, 1, "b", "c", nil, nil),
	}
	got, err := NextRound(NewBracket(semis))
	if err != nil || len(got) != 0 {
		t.Fatalf("expected no fixtures while round is running, got %v err=%v", got, err)
	}

	semis[1] = playoffMatch("sf2", match.RoundSemifinal, 1, "b", "c", score(0), score(3))
	got, err = NextRound(NewBracket(semis))
	if err != nil {
		t.Fatalf("next round: %v", err)
	}
	if len(got) != 1 || got[0].Round != match.RoundFinal || got[0].HomeTeamID != "a" || got[0].AwayTeamID != "c" {
		t.Fatalf("unexpected final: %+v", got)
	}

	final := playoffMatch("f", match.RoundFinal, 0, "a", "c", score(1), score(0))
	got, err = NextRound(NewBracket(append(semis, final)))
	if err != nil || len(got) != 0 {
		t.Fatalf("nothing follows the final, got %v err=%v", got, err)
	}
}

func TestNextRound_QuarterfinalsFeedSemifinalsInSlotOrder(t *testing.T) {
	quarters := []match.Match{
		playoffMatch("q4", match.RoundQuarterfinal, 3, "D", "E", score(0), score(1)),
		playoffMatch("q1", match.RoundQuarterfinal, 0, "A", "H", score(1), score(0)),
		playoffMatch("q3", match.RoundQuarterfinal, 2, "C", "F", score(2), score(0)),
		playoffMatch("q2", match.RoundQuarterfinal, 1, "B", "G", score(1), score(2)),
	}

	got, err := NextRound(NewBracket(quarters))
	if err != nil {
		t.Fatalf("next round: %v", err)
	}
	want := [][2]string{{"A", "G"}, {"C", "E"}}
	if !reflect.DeepEqual(pairs(got), want) {
		t.Fatalf("unexpected semifinals: got=%v want=%v", pairs(got), want)
	}
}

func TestNextRound_DrawIsInconsistentState(t *testing.T) {
	semis := []match.Match{
		playoffMatch("sf1", match.RoundSemifinal, 0, "a", "d", score(1), score(1)),
		playoffMatch("sf2", match.RoundSemifinal, 1, "b", "c", score(2), score(0)),
	}
	_, err := NextRound(NewBracket(semis))
	if !errors.Is(err, ErrPlayoffDraw) || domainerr.KindOf(err) != domainerr.KindInconsistentState {
		t.Fatalf("expected playoff draw error, got %v", err)
	}
}

func TestPromoted_Policies(t *testing.T) {
	bracket := NewBracket([]match.Match{
		playoffMatch("q1", match.RoundQuarterfinal, 0, "A", "H", score(1), score(0)),
		playoffMatch("q2", match.RoundQuarterfinal, 1, "B", "G", score(0), score(2)),
		playoffMatch("q3", match.RoundQuarterfinal, 2, "C", "F", score(3), score(1)),
		playoffMatch("q4", match.RoundQuarterfinal, 3, "D", "E", score(2), score(0)),
		playoffMatch("s1", match.RoundSemifinal, 0, "A", "G", score(2), score(1)),
		playoffMatch("s2", match.RoundSemifinal, 1, "C", "D", score(0), score(1)),
		playoffMatch("f", match.RoundFinal, 0, "A", "D", score(0), score(2)),
	})

	tests := []struct {
		policy division.PlayoffPolicy
		want   []string
	}{
		{policy: division.PolicyWinner, want: []string{"D"}},
		{policy: division.PolicyFinalists, want: []string{"A", "D"}},
		{policy: division.PolicyOpeningRoundWinners, want: []string{"A", "G", "C", "D"}},
	}
	for _, tc := range tests {
		t.Run(string(tc.policy), func(t *testing.T) {
			got, err := Promoted(tc.policy, bracket)
			if err != nil {
				t.Fatalf("promoted: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("unexpected promoted teams: got=%v want=%v", got, tc.want)
			}
		})
	}

	if !bracket.FinalFinished() || bracket.Size() != 7 || len(bracket.TeamIDs()) != 8 {
		t.Fatalf("unexpected bracket summary: final=%v size=%d teams=%d", bracket.FinalFinished(), bracket.Size(), len(bracket.TeamIDs()))
	}
}

func TestPromoted_WinnerRequiresFinishedFinal(t *testing.T) {
	bracket := NewBracket([]match.Match{
		playoffMatch("f", match.RoundFinal, 0, "a", "b", nil, nil),
	})
	if _, err := Promoted(division.PolicyWinner, bracket); !errors.Is(err, ErrMatchNotFinished) {
		t.Fatalf("expected unfinished final error, got %v", err)
	}
	if _, err := Promoted(division.PolicyWinner, NewBracket(nil)); !errors.Is(err, ErrBracketUnresolved) {
		t.Fatalf("expected unresolved bracket error, got %v", err)
	}
}
