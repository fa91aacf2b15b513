package standing

import (
	"reflect"
	"sort"
	"testing"

	"github.com/riskibarqy/league-engine/internal/domain/match"
)

func order(table []Standing) []string {
	out := make([]string, 0, len(table))
	for _, row := range table {
		out = append(out, row.TeamID)
	}
	return out
}

func TestRank_TwoTeamHeadToHeadBeatsGoalDifference(t *testing.T) {
	matches := []match.Match{
		played("m1", "a", "b", 1, 0),
		played("m2", "c", "a", 1, 0),
		played("m3", "b", "d", 4, 0),
		played("m4", "c", "d", 1, 0),
	}

	table := Rank(Calculate(entrants("a", "b", "c", "d"), matches), matches, StableDraw{})
	if got, want := order(table), []string{"c", "a", "b", "d"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected order: got=%v want=%v", got, want)
	}
	if table[2].GoalDifference <= table[1].GoalDifference {
		t.Fatalf("fixture expects b to have the better overall goal difference: %+v", table)
	}
}

func TestRank_ThreeTeamMiniLeagueOverridesOverallTable(t *testing.T) {
	matches := []match.Match{
		played("m1", "a", "b", 1, 0),
		played("m2", "b", "c", 1, 0),
		played("m3", "c", "a", 3, 0),
		played("m4", "a", "d", 6, 0),
		played("m5", "b", "d", 3, 0),
		played("m6", "c", "d", 1, 0),
	}

	table := Rank(Calculate(entrants("a", "b", "c", "d"), matches), matches, StableDraw{})
	if got, want := order(table), []string{"c", "b", "a", "d"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected order: got=%v want=%v", got, want)
	}
	for i, row := range table[:3] {
		if row.Points != 6 {
			t.Fatalf("row %d expected 6 points, got %+v", i, row)
		}
	}
	if table[2].GoalDifference <= table[0].GoalDifference {
		t.Fatalf("fixture expects a to lead the overall goal difference: %+v", table)
	}
}

func TestRank_OverallCriteriaThenPopularityThenDraw(t *testing.T) {
	stats := []Stats{
		{TeamID: "z", Points: 4, GoalsFor: 3, GoalsAgainst: 3, Popularity: 1},
		{TeamID: "y", Points: 4, GoalsFor: 5, GoalsAgainst: 4, Popularity: 1},
		{TeamID: "x", Points: 4, GoalsFor: 4, GoalsAgainst: 3, Popularity: 1},
		{TeamID: "w", Points: 4, GoalsFor: 3, GoalsAgainst: 3, Popularity: 9},
		{TeamID: "v", Points: 4, GoalsFor: 3, GoalsAgainst: 3, Popularity: 1},
	}

	table := Rank(stats, nil, StableDraw{})
	want := []string{"y", "x", "w", "v", "z"}
	if got := order(table); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected order: got=%v want=%v", got, want)
	}
	for i, row := range table {
		if row.Position != i+1 {
			t.Fatalf("positions must be dense, got %d at index %d", row.Position, i)
		}
	}
}

func TestRank_IsIdempotentWithStableDraw(t *testing.T) {
	matches := []match.Match{
		played("m1", "a", "b", 1, 1),
		played("m2", "c", "d", 2, 2),
	}
	stats := Calculate(entrants("d", "c", "b", "a"), matches)

	first := Rank(stats, matches, StableDraw{})
	second := Rank(stats, matches, StableDraw{})
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical tables, got %+v and %+v", first, second)
	}
	if got, want := order(first), []string{"c", "d", "a", "b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected order: got=%v want=%v", got, want)
	}
}

type reverseDraw struct{}

func (reverseDraw) Draw(teamIDs []string) []string {
	out := StableDraw{}.Draw(teamIDs)
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out[:len(out)-1]
}

func TestRank_FallbackIsPluggableAndCannotDropTeams(t *testing.T) {
	stats := []Stats{{TeamID: "a"}, {TeamID: "b"}, {TeamID: "c"}}

	table := Rank(stats, nil, reverseDraw{})
	if got, want := order(table), []string{"c", "b", "a"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected order: got=%v want=%v", got, want)
	}
}

func TestRandomDraw_ReturnsPermutation(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}
	got := RandomDraw{}.Draw(ids)
	sort.Strings(got)
	if !reflect.DeepEqual(got, ids) {
		t.Fatalf("expected permutation of input, got %v", got)
	}
}
