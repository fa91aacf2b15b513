package standing

import (
	"testing"
	"time"

	"github.com/riskibarqy/league-engine/internal/domain/match"
)

var kickoff = time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)

func played(id, home, away string, homeScore, awayScore int) match.Match {
	return match.Match{
		ID:          id,
		HomeTeamID:  home,
		AwayTeamID:  away,
		Status:      match.StatusFinished,
		HomeScore:   &homeScore,
		AwayScore:   &awayScore,
		ScheduledAt: kickoff.Add(time.Duration(len(id)) * time.Hour),
	}
}

func entrants(ids ...string) []Entrant {
	out := make([]Entrant, 0, len(ids))
	for _, id := range ids {
		out = append(out, Entrant{TeamID: id})
	}
	return out
}

func statsByTeam(items []Stats) map[string]Stats {
	out := make(map[string]Stats, len(items))
	for _, item := range items {
		out[item.TeamID] = item
	}
	return out
}

func TestCalculate_FoldsFinishedRegularMatches(t *testing.T) {
	playoff := played("m4", "a", "b", 3, 0)
	playoff.IsPlayoff = true
	playoff.PlayoffRound = match.RoundSemifinal

	pending := match.Match{ID: "m5", HomeTeamID: "a", AwayTeamID: "c", Status: match.StatusScheduled}

	matches := []match.Match{
		played("m1", "a", "b", 2, 1),
		played("m2", "b", "c", 1, 1),
		played("m3", "c", "a", 0, 4),
		playoff,
		pending,
		played("m6", "a", "outsider", 9, 0),
	}

	got := statsByTeam(Calculate(entrants("a", "b", "c", "d"), matches))
	if len(got) != 4 {
		t.Fatalf("expected every entrant in output, got %d rows", len(got))
	}

	a := got["a"]
	if a.Played != 2 || a.Won != 2 || a.Points != 6 || a.GoalsFor != 6 || a.GoalsAgainst != 1 {
		t.Fatalf("unexpected stats for a: %+v", a)
	}
	b := got["b"]
	if b.Played != 2 || b.Drawn != 1 || b.Lost != 1 || b.Points != 1 {
		t.Fatalf("unexpected stats for b: %+v", b)
	}
	d := got["d"]
	if d.Played != 0 || d.Points != 0 || d.Form != "" {
		t.Fatalf("team without matches must be zeroed, got %+v", d)
	}
}

func TestCalculate_PopularityAndForm(t *testing.T) {
	matches := []match.Match{
		played("m1", "a", "b", 1, 0),
		played("m22", "b", "a", 1, 0),
		played("m333", "a", "b", 1, 1),
		played("m4444", "b", "a", 0, 2),
		played("m55555", "a", "b", 3, 0),
		played("m666666", "b", "a", 0, 0),
	}

	got := statsByTeam(Calculate([]Entrant{{TeamID: "a", Popularity: 42}, {TeamID: "b"}}, matches))
	if got["a"].Popularity != 42 {
		t.Fatalf("expected popularity to be carried, got %d", got["a"].Popularity)
	}
	if got["a"].Form != "LDWWD" {
		t.Fatalf("unexpected form for a: %q", got["a"].Form)
	}
	if got["b"].Form != "WDLLD" {
		t.Fatalf("unexpected form for b: %q", got["b"].Form)
	}
}

func TestCalculate_PointsInvariant(t *testing.T) {
	teams := []string{"t1", "t2", "t3", "t4", "t5", "t6"}
	var matches []match.Match
	decisive, draws := 0, 0
	n := 0
	for i := range teams {
		for j := range teams {
			if i == j {
				continue
			}
			n++
			home, away := (i*7+j*3)%4, (i*2+j*5)%3
			if home == away {
				draws++
			} else {
				decisive++
			}
			matches = append(matches, played("m"+teams[i]+teams[j], teams[i], teams[j], home, away))
		}
	}

	table := Rank(Calculate(entrants(teams...), matches), matches, StableDraw{})
	total := 0
	seen := make(map[int]bool, len(table))
	for _, row := range table {
		total += row.Points
		seen[row.Position] = true
	}
	if want := 3*decisive + 2*draws; total != want {
		t.Fatalf("points invariant violated: got=%d want=%d over %d matches", total, want, n)
	}
	for pos := 1; pos <= len(teams); pos++ {
		if !seen[pos] {
			t.Fatalf("position %d missing from table", pos)
		}
	}
}
