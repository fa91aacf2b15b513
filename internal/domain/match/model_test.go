package match

import (
	"testing"
	"time"
)

func TestRoundProgression(t *testing.T) {
	next, ok := RoundQuarterfinal.Next()
	if !ok || next != RoundSemifinal {
		t.Fatalf("quarterfinal must lead to semifinal, got %q", next)
	}
	next, ok = RoundSemifinal.Next()
	if !ok || next != RoundFinal {
		t.Fatalf("semifinal must lead to final, got %q", next)
	}
	if _, ok := RoundFinal.Next(); ok {
		t.Fatalf("nothing follows the final")
	}
	if !RoundQuarterfinal.Before(RoundFinal) || RoundFinal.Before(RoundSemifinal) {
		t.Fatalf("unexpected round ordering")
	}
	if ParseRound(" semifinal ") != RoundSemifinal || ParseRound("") != RoundNone {
		t.Fatalf("unexpected round parsing")
	}
}

func TestMatchPendingAndTable(t *testing.T) {
	home, away := 1, 0
	finished := Match{Status: "finished", HomeScore: &home, AwayScore: &away}
	if !finished.IsFinished() || finished.IsPending() || !finished.CountsForTable() {
		t.Fatalf("unexpected state for finished match: %+v", finished)
	}

	missingScore := Match{Status: StatusFinished}
	if missingScore.IsFinished() {
		t.Fatalf("finished status without a score is not a result")
	}

	cancelled := Match{Status: StatusCancelled}
	postponed := Match{Status: StatusPostponed}
	if cancelled.IsPending() || !postponed.IsPending() {
		t.Fatalf("cancelled fixtures do not block, postponed ones do")
	}

	playoff := finished
	playoff.IsPlayoff = true
	if playoff.CountsForTable() {
		t.Fatalf("playoff matches never count for the table")
	}

	items := []Match{finished, cancelled, postponed, playoff}
	if CountPending(items) != 1 || len(Regular(items)) != 3 || len(Playoffs(items)) != 1 {
		t.Fatalf("unexpected helpers result")
	}

	early := Match{ID: "b", ScheduledAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	late := Match{ID: "a", ScheduledAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)}
	sorted := []Match{late, early}
	SortChronological(sorted)
	if sorted[0].ID != "b" || !LatestScheduled(sorted).Equal(late.ScheduledAt) {
		t.Fatalf("unexpected chronological helpers: %+v", sorted)
	}
}
