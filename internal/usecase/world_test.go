package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/league-engine/internal/domain/assignment"
	"github.com/riskibarqy/league-engine/internal/domain/division"
	"github.com/riskibarqy/league-engine/internal/domain/group"
	"github.com/riskibarqy/league-engine/internal/domain/match"
	"github.com/riskibarqy/league-engine/internal/domain/season"
	"github.com/riskibarqy/league-engine/internal/domain/standing"
	"github.com/riskibarqy/league-engine/internal/domain/team"
	"github.com/riskibarqy/league-engine/internal/infrastructure/repository/memory"
)

var worldKickoff = time.Date(2026, time.February, 1, 15, 0, 0, 0, time.UTC)

type sequenceIDs struct {
	mu   sync.Mutex
	next int
}

func (g *sequenceIDs) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.next++
	return fmt.Sprintf("po-%03d", g.next), nil
}

type worldSeed struct {
	seasons     []season.Season
	divisions   []division.Division
	groups      []group.Group
	teams       []team.Team
	assignments []assignment.Assignment
	matches     []match.Match
	workers     int
}

type testWorld struct {
	seasons     *memory.SeasonRepository
	divisions   *memory.DivisionRepository
	groups      *memory.GroupRepository
	assignments *memory.AssignmentRepository
	matches     *memory.MatchRepository
	standings   *memory.StandingRepository

	standingSvc *StandingService
	playoffSvc  *PlayoffService
	matchSvc    *MatchService
	seasonSvc   *SeasonTransitionService
}

func newTestWorld(seed worldSeed) *testWorld {
	w := &testWorld{
		seasons:     memory.NewSeasonRepository(seed.seasons),
		divisions:   memory.NewDivisionRepository(seed.divisions),
		groups:      memory.NewGroupRepository(seed.groups),
		assignments: memory.NewAssignmentRepository(seed.assignments),
		matches:     memory.NewMatchRepository(seed.matches),
		standings:   memory.NewStandingRepository(),
	}
	teams := memory.NewTeamRepository(seed.teams)

	w.standingSvc = NewStandingService(w.seasons, w.divisions, w.groups, teams, w.assignments, w.matches, w.standings, standing.StableDraw{}, nil)
	w.playoffSvc = NewPlayoffService(w.divisions, w.groups, w.assignments, w.matches, w.standings, &sequenceIDs{}, PlayoffConfig{}, nil)
	w.matchSvc = NewMatchService(w.seasons, w.matches, nil)
	w.seasonSvc = NewSeasonTransitionService(
		w.seasons,
		w.divisions,
		w.groups,
		w.assignments,
		w.matches,
		w.standings,
		w.standingSvc,
		w.playoffSvc,
		SeasonTransitionConfig{DivisionWorkers: seed.workers},
		nil,
	)
	return w
}

func (w *testWorld) flags(t *testing.T, seasonID, groupID string) map[string]assignment.Assignment {
	t.Helper()

	items, err := w.assignments.ListByGroup(context.Background(), seasonID, groupID)
	if err != nil {
		t.Fatalf("list assignments: %v", err)
	}
	return assignment.ByTeam(items)
}

func (w *testWorld) bracket(t *testing.T, seasonID, divisionID string) []match.Match {
	t.Helper()

	items, err := w.playoffSvc.Bracket(context.Background(), seasonID, divisionID)
	if err != nil {
		t.Fatalf("load bracket: %v", err)
	}
	return items
}

func (w *testWorld) record(t *testing.T, matchID string, home, away int) {
	t.Helper()

	if _, err := w.matchSvc.RecordResult(context.Background(), RecordResultInput{MatchID: matchID, HomeScore: home, AwayScore: away}); err != nil {
		t.Fatalf("record result match=%s: %v", matchID, err)
	}
}

// finishPending gives every pending fixture of the groups a 1-0 win to the team with the lower id.
func (w *testWorld) finishPending(t *testing.T, seasonID string, groupIDs []string) {
	t.Helper()

	items, err := w.matches.ListByGroups(context.Background(), seasonID, groupIDs)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	for _, item := range items {
		if !item.IsPending() {
			continue
		}
		if item.HomeTeamID < item.AwayTeamID {
			w.record(t, item.ID, 1, 0)
		} else {
			w.record(t, item.ID, 0, 1)
		}
	}
}

func fixtureAt(t *testing.T, items []match.Match, round match.Round, slot int) match.Match {
	t.Helper()

	for _, item := range items {
		if item.PlayoffRound == round && item.PlayoffSlot == slot {
			return item
		}
	}
	t.Fatalf("no %s fixture in slot %d among %d playoff fixtures", round, slot, len(items))
	return match.Match{}
}

func countRound(items []match.Match, round match.Round) int {
	count := 0
	for _, item := range items {
		if item.PlayoffRound == round {
			count++
		}
	}
	return count
}

// roundRobinGroup returns teams t01..tNN and a finished single round robin in
// which the lower numbered team always wins 1-0.
func roundRobinGroup(prefix, seasonID, groupID string, size int) ([]team.Team, []assignment.Assignment, []match.Match) {
	teams := make([]team.Team, 0, size)
	assignments := make([]assignment.Assignment, 0, size)
	for i := 1; i <= size; i++ {
		teamID := fmt.Sprintf("%s%02d", prefix, i)
		teams = append(teams, team.Team{ID: teamID, Name: "Team " + teamID})
		assignments = append(assignments, assignment.Assignment{TeamID: teamID, GroupID: groupID, SeasonID: seasonID})
	}

	matches := make([]match.Match, 0, size*(size-1)/2)
	slot := 0
	for i := 0; i < size; i++ {
		for j := i + 1; j < size; j++ {
			home, away := 1, 0
			matches = append(matches, match.Match{
				ID:          fmt.Sprintf("%s-%s-%02d-%02d", groupID, prefix, i+1, j+1),
				GroupID:     groupID,
				SeasonID:    seasonID,
				HomeTeamID:  teams[i].ID,
				AwayTeamID:  teams[j].ID,
				ScheduledAt: worldKickoff.Add(time.Duration(slot) * time.Hour),
				Status:      match.StatusFinished,
				HomeScore:   &home,
				AwayScore:   &away,
			})
			slot++
		}
	}
	return teams, assignments, matches
}
