package memory

import (
	"fmt"
	"time"

	"github.com/riskibarqy/league-engine/internal/domain/assignment"
	"github.com/riskibarqy/league-engine/internal/domain/division"
	"github.com/riskibarqy/league-engine/internal/domain/group"
	"github.com/riskibarqy/league-engine/internal/domain/match"
	"github.com/riskibarqy/league-engine/internal/domain/season"
	"github.com/riskibarqy/league-engine/internal/domain/team"
)

const (
	SeasonID2026 = "season-2026"

	DivisionIDPremier      = "div-premier"
	DivisionIDChampionship = "div-championship"
	DivisionIDLeagueOne    = "div-league-one"

	seedFinishedRounds = 2
)

var seedSeasonStart = time.Date(2026, time.January, 10, 15, 0, 0, 0, time.UTC)

func SeedSeasons() []season.Season {
	return []season.Season{
		{
			ID:       SeasonID2026,
			Name:     "2026",
			Active:   true,
			StartsOn: seedSeasonStart,
			EndsOn:   time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC),
		},
	}
}

func SeedDivisions() []division.Division {
	return []division.Division{
		{
			ID:              DivisionIDPremier,
			Name:            "Premier Division",
			Level:           1,
			GroupCount:      1,
			TeamsPerGroup:   6,
			RelegateSlots:   3,
			TournamentSlots: 1,
			PlayoffPolicy:   division.PolicyWinner,
		},
		{
			ID:                  DivisionIDChampionship,
			Name:                "Championship",
			Level:               2,
			GroupCount:          2,
			TeamsPerGroup:       6,
			PromoteSlots:        1,
			PromotePlayoffSlots: 2,
			RelegateSlots:       2,
			PlayoffPolicy:       division.PolicyWinner,
		},
		{
			ID:            DivisionIDLeagueOne,
			Name:          "League One",
			Level:         3,
			GroupCount:    4,
			TeamsPerGroup: 4,
			PromoteSlots:  1,
			PlayoffPolicy: division.PolicyWinner,
		},
	}
}

func SeedGroups() []group.Group {
	out := make([]group.Group, 0, 7)
	for _, div := range SeedDivisions() {
		for i := 0; i < div.GroupCount; i++ {
			code := string(rune('A' + i))
			out = append(out, group.Group{
				ID:         div.ID + "-" + code,
				DivisionID: div.ID,
				Code:       code,
			})
		}
	}
	return out
}

var seedTeamNames = []struct {
	name  string
	short string
}{
	{"Northbridge Rovers", "NBR"}, {"Harbour City", "HBC"}, {"Eastfield United", "EFU"},
	{"Kingsmoor Athletic", "KMA"}, {"Redcliffe Town", "RCT"}, {"Ashford Wanderers", "ASW"},
	{"Millbrook", "MLB"}, {"Southgate Albion", "SGA"}, {"Westholme City", "WHC"},
	{"Oakridge United", "OKU"}, {"Stonehaven", "STH"}, {"Lakeside Rangers", "LSR"},
	{"Brackenfield", "BRF"}, {"Copperton Town", "CPT"}, {"Greywater", "GRW"},
	{"Hollin Vale", "HLV"}, {"Ironbridge", "IRB"}, {"Juniper Park", "JNP"},
	{"Kestrel Heath", "KSH"}, {"Longmere", "LGM"}, {"Marlow Forest", "MLF"},
	{"Newhaven Rovers", "NHR"}, {"Orchard Lane", "ORL"}, {"Pinecrest", "PNC"},
	{"Queensway", "QSW"}, {"Riverside Rangers", "RVR"}, {"Saltmarsh", "SLM"},
	{"Thornbury", "THB"}, {"Underhill", "UDH"}, {"Valeport", "VLP"},
	{"Whitecross", "WTC"}, {"Yarrow Town", "YRT"}, {"Zephyr Athletic", "ZPA"},
	{"Alderley Wood", "ALW"},
}

func SeedTeams() []team.Team {
	out := make([]team.Team, 0, len(seedTeamNames))
	for i, item := range seedTeamNames {
		out = append(out, team.Team{
			ID:         fmt.Sprintf("team-%02d", i+1),
			Name:       item.name,
			Short:      item.short,
			Popularity: 100 - i*2,
		})
	}
	return out
}

// SeedAssignments places teams into groups top division first.
func SeedAssignments() []assignment.Assignment {
	teams := SeedTeams()
	sizes := make(map[string]int)
	for _, div := range SeedDivisions() {
		sizes[div.ID] = div.TeamsPerGroup
	}

	out := make([]assignment.Assignment, 0, len(teams))
	next := 0
	for _, item := range SeedGroups() {
		for i := 0; i < sizes[item.DivisionID] && next < len(teams); i++ {
			out = append(out, assignment.Assignment{
				TeamID:   teams[next].ID,
				GroupID:  item.ID,
				SeasonID: SeasonID2026,
			})
			next++
		}
	}
	return out
}

// SeedMatches builds a double round robin per group, one round a week. The
// first rounds already carry results.
func SeedMatches() []match.Match {
	teamsByGroup := make(map[string][]string)
	for _, item := range SeedAssignments() {
		teamsByGroup[item.GroupID] = append(teamsByGroup[item.GroupID], item.TeamID)
	}

	out := make([]match.Match, 0)
	for _, item := range SeedGroups() {
		rounds := doubleRoundRobin(teamsByGroup[item.ID])
		for r, pairs := range rounds {
			for i, pair := range pairs {
				m := match.Match{
					ID:          fmt.Sprintf("%s-r%02d-m%d", item.ID, r+1, i+1),
					GroupID:     item.ID,
					SeasonID:    SeasonID2026,
					HomeTeamID:  pair[0],
					AwayTeamID:  pair[1],
					ScheduledAt: seedSeasonStart.AddDate(0, 0, 7*r),
					Status:      match.StatusScheduled,
				}
				if r < seedFinishedRounds {
					home := (i + r*2) % 4
					away := (i*3 + r) % 3
					finishedAt := m.ScheduledAt.Add(2 * time.Hour)
					m.Status = match.StatusFinished
					m.HomeScore = &home
					m.AwayScore = &away
					m.FinishedAt = &finishedAt
				}
				out = append(out, m)
			}
		}
	}
	return out
}

// doubleRoundRobin pairs every team with every other twice using the circle
// method, swapping home and away in the second half.
func doubleRoundRobin(teamIDs []string) [][][2]string {
	ids := append([]string(nil), teamIDs...)
	if len(ids)%2 == 1 {
		ids = append(ids, "")
	}
	n := len(ids)
	if n < 2 {
		return nil
	}

	first := make([][][2]string, 0, n-1)
	for r := 0; r < n-1; r++ {
		pairs := make([][2]string, 0, n/2)
		for i := 0; i < n/2; i++ {
			home, away := ids[i], ids[n-1-i]
			if home == "" || away == "" {
				continue
			}
			if r%2 == 1 {
				home, away = away, home
			}
			pairs = append(pairs, [2]string{home, away})
		}
		first = append(first, pairs)

		last := ids[n-1]
		copy(ids[2:], ids[1:n-1])
		ids[1] = last
	}

	out := make([][][2]string, 0, 2*len(first))
	out = append(out, first...)
	for _, pairs := range first {
		reversed := make([][2]string, 0, len(pairs))
		for _, pair := range pairs {
			reversed = append(reversed, [2]string{pair[1], pair[0]})
		}
		out = append(out, reversed)
	}
	return out
}
