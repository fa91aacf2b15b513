package standing

import "github.com/riskibarqy/league-engine/internal/domain/match"

const (
	PointsWin  = 3
	PointsDraw = 1
	PointsLoss = 0

	formLength = 5
)

// Entrant is a team assigned to the group being tabulated.
type Entrant struct {
	TeamID     string
	Popularity int
}

// Stats is the unranked aggregate of one team's regular matches.
type Stats struct {
	TeamID       string
	Popularity   int
	Played       int
	Won          int
	Drawn        int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
	Points       int
	Form         string
}

func (s Stats) GoalDifference() int {
	return s.GoalsFor - s.GoalsAgainst
}

// Calculate folds finished regular matches into per-team stats.
// Every entrant gets a row even without a played match; matches involving
// a team that is not an entrant are ignored.
func Calculate(entrants []Entrant, matches []match.Match) []Stats {
	out := make([]Stats, len(entrants))
	index := make(map[string]int, len(entrants))
	for i, entrant := range entrants {
		out[i] = Stats{TeamID: entrant.TeamID, Popularity: entrant.Popularity}
		index[entrant.TeamID] = i
	}

	counted := make([]match.Match, 0, len(matches))
	for _, item := range matches {
		if !item.CountsForTable() {
			continue
		}
		if _, ok := index[item.HomeTeamID]; !ok {
			continue
		}
		if _, ok := index[item.AwayTeamID]; !ok {
			continue
		}
		counted = append(counted, item)
	}
	match.SortChronological(counted)

	forms := make([][]byte, len(entrants))
	for _, item := range counted {
		home, away := *item.HomeScore, *item.AwayScore
		hi, ai := index[item.HomeTeamID], index[item.AwayTeamID]
		forms[hi] = append(forms[hi], fold(&out[hi], home, away))
		forms[ai] = append(forms[ai], fold(&out[ai], away, home))
	}

	for i := range out {
		form := forms[i]
		if len(form) > formLength {
			form = form[len(form)-formLength:]
		}
		out[i].Form = string(form)
	}

	return out
}

func fold(s *Stats, scored, conceded int) byte {
	s.Played++
	s.GoalsFor += scored
	s.GoalsAgainst += conceded
	switch {
	case scored > conceded:
		s.Won++
		s.Points += PointsWin
		return 'W'
	case scored == conceded:
		s.Drawn++
		s.Points += PointsDraw
		return 'D'
	default:
		s.Lost++
		s.Points += PointsLoss
		return 'L'
	}
}
