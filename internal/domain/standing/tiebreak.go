package standing

import (
	"math/rand/v2"
	"slices"
	"sort"

	"github.com/riskibarqy/league-engine/internal/domain/match"
)

// DrawFallback orders teams that every deterministic criterion leaves level.
// The returned slice must be a permutation of teamIDs.
type DrawFallback interface {
	Draw(teamIDs []string) []string
}

// RandomDraw settles exact ties by lot.
type RandomDraw struct{}

func (RandomDraw) Draw(teamIDs []string) []string {
	out := slices.Clone(teamIDs)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// StableDraw settles exact ties by ascending team id.
type StableDraw struct{}

func (StableDraw) Draw(teamIDs []string) []string {
	out := slices.Clone(teamIDs)
	sort.Strings(out)
	return out
}

type tieKey [3]int

func compareKeys(a, b tieKey) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] > b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Rank orders stats into a dense 1..N table. Teams level on points are
// separated by a mini-league over their mutual matches (for two teams this is
// plain head-to-head), then by overall goal difference, overall goals for,
// popularity and finally the draw fallback. A nil fallback draws by team id.
func Rank(stats []Stats, matches []match.Match, fallback DrawFallback) []Standing {
	if fallback == nil {
		fallback = StableDraw{}
	}

	rows := slices.Clone(stats)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].TeamID < rows[j].TeamID
	})

	counted := make([]match.Match, 0, len(matches))
	for _, item := range matches {
		if item.CountsForTable() {
			counted = append(counted, item)
		}
	}

	ordered := make([]Stats, 0, len(rows))
	for start := 0; start < len(rows); {
		end := start + 1
		for end < len(rows) && rows[end].Points == rows[start].Points {
			end++
		}
		ordered = append(ordered, resolveTie(rows[start:end], counted, fallback)...)
		start = end
	}

	out := make([]Standing, 0, len(ordered))
	for i, row := range ordered {
		out = append(out, Standing{
			TeamID:         row.TeamID,
			Position:       i + 1,
			Played:         row.Played,
			Won:            row.Won,
			Drawn:          row.Drawn,
			Lost:           row.Lost,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDifference: row.GoalDifference(),
			Points:         row.Points,
			Form:           row.Form,
		})
	}
	return out
}

func resolveTie(tied []Stats, matches []match.Match, fallback DrawFallback) []Stats {
	if len(tied) == 1 {
		return []Stats{tied[0]}
	}

	mini := miniLeague(tied, matches)
	miniKey := func(s Stats) tieKey {
		record := mini[s.TeamID]
		return tieKey{record.points, record.goalsFor - record.goalsAgainst, record.goalsFor}
	}
	overallKey := func(s Stats) tieKey {
		return tieKey{s.GoalDifference(), s.GoalsFor, s.Popularity}
	}

	out := make([]Stats, 0, len(tied))
	for _, bucket := range partition(tied, miniKey) {
		for _, inner := range partition(bucket, overallKey) {
			out = append(out, draw(inner, fallback)...)
		}
	}
	return out
}

type miniRecord struct {
	points       int
	goalsFor     int
	goalsAgainst int
}

func miniLeague(tied []Stats, matches []match.Match) map[string]miniRecord {
	out := make(map[string]miniRecord, len(tied))
	for _, row := range tied {
		out[row.TeamID] = miniRecord{}
	}

	for _, item := range matches {
		home, okHome := out[item.HomeTeamID]
		away, okAway := out[item.AwayTeamID]
		if !okHome || !okAway || item.HomeTeamID == item.AwayTeamID {
			continue
		}
		homeGoals, awayGoals := *item.HomeScore, *item.AwayScore
		home.goalsFor += homeGoals
		home.goalsAgainst += awayGoals
		away.goalsFor += awayGoals
		away.goalsAgainst += homeGoals
		switch {
		case homeGoals > awayGoals:
			home.points += PointsWin
		case homeGoals < awayGoals:
			away.points += PointsWin
		default:
			home.points += PointsDraw
			away.points += PointsDraw
		}
		out[item.HomeTeamID] = home
		out[item.AwayTeamID] = away
	}
	return out
}

// partition sorts items by key descending and splits them into runs of equal keys.
func partition(items []Stats, key func(Stats) tieKey) [][]Stats {
	sorted := slices.Clone(items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return compareKeys(key(sorted[i]), key(sorted[j])) < 0
	})

	out := make([][]Stats, 0, len(sorted))
	for start := 0; start < len(sorted); {
		end := start + 1
		for end < len(sorted) && compareKeys(key(sorted[start]), key(sorted[end])) == 0 {
			end++
		}
		out = append(out, sorted[start:end])
		start = end
	}
	return out
}

func draw(items []Stats, fallback DrawFallback) []Stats {
	if len(items) == 1 {
		return []Stats{items[0]}
	}

	byID := make(map[string]Stats, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		byID[item.TeamID] = item
		ids = append(ids, item.TeamID)
	}

	out := make([]Stats, 0, len(items))
	for _, id := range fallback.Draw(ids) {
		item, ok := byID[id]
		if !ok {
			continue
		}
		out = append(out, item)
		delete(byID, id)
	}
	// A misbehaving fallback must not drop teams from the table.
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			out = append(out, item)
		}
	}
	return out
}
