package assignment

// Assignment links a team to a group for one season and carries the
// season-outcome flags the engine maintains.
type Assignment struct {
	TeamID                 string
	GroupID                string
	SeasonID               string
	PromotedNextSeason     bool
	RelegatedNextSeason    bool
	PlayoffNextSeason      bool
	QualifiedForTournament bool
	NextGroupID            string
}

// ActiveFlags counts outcome flags currently set.
func (a Assignment) ActiveFlags() int {
	count := 0
	for _, flag := range []bool{a.PromotedNextSeason, a.RelegatedNextSeason, a.PlayoffNextSeason, a.QualifiedForTournament} {
		if flag {
			count++
		}
	}
	return count
}

func ByTeam(items []Assignment) map[string]Assignment {
	out := make(map[string]Assignment, len(items))
	for _, item := range items {
		out[item.TeamID] = item
	}
	return out
}

func TeamIDs(items []Assignment) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.TeamID)
	}
	return out
}
