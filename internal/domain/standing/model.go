package standing

// Standing represents a ranked table row for one team in one group and season.
type Standing struct {
	SeasonID       string
	GroupID        string
	TeamID         string
	Position       int
	Played         int
	Won            int
	Drawn          int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
	Form           string
}
