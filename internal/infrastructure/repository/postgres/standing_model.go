package postgres

import (
	"time"

	"github.com/riskibarqy/league-engine/internal/domain/standing"
)

type standingTableModel struct {
	ID             int64      `db:"id"`
	SeasonID       string     `db:"season_public_id"`
	GroupID        string     `db:"group_public_id"`
	TeamID         string     `db:"team_public_id"`
	Position       int        `db:"position"`
	Played         int        `db:"played"`
	Won            int        `db:"won"`
	Drawn          int        `db:"drawn"`
	Lost           int        `db:"lost"`
	GoalsFor       int        `db:"goals_for"`
	GoalsAgainst   int        `db:"goals_against"`
	GoalDifference int        `db:"goal_difference"`
	Points         int        `db:"points"`
	Form           string     `db:"form"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}

func (row standingTableModel) toDomain() standing.Standing {
	return standing.Standing{
		SeasonID:       row.SeasonID,
		GroupID:        row.GroupID,
		TeamID:         row.TeamID,
		Position:       row.Position,
		Played:         row.Played,
		Won:            row.Won,
		Drawn:          row.Drawn,
		Lost:           row.Lost,
		GoalsFor:       row.GoalsFor,
		GoalsAgainst:   row.GoalsAgainst,
		GoalDifference: row.GoalDifference,
		Points:         row.Points,
		Form:           row.Form,
	}
}

type standingInsertModel struct {
	SeasonID       string `db:"season_public_id"`
	GroupID        string `db:"group_public_id"`
	TeamID         string `db:"team_public_id"`
	Position       int    `db:"position"`
	Played         int    `db:"played"`
	Won            int    `db:"won"`
	Drawn          int    `db:"drawn"`
	Lost           int    `db:"lost"`
	GoalsFor       int    `db:"goals_for"`
	GoalsAgainst   int    `db:"goals_against"`
	GoalDifference int    `db:"goal_difference"`
	Points         int    `db:"points"`
	Form           string `db:"form"`
}
