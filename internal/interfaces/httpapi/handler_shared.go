package httpapi

import (
	"time"

	"github.com/riskibarqy/league-engine/internal/domain/division"
	"github.com/riskibarqy/league-engine/internal/domain/match"
	"github.com/riskibarqy/league-engine/internal/domain/standing"
	"github.com/riskibarqy/league-engine/internal/domain/transition"
	"github.com/riskibarqy/league-engine/internal/usecase"
)

type recordResultRequest struct {
	HomeScore *int `json:"home_score" validate:"required,min=0"`
	AwayScore *int `json:"away_score" validate:"required,min=0"`
}

type rolloverRequest struct {
	ToSeasonID string `json:"to_season_id" validate:"required,max=64"`
	Name       string `json:"name" validate:"omitempty,max=100"`
	StartsOn   string `json:"starts_on" validate:"omitempty,datetime=2006-01-02"`
	EndsOn     string `json:"ends_on" validate:"omitempty,datetime=2006-01-02"`
}

type internalJobRequest struct {
	SeasonID   string `json:"season_id" validate:"omitempty,max=64"`
	DispatchID string `json:"dispatch_id" validate:"omitempty,max=200"`
}

type standingDTO struct {
	Position       int    `json:"position"`
	TeamID         string `json:"team_id"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
	Form           string `json:"form"`
	Outcome        string `json:"outcome,omitempty"`
}

type groupTableDTO struct {
	SeasonID   string        `json:"season_id"`
	GroupID    string        `json:"group_id"`
	GroupCode  string        `json:"group_code"`
	DivisionID string        `json:"division_id"`
	Standings  []standingDTO `json:"standings"`
}

type divisionDTO struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Level               int    `json:"level"`
	GroupCount          int    `json:"group_count"`
	TeamsPerGroup       int    `json:"teams_per_group"`
	PromoteSlots        int    `json:"promote_slots"`
	PromotePlayoffSlots int    `json:"promote_playoff_slots"`
	RelegateSlots       int    `json:"relegate_slots"`
	TournamentSlots     int    `json:"tournament_slots"`
	PlayoffPolicy       string `json:"playoff_policy"`
}

type matchDTO struct {
	ID           string     `json:"id"`
	SeasonID     string     `json:"season_id"`
	GroupID      string     `json:"group_id"`
	HomeTeamID   string     `json:"home_team_id"`
	AwayTeamID   string     `json:"away_team_id"`
	ScheduledAt  time.Time  `json:"scheduled_at"`
	Status       string     `json:"status"`
	HomeScore    *int       `json:"home_score,omitempty"`
	AwayScore    *int       `json:"away_score,omitempty"`
	IsPlayoff    bool       `json:"is_playoff"`
	PlayoffRound string     `json:"playoff_round,omitempty"`
	PlayoffSlot  int        `json:"playoff_slot,omitempty"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
}

type divisionOverviewDTO struct {
	SeasonID string          `json:"season_id"`
	Division divisionDTO     `json:"division"`
	Phase    string          `json:"phase"`
	Groups   []groupTableDTO `json:"groups"`
	Playoffs []matchDTO      `json:"playoffs"`
}

type moveDTO struct {
	TeamID      string `json:"team_id"`
	FromGroupID string `json:"from_group_id"`
	ToGroupID   string `json:"to_group_id"`
	Kind        string `json:"kind"`
}

type planDTO struct {
	SeasonID  string    `json:"season_id"`
	Stayed    int       `json:"stayed"`
	Promoted  int       `json:"promoted"`
	Relegated int       `json:"relegated"`
	Moves     []moveDTO `json:"moves"`
}

func standingToDTO(item standing.Standing, outcome string) standingDTO {
	return standingDTO{
		Position:       item.Position,
		TeamID:         item.TeamID,
		Played:         item.Played,
		Won:            item.Won,
		Drawn:          item.Drawn,
		Lost:           item.Lost,
		GoalsFor:       item.GoalsFor,
		GoalsAgainst:   item.GoalsAgainst,
		GoalDifference: item.GoalDifference,
		Points:         item.Points,
		Form:           item.Form,
		Outcome:        outcome,
	}
}

func groupTableToDTO(table usecase.GroupTable) groupTableDTO {
	rows := make([]standingDTO, 0, len(table.Standings))
	for _, item := range table.Standings {
		rows = append(rows, standingToDTO(item, string(table.Labels[item.TeamID])))
	}
	return groupTableDTO{
		SeasonID:   table.SeasonID,
		GroupID:    table.Group.ID,
		GroupCode:  table.Group.Code,
		DivisionID: table.DivisionID,
		Standings:  rows,
	}
}

func divisionToDTO(item division.Division) divisionDTO {
	return divisionDTO{
		ID:                  item.ID,
		Name:                item.Name,
		Level:               item.Level,
		GroupCount:          item.GroupCount,
		TeamsPerGroup:       item.TeamsPerGroup,
		PromoteSlots:        item.PromoteSlots,
		PromotePlayoffSlots: item.PromotePlayoffSlots,
		RelegateSlots:       item.RelegateSlots,
		TournamentSlots:     item.TournamentSlots,
		PlayoffPolicy:       string(item.PlayoffPolicy),
	}
}

func matchToDTO(item match.Match) matchDTO {
	return matchDTO{
		ID:           item.ID,
		SeasonID:     item.SeasonID,
		GroupID:      item.GroupID,
		HomeTeamID:   item.HomeTeamID,
		AwayTeamID:   item.AwayTeamID,
		ScheduledAt:  item.ScheduledAt,
		Status:       item.Status,
		HomeScore:    item.HomeScore,
		AwayScore:    item.AwayScore,
		IsPlayoff:    item.IsPlayoff,
		PlayoffRound: string(item.PlayoffRound),
		PlayoffSlot:  item.PlayoffSlot,
		FinishedAt:   item.FinishedAt,
	}
}

func matchesToDTO(items []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchToDTO(item))
	}
	return out
}

func overviewToDTO(item usecase.DivisionOverview) divisionOverviewDTO {
	groups := make([]groupTableDTO, 0, len(item.Groups))
	for _, table := range item.Groups {
		groups = append(groups, groupTableToDTO(table))
	}
	return divisionOverviewDTO{
		SeasonID: item.SeasonID,
		Division: divisionToDTO(item.Division),
		Phase:    string(item.Phase),
		Groups:   groups,
		Playoffs: matchesToDTO(item.Playoffs),
	}
}

func planToDTO(item usecase.PlanResult) planDTO {
	moves := make([]moveDTO, 0, len(item.Moves))
	for _, move := range item.Moves {
		moves = append(moves, moveToDTO(move))
	}
	return planDTO{
		SeasonID:  item.SeasonID,
		Stayed:    item.Stayed,
		Promoted:  item.Promoted,
		Relegated: item.Relegated,
		Moves:     moves,
	}
}

func moveToDTO(move transition.Move) moveDTO {
	return moveDTO{
		TeamID:      move.TeamID,
		FromGroupID: move.FromGroupID,
		ToGroupID:   move.ToGroupID,
		Kind:        string(move.Kind),
	}
}
