package postgres

import (
	"time"

	"github.com/riskibarqy/league-engine/internal/domain/match"
)

type matchTableModel struct {
	ID           int64      `db:"id"`
	PublicID     string     `db:"public_id"`
	SeasonID     string     `db:"season_public_id"`
	GroupID      string     `db:"group_public_id"`
	HomeTeamID   string     `db:"home_team_public_id"`
	AwayTeamID   string     `db:"away_team_public_id"`
	ScheduledAt  time.Time  `db:"scheduled_at"`
	Status       string     `db:"status"`
	HomeScore    *int       `db:"home_score"`
	AwayScore    *int       `db:"away_score"`
	IsPlayoff    bool       `db:"is_playoff"`
	PlayoffRound string     `db:"playoff_round"`
	PlayoffSlot  int        `db:"playoff_slot"`
	FinishedAt   *time.Time `db:"finished_at"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

func (row matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:           row.PublicID,
		GroupID:      row.GroupID,
		SeasonID:     row.SeasonID,
		HomeTeamID:   row.HomeTeamID,
		AwayTeamID:   row.AwayTeamID,
		ScheduledAt:  row.ScheduledAt.UTC(),
		Status:       match.NormalizeStatus(row.Status),
		HomeScore:    row.HomeScore,
		AwayScore:    row.AwayScore,
		IsPlayoff:    row.IsPlayoff,
		PlayoffRound: match.ParseRound(row.PlayoffRound),
		PlayoffSlot:  row.PlayoffSlot,
		FinishedAt:   row.FinishedAt,
	}
}

type matchInsertModel struct {
	PublicID     string     `db:"public_id"`
	SeasonID     string     `db:"season_public_id"`
	GroupID      string     `db:"group_public_id"`
	HomeTeamID   string     `db:"home_team_public_id"`
	AwayTeamID   string     `db:"away_team_public_id"`
	ScheduledAt  time.Time  `db:"scheduled_at"`
	Status       string     `db:"status"`
	HomeScore    *int       `db:"home_score"`
	AwayScore    *int       `db:"away_score"`
	IsPlayoff    bool       `db:"is_playoff"`
	PlayoffRound string     `db:"playoff_round"`
	PlayoffSlot  int        `db:"playoff_slot"`
	FinishedAt   *time.Time `db:"finished_at"`
}

func matchInsertFromDomain(item match.Match) matchInsertModel {
	return matchInsertModel{
		PublicID:     item.ID,
		SeasonID:     item.SeasonID,
		GroupID:      item.GroupID,
		HomeTeamID:   item.HomeTeamID,
		AwayTeamID:   item.AwayTeamID,
		ScheduledAt:  item.ScheduledAt.UTC(),
		Status:       match.NormalizeStatus(item.Status),
		HomeScore:    item.HomeScore,
		AwayScore:    item.AwayScore,
		IsPlayoff:    item.IsPlayoff,
		PlayoffRound: string(item.PlayoffRound),
		PlayoffSlot:  item.PlayoffSlot,
		FinishedAt:   item.FinishedAt,
	}
}
