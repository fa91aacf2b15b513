package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/league-engine/internal/domain/assignment"
)

type assignmentTableModel struct {
	ID                     int64          `db:"id"`
	SeasonID               string         `db:"season_public_id"`
	TeamID                 string         `db:"team_public_id"`
	GroupID                string         `db:"group_public_id"`
	PromotedNextSeason     bool           `db:"promoted_next_season"`
	RelegatedNextSeason    bool           `db:"relegated_next_season"`
	PlayoffNextSeason      bool           `db:"playoff_next_season"`
	QualifiedForTournament bool           `db:"qualified_for_tournament"`
	NextGroupID            sql.NullString `db:"next_group_public_id"`
	CreatedAt              time.Time      `db:"created_at"`
	UpdatedAt              time.Time      `db:"updated_at"`
	DeletedAt              *time.Time     `db:"deleted_at"`
}

func (row assignmentTableModel) toDomain() assignment.Assignment {
	return assignment.Assignment{
		TeamID:                 row.TeamID,
		GroupID:                row.GroupID,
		SeasonID:               row.SeasonID,
		PromotedNextSeason:     row.PromotedNextSeason,
		RelegatedNextSeason:    row.RelegatedNextSeason,
		PlayoffNextSeason:      row.PlayoffNextSeason,
		QualifiedForTournament: row.QualifiedForTournament,
		NextGroupID:            nullStringValue(row.NextGroupID),
	}
}

type assignmentInsertModel struct {
	SeasonID               string  `db:"season_public_id"`
	TeamID                 string  `db:"team_public_id"`
	GroupID                string  `db:"group_public_id"`
	PromotedNextSeason     bool    `db:"promoted_next_season"`
	RelegatedNextSeason    bool    `db:"relegated_next_season"`
	PlayoffNextSeason      bool    `db:"playoff_next_season"`
	QualifiedForTournament bool    `db:"qualified_for_tournament"`
	NextGroupID            *string `db:"next_group_public_id"`
}
