package postgres

import (
	"time"

	"github.com/riskibarqy/league-engine/internal/domain/division"
)

type divisionTableModel struct {
	ID                  int64      `db:"id"`
	PublicID            string     `db:"public_id"`
	Name                string     `db:"name"`
	Level               int        `db:"level"`
	GroupCount          int        `db:"group_count"`
	TeamsPerGroup       int        `db:"teams_per_group"`
	PromoteSlots        int        `db:"promote_slots"`
	PromotePlayoffSlots int        `db:"promote_playoff_slots"`
	RelegateSlots       int        `db:"relegate_slots"`
	TournamentSlots     int        `db:"tournament_slots"`
	PlayoffPolicy       string     `db:"playoff_policy"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"`
	DeletedAt           *time.Time `db:"deleted_at"`
}

func (row divisionTableModel) toDomain() division.Division {
	return division.Division{
		ID:                  row.PublicID,
		Name:                row.Name,
		Level:               row.Level,
		GroupCount:          row.GroupCount,
		TeamsPerGroup:       row.TeamsPerGroup,
		PromoteSlots:        row.PromoteSlots,
		PromotePlayoffSlots: row.PromotePlayoffSlots,
		RelegateSlots:       row.RelegateSlots,
		TournamentSlots:     row.TournamentSlots,
		PlayoffPolicy:       division.NormalizePolicy(row.PlayoffPolicy),
	}
}
