package postgres

import (
	"time"

	"github.com/riskibarqy/league-engine/internal/domain/team"
)

type teamTableModel struct {
	ID         int64      `db:"id"`
	PublicID   string     `db:"public_id"`
	Name       string     `db:"name"`
	Short      string     `db:"short"`
	Popularity int        `db:"popularity"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
	DeletedAt  *time.Time `db:"deleted_at"`
}

func (row teamTableModel) toDomain() team.Team {
	return team.Team{ID: row.PublicID, Name: row.Name, Short: row.Short, Popularity: row.Popularity}
}
