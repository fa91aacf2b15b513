package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/league-engine/internal/domain/season"
)

type seasonTableModel struct {
	ID        int64        `db:"id"`
	PublicID  string       `db:"public_id"`
	Name      string       `db:"name"`
	IsActive  bool         `db:"is_active"`
	StartsOn  sql.NullTime `db:"starts_on"`
	EndsOn    sql.NullTime `db:"ends_on"`
	ClosedAt  *time.Time   `db:"closed_at"`
	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt time.Time    `db:"updated_at"`
	DeletedAt *time.Time   `db:"deleted_at"`
}

func (row seasonTableModel) toDomain() season.Season {
	out := season.Season{
		ID:       row.PublicID,
		Name:     row.Name,
		Active:   row.IsActive,
		ClosedAt: row.ClosedAt,
	}
	if row.StartsOn.Valid {
		out.StartsOn = row.StartsOn.Time.UTC()
	}
	if row.EndsOn.Valid {
		out.EndsOn = row.EndsOn.Time.UTC()
	}
	return out
}

type seasonInsertModel struct {
	PublicID string     `db:"public_id"`
	Name     string     `db:"name"`
	IsActive bool       `db:"is_active"`
	StartsOn *time.Time `db:"starts_on"`
	EndsOn   *time.Time `db:"ends_on"`
}
