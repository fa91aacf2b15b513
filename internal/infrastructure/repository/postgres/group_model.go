package postgres

import (
	"time"

	"github.com/riskibarqy/league-engine/internal/domain/group"
)

type groupTableModel struct {
	ID         int64      `db:"id"`
	PublicID   string     `db:"public_id"`
	DivisionID string     `db:"division_public_id"`
	Code       string     `db:"code"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
	DeletedAt  *time.Time `db:"deleted_at"`
}

func (row groupTableModel) toDomain() group.Group {
	return group.Group{ID: row.PublicID, DivisionID: row.DivisionID, Code: row.Code}
}
