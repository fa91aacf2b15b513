package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-engine/internal/domain/group"
	qb "github.com/riskibarqy/league-engine/internal/platform/querybuilder"
)

type GroupRepository struct {
	db *sqlx.DB
}

func NewGroupRepository(db *sqlx.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) ListByDivision(ctx context.Context, divisionID string) ([]group.Group, error) {
	query, args, err := qb.Select("*").From("division_groups").
		Where(
			qb.Eq("division_public_id", divisionID),
			qb.Live(),
		).
		OrderBy("code", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list groups by division query: %w", err)
	}

	var rows []groupTableModel
	if err := selectRows(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list groups by division=%s: %w", divisionID, err)
	}

	out := make([]group.Group, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	group.SortByCode(out)
	return out, nil
}

func (r *GroupRepository) GetByID(ctx context.Context, groupID string) (group.Group, bool, error) {
	query, args, err := qb.Select("*").From("division_groups").
		Where(
			qb.Eq("public_id", groupID),
			qb.Live(),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return group.Group{}, false, fmt.Errorf("build get group query: %w", err)
	}

	var row groupTableModel
	if err := getRow(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return group.Group{}, false, nil
		}
		return group.Group{}, false, fmt.Errorf("get group=%s: %w", groupID, err)
	}
	return row.toDomain(), true, nil
}
