package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-engine/internal/domain/standing"
	qb "github.com/riskibarqy/league-engine/internal/platform/querybuilder"
)

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

func (r *StandingRepository) ListByGroup(ctx context.Context, seasonID, groupID string) ([]standing.Standing, error) {
	query, args, err := qb.Select("*").From("group_standings").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Eq("group_public_id", groupID),
			qb.Live(),
		).
		OrderBy("position", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list group standings query: %w", err)
	}

	var rows []standingTableModel
	if err := selectRows(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list group standings: %w", err)
	}

	out := make([]standing.Standing, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// ReplaceByGroup soft-deletes the current table and writes the new one atomically.
func (r *StandingRepository) ReplaceByGroup(ctx context.Context, seasonID, groupID string, standings []standing.Standing) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace group standings: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.SoftDelete("group_standings",
		qb.Eq("season_public_id", seasonID),
		qb.Eq("group_public_id", groupID),
	).ToSQL()
	if err != nil {
		return fmt.Errorf("build clear group standings query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear group standings: %w", err)
	}

	if len(standings) > 0 {
		models := make([]standingInsertModel, 0, len(standings))
		for _, item := range standings {
			models = append(models, standingInsertModel{
				SeasonID:       seasonID,
				GroupID:        groupID,
				TeamID:         item.TeamID,
				Position:       item.Position,
				Played:         item.Played,
				Won:            item.Won,
				Drawn:          item.Drawn,
				Lost:           item.Lost,
				GoalsFor:       item.GoalsFor,
				GoalsAgainst:   item.GoalsAgainst,
				GoalDifference: item.GoalDifference,
				Points:         item.Points,
				Form:           strings.TrimSpace(item.Form),
			})
		}
		query, args, err := qb.InsertModels("group_standings", models, "")
		if err != nil {
			return fmt.Errorf("build insert group standings query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert group standings season=%s group=%s: %w", seasonID, groupID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace group standings tx: %w", err)
	}
	return nil
}
