package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-engine/internal/domain/assignment"
	qb "github.com/riskibarqy/league-engine/internal/platform/querybuilder"
)

type AssignmentRepository struct {
	db *sqlx.DB
}

func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) ListByGroup(ctx context.Context, seasonID, groupID string) ([]assignment.Assignment, error) {
	return r.list(ctx, "list assignments by group",
		qb.Eq("season_public_id", seasonID),
		qb.Eq("group_public_id", groupID),
		qb.Live(),
	)
}

func (r *AssignmentRepository) ListBySeason(ctx context.Context, seasonID string) ([]assignment.Assignment, error) {
	return r.list(ctx, "list assignments by season",
		qb.Eq("season_public_id", seasonID),
		qb.Live(),
	)
}

func (r *AssignmentRepository) list(ctx context.Context, op string, conditions ...qb.Condition) ([]assignment.Assignment, error) {
	query, args, err := qb.Select("*").From("team_assignments").
		Where(conditions...).
		OrderBy("group_public_id", "team_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []assignmentTableModel
	if err := selectRows(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]assignment.Assignment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// UpdateFlags overwrites the four outcome flags of each given assignment in one transaction.
func (r *AssignmentRepository) UpdateFlags(ctx context.Context, seasonID string, items []assignment.Assignment) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx update assignment flags: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		query, args, err := qb.Update("team_assignments").
			Set("promoted_next_season", item.PromotedNextSeason).
			Set("relegated_next_season", item.RelegatedNextSeason).
			Set("playoff_next_season", item.PlayoffNextSeason).
			Set("qualified_for_tournament", item.QualifiedForTournament).
			SetExpr("updated_at", "NOW()").
			Where(
				qb.Eq("season_public_id", seasonID),
				qb.Eq("team_public_id", item.TeamID),
				qb.Live(),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update assignment flags query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update assignment flags team=%s season=%s: %w", item.TeamID, seasonID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update assignment flags tx: %w", err)
	}
	return nil
}

func (r *AssignmentRepository) UpdateNextGroups(ctx context.Context, seasonID string, targets map[string]string) error {
	if len(targets) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx update next groups: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for teamID, groupID := range targets {
		query, args, err := qb.Update("team_assignments").
			Set("next_group_public_id", optionalString(groupID)).
			SetExpr("updated_at", "NOW()").
			Where(
				qb.Eq("season_public_id", seasonID),
				qb.Eq("team_public_id", teamID),
				qb.Live(),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update next group query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update next group team=%s season=%s: %w", teamID, seasonID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update next groups tx: %w", err)
	}
	return nil
}

// CreateMany inserts assignments and skips (season, team) pairs that already exist.
func (r *AssignmentRepository) CreateMany(ctx context.Context, items []assignment.Assignment) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	models := make([]assignmentInsertModel, 0, len(items))
	for _, item := range items {
		models = append(models, assignmentInsertModel{
			SeasonID:               item.SeasonID,
			TeamID:                 item.TeamID,
			GroupID:                item.GroupID,
			PromotedNextSeason:     item.PromotedNextSeason,
			RelegatedNextSeason:    item.RelegatedNextSeason,
			PlayoffNextSeason:      item.PlayoffNextSeason,
			QualifiedForTournament: item.QualifiedForTournament,
			NextGroupID:            optionalString(item.NextGroupID),
		})
	}

	query, args, err := qb.InsertModels("team_assignments", models, qb.OnConflictDoNothing("season_public_id", "team_public_id"))
	if err != nil {
		return 0, fmt.Errorf("build insert assignments query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert assignments: %w", err)
	}
	created, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("insert assignments rows affected: %w", err)
	}
	return int(created), nil
}
