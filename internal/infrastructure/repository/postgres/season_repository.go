package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-engine/internal/domain/season"
	qb "github.com/riskibarqy/league-engine/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(
			qb.Eq("public_id", seasonID),
			qb.Live(),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build get season query: %w", err)
	}
	return r.getOne(ctx, query, args...)
}

func (r *SeasonRepository) GetActive(ctx context.Context) (season.Season, bool, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(
			qb.Eq("is_active", true),
			qb.Live(),
		).
		OrderBy("starts_on DESC NULLS LAST", "id DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build get active season query: %w", err)
	}
	return r.getOne(ctx, query, args...)
}

func (r *SeasonRepository) getOne(ctx context.Context, query string, args ...any) (season.Season, bool, error) {
	var row seasonTableModel
	if err := getRow(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("get season: %w", err)
	}
	return row.toDomain(), true, nil
}

// Create inserts the season and makes it the only active one.
func (r *SeasonRepository) Create(ctx context.Context, item season.Season) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx create season: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deactivateQuery, deactivateArgs, err := qb.Update("seasons").
		Set("is_active", false).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("is_active", true),
			qb.Live(),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build deactivate seasons query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deactivateQuery, deactivateArgs...); err != nil {
		return fmt.Errorf("deactivate seasons: %w", err)
	}

	model := seasonInsertModel{
		PublicID: item.ID,
		Name:     item.Name,
		IsActive: true,
		StartsOn: optionalDate(item.StartsOn),
		EndsOn:   optionalDate(item.EndsOn),
	}
	query, args, err := qb.InsertModel("seasons", model, "")
	if err != nil {
		return fmt.Errorf("build insert season query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("season=%s already exists", item.ID)
		}
		return fmt.Errorf("insert season=%s: %w", item.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create season tx: %w", err)
	}
	return nil
}

// Close deactivates the season and stamps closed_at once.
func (r *SeasonRepository) Close(ctx context.Context, seasonID string, closedAt time.Time) error {
	query, args, err := qb.Update("seasons").
		Set("is_active", false).
		SetExpr("closed_at", "COALESCE(closed_at, ?)", closedAt.UTC()).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", seasonID),
			qb.Live(),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build close season query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("close season=%s: %w", seasonID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("close season=%s rows affected: %w", seasonID, err)
	}
	if affected == 0 {
		return fmt.Errorf("season=%s not found", seasonID)
	}
	return nil
}

func optionalDate(value time.Time) *time.Time {
	if value.IsZero() {
		return nil
	}
	out := value.UTC()
	return &out
}
