package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/league-engine/internal/domain/match"
	qb "github.com/riskibarqy/league-engine/internal/platform/querybuilder"
)

// playoffSlotIndex backs one fixture per bracket slot.
const playoffSlotIndex = "uq_matches_playoff_slot"

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) ListByGroups(ctx context.Context, seasonID string, groupIDs []string) ([]match.Match, error) {
	if len(groupIDs) == 0 {
		return []match.Match{}, nil
	}

	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Any("group_public_id", pq.Array(groupIDs)),
			qb.Live(),
		).
		OrderBy("scheduled_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches by groups query: %w", err)
	}

	var rows []matchTableModel
	if err := selectRows(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches season=%s: %w", seasonID, err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	match.SortChronological(out)
	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("public_id", matchID),
			qb.Live(),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := getRow(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match=%s: %w", matchID, err)
	}
	return row.toDomain(), true, nil
}

// CreateMany inserts all matches in one statement; a duplicate id or playoff
// slot fails the batch.
func (r *MatchRepository) CreateMany(ctx context.Context, items []match.Match) error {
	if len(items) == 0 {
		return nil
	}

	models := make([]matchInsertModel, 0, len(items))
	for _, item := range items {
		models = append(models, matchInsertFromDomain(item))
	}
	query, args, err := qb.InsertModels("matches", models, "")
	if err != nil {
		return fmt.Errorf("build insert matches query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if violatesConstraint(err, playoffSlotIndex) {
			return fmt.Errorf("insert matches: %w", match.ErrDuplicateFixture)
		}
		if isUniqueViolation(err) {
			return fmt.Errorf("insert matches: duplicate match id: %w", err)
		}
		return fmt.Errorf("insert matches: %w", err)
	}
	return nil
}

func (r *MatchRepository) RecordResult(ctx context.Context, matchID string, homeScore, awayScore int, finishedAt time.Time) error {
	query, args, err := qb.Update("matches").
		Set("home_score", homeScore).
		Set("away_score", awayScore).
		Set("status", match.StatusFinished).
		Set("finished_at", finishedAt.UTC()).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", matchID),
			qb.Live(),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build record match result query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("record result match=%s: %w", matchID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("record result match=%s rows affected: %w", matchID, err)
	}
	if affected == 0 {
		return fmt.Errorf("match=%s not found", matchID)
	}
	return nil
}
