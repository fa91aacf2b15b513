package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-engine/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/league-engine/internal/platform/querybuilder"
)

type seedStatement struct {
	label string
	query string
	rows  []map[string]any
}

// BootstrapSeed loads the demo league into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	countQuery, countArgs, err := qb.Select("COUNT(1)").From("divisions").Where(qb.Live()).ToSQL()
	if err != nil {
		return fmt.Errorf("build count divisions query: %w", err)
	}
	var count int
	if err := db.GetContext(ctx, &count, countQuery, countArgs...); err != nil {
		return fmt.Errorf("count divisions for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, stmt := range seedStatements() {
		for _, row := range stmt.rows {
			query, args, err := sqlx.Named(stmt.query, row)
			if err != nil {
				return fmt.Errorf("bind seed %s query: %w", stmt.label, err)
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
				return fmt.Errorf("seed %s %v: %w", stmt.label, row["public_id"], err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}

func seedStatements() []seedStatement {
	seasons := make([]map[string]any, 0, 1)
	for _, item := range memory.SeedSeasons() {
		seasons = append(seasons, map[string]any{
			"public_id": item.ID,
			"name":      item.Name,
			"is_active": item.Active,
			"starts_on": optionalDate(item.StartsOn),
			"ends_on":   optionalDate(item.EndsOn),
		})
	}

	divisions := make([]map[string]any, 0, 3)
	for _, item := range memory.SeedDivisions() {
		divisions = append(divisions, map[string]any{
			"public_id":             item.ID,
			"name":                  item.Name,
			"level":                 item.Level,
			"group_count":           item.GroupCount,
			"teams_per_group":       item.TeamsPerGroup,
			"promote_slots":         item.PromoteSlots,
			"promote_playoff_slots": item.PromotePlayoffSlots,
			"relegate_slots":        item.RelegateSlots,
			"tournament_slots":      item.TournamentSlots,
			"playoff_policy":        string(item.PlayoffPolicy),
		})
	}

	groups := make([]map[string]any, 0, 8)
	for _, item := range memory.SeedGroups() {
		groups = append(groups, map[string]any{
			"public_id":          item.ID,
			"division_public_id": item.DivisionID,
			"code":               item.Code,
		})
	}

	teams := make([]map[string]any, 0, 40)
	for _, item := range memory.SeedTeams() {
		teams = append(teams, map[string]any{
			"public_id":  item.ID,
			"name":       item.Name,
			"short":      item.Short,
			"popularity": item.Popularity,
		})
	}

	assignments := make([]map[string]any, 0, 40)
	for _, item := range memory.SeedAssignments() {
		assignments = append(assignments, map[string]any{
			"public_id":        item.SeasonID + "/" + item.TeamID,
			"season_public_id": item.SeasonID,
			"team_public_id":   item.TeamID,
			"group_public_id":  item.GroupID,
		})
	}

	matches := make([]map[string]any, 0, 200)
	for _, item := range memory.SeedMatches() {
		matches = append(matches, map[string]any{
			"public_id":           item.ID,
			"season_public_id":    item.SeasonID,
			"group_public_id":     item.GroupID,
			"home_team_public_id": item.HomeTeamID,
			"away_team_public_id": item.AwayTeamID,
			"scheduled_at":        item.ScheduledAt.UTC(),
			"status":              item.Status,
			"home_score":          item.HomeScore,
			"away_score":          item.AwayScore,
			"finished_at":         item.FinishedAt,
		})
	}

	byPublicID := []string{"public_id"}
	return []seedStatement{
		{label: "season", rows: seasons, query: namedInsert("seasons", byPublicID,
			"public_id", "name", "is_active", "starts_on", "ends_on")},
		{label: "division", rows: divisions, query: namedInsert("divisions", byPublicID,
			"public_id", "name", "level", "group_count", "teams_per_group", "promote_slots",
			"promote_playoff_slots", "relegate_slots", "tournament_slots", "playoff_policy")},
		{label: "group", rows: groups, query: namedInsert("division_groups", byPublicID,
			"public_id", "division_public_id", "code")},
		{label: "team", rows: teams, query: namedInsert("teams", byPublicID,
			"public_id", "name", "short", "popularity")},
		{label: "assignment", rows: assignments, query: namedInsert("team_assignments", []string{"season_public_id", "team_public_id"},
			"season_public_id", "team_public_id", "group_public_id")},
		{label: "match", rows: matches, query: namedInsert("matches", byPublicID,
			"public_id", "season_public_id", "group_public_id", "home_team_public_id", "away_team_public_id",
			"scheduled_at", "status", "home_score", "away_score", "finished_at")},
	}
}

// namedInsert renders an insert with :column parameters for sqlx.Named that
// skips rows already present under the conflict columns.
func namedInsert(table string, conflict []string, columns ...string) string {
	return "INSERT INTO " + table + " (" + strings.Join(columns, ", ") + ") VALUES (:" +
		strings.Join(columns, ", :") + ") " + qb.OnConflictDoNothing(conflict...)
}
