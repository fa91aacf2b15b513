package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-engine/internal/config"
	"github.com/riskibarqy/league-engine/internal/domain/assignment"
	"github.com/riskibarqy/league-engine/internal/domain/division"
	"github.com/riskibarqy/league-engine/internal/domain/group"
	"github.com/riskibarqy/league-engine/internal/domain/jobscheduler"
	"github.com/riskibarqy/league-engine/internal/domain/match"
	"github.com/riskibarqy/league-engine/internal/domain/season"
	"github.com/riskibarqy/league-engine/internal/domain/standing"
	"github.com/riskibarqy/league-engine/internal/domain/team"
	"github.com/riskibarqy/league-engine/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/league-engine/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/league-engine/internal/infrastructure/repository/postgres"
	basecache "github.com/riskibarqy/league-engine/internal/platform/cache"
	"github.com/riskibarqy/league-engine/internal/platform/logging"
)

type repositories struct {
	seasons     season.Repository
	divisions   division.Repository
	groups      group.Repository
	teams       team.Repository
	assignments assignment.Repository
	matches     match.Repository
	standings   standing.Repository
	dispatches  jobscheduler.Repository
}

func memoryRepositories() repositories {
	return repositories{
		seasons:     memory.NewSeasonRepository(memory.SeedSeasons()),
		divisions:   memory.NewDivisionRepository(memory.SeedDivisions()),
		groups:      memory.NewGroupRepository(memory.SeedGroups()),
		teams:       memory.NewTeamRepository(memory.SeedTeams()),
		assignments: memory.NewAssignmentRepository(memory.SeedAssignments()),
		matches:     memory.NewMatchRepository(memory.SeedMatches()),
		standings:   memory.NewStandingRepository(),
		dispatches:  memory.NewJobDispatchRepository(),
	}
}

func postgresRepositories(db *sqlx.DB) repositories {
	return repositories{
		seasons:     postgres.NewSeasonRepository(db),
		divisions:   postgres.NewDivisionRepository(db),
		groups:      postgres.NewGroupRepository(db),
		teams:       postgres.NewTeamRepository(db),
		assignments: postgres.NewAssignmentRepository(db),
		matches:     postgres.NewMatchRepository(db),
		standings:   postgres.NewStandingRepository(db),
		dispatches:  postgres.NewJobDispatchRepository(db),
	}
}

// withCache fronts league structure lookups with the in-process store.
func (r repositories) withCache(store *basecache.Store) repositories {
	r.divisions = cache.NewDivisionRepository(r.divisions, store)
	r.groups = cache.NewGroupRepository(r.groups, store)
	r.teams = cache.NewTeamRepository(r.teams, store)
	return r
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	noClose := func() error { return nil }

	var repos repositories
	closeFn := noClose
	if cfg.UsesMemoryStore() {
		logger.Info("using in-memory store", "reason", "DB_URL empty")
		repos = memoryRepositories()
	} else {
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, noClose, err
		}
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			_ = db.Close()
			return repositories{}, noClose, fmt.Errorf("bootstrap seed: %w", err)
		}
		logger.Info("using postgres store", "db_name", dbNameFromDSN(cfg.DBURL))
		repos = postgresRepositories(db)
		closeFn = db.Close
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos = repos.withCache(store)
		closeStore := closeFn
		closeFn = func() error {
			stats := store.Stats()
			logger.Info("league structure cache stats",
				"hits", stats.Hits,
				"misses", stats.Misses,
				"loads", stats.Loads,
				"entries", stats.Entries,
			)
			return closeStore()
		}
	}
	return repos, closeFn, nil
}
