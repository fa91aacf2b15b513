package cache

import (
	"context"
	"strings"

	"github.com/riskibarqy/league-engine/internal/domain/division"
	"github.com/riskibarqy/league-engine/internal/domain/group"
	"github.com/riskibarqy/league-engine/internal/domain/team"
	basecache "github.com/riskibarqy/league-engine/internal/platform/cache"
)

// Decorators below cache league structure only. Matches, assignments and
// standings change during a season and always go to the next repository.

type lookup[T any] struct {
	value  T
	exists bool
}

type DivisionRepository struct {
	next  division.Repository
	cache *basecache.Store
}

func NewDivisionRepository(next division.Repository, cache *basecache.Store) *DivisionRepository {
	return &DivisionRepository{next: next, cache: cache}
}

func (r *DivisionRepository) List(ctx context.Context) ([]division.Division, error) {
	items, err := basecache.Load(ctx, r.cache, "division:list", func(ctx context.Context) ([]division.Division, error) {
		return r.next.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	return append([]division.Division(nil), items...), nil
}

func (r *DivisionRepository) GetByID(ctx context.Context, divisionID string) (division.Division, bool, error) {
	got, err := basecache.Load(ctx, r.cache, "division:id:"+divisionID, func(ctx context.Context) (lookup[division.Division], error) {
		item, exists, err := r.next.GetByID(ctx, divisionID)
		return lookup[division.Division]{value: item, exists: exists}, err
	})
	if err != nil {
		return division.Division{}, false, err
	}
	return got.value, got.exists, nil
}

type GroupRepository struct {
	next  group.Repository
	cache *basecache.Store
}

func NewGroupRepository(next group.Repository, cache *basecache.Store) *GroupRepository {
	return &GroupRepository{next: next, cache: cache}
}

func (r *GroupRepository) ListByDivision(ctx context.Context, divisionID string) ([]group.Group, error) {
	items, err := basecache.Load(ctx, r.cache, "group:division:"+divisionID, func(ctx context.Context) ([]group.Group, error) {
		return r.next.ListByDivision(ctx, divisionID)
	})
	if err != nil {
		return nil, err
	}
	return append([]group.Group(nil), items...), nil
}

func (r *GroupRepository) GetByID(ctx context.Context, groupID string) (group.Group, bool, error) {
	got, err := basecache.Load(ctx, r.cache, "group:id:"+groupID, func(ctx context.Context) (lookup[group.Group], error) {
		item, exists, err := r.next.GetByID(ctx, groupID)
		return lookup[group.Group]{value: item, exists: exists}, err
	})
	if err != nil {
		return group.Group{}, false, err
	}
	return got.value, got.exists, nil
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) ListByIDs(ctx context.Context, teamIDs []string) ([]team.Team, error) {
	if len(teamIDs) == 0 {
		return []team.Team{}, nil
	}

	key := "team:ids:" + strings.Join(teamIDs, ",")
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]team.Team, error) {
		return r.next.ListByIDs(ctx, teamIDs)
	})
	if err != nil {
		return nil, err
	}
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	got, err := basecache.Load(ctx, r.cache, "team:id:"+teamID, func(ctx context.Context) (lookup[team.Team], error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		return lookup[team.Team]{value: item, exists: exists}, err
	})
	if err != nil {
		return team.Team{}, false, err
	}
	return got.value, got.exists, nil
}
