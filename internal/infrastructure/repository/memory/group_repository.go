package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/league-engine/internal/domain/group"
)

type GroupRepository struct {
	mu                 sync.RWMutex
	groupsByDivision   map[string][]group.Group
	groupsByIdentifier map[string]group.Group
}

func NewGroupRepository(items []group.Group) *GroupRepository {
	groupsByDivision := make(map[string][]group.Group)
	groupsByIdentifier := make(map[string]group.Group, len(items))
	for _, item := range items {
		groupsByDivision[item.DivisionID] = append(groupsByDivision[item.DivisionID], item)
		groupsByIdentifier[item.ID] = item
	}
	for divisionID := range groupsByDivision {
		group.SortByCode(groupsByDivision[divisionID])
	}

	return &GroupRepository{
		groupsByDivision:   groupsByDivision,
		groupsByIdentifier: groupsByIdentifier,
	}
}

func (r *GroupRepository) ListByDivision(_ context.Context, divisionID string) ([]group.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.groupsByDivision[divisionID]
	out := make([]group.Group, 0, len(items))
	out = append(out, items...)
	return out, nil
}

func (r *GroupRepository) GetByID(_ context.Context, groupID string) (group.Group, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.groupsByIdentifier[groupID]
	return item, ok, nil
}
