package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/league-engine/internal/domain/standing"
)

type StandingRepository struct {
	mu      sync.RWMutex
	byGroup map[string][]standing.Standing
}

func NewStandingRepository() *StandingRepository {
	return &StandingRepository{byGroup: make(map[string][]standing.Standing)}
}

func (r *StandingRepository) ListByGroup(_ context.Context, seasonID, groupID string) ([]standing.Standing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.byGroup[seasonID+":"+groupID]
	out := make([]standing.Standing, 0, len(items))
	out = append(out, items...)
	return out, nil
}

// ReplaceByGroup swaps the whole table of a group in one step.
func (r *StandingRepository) ReplaceByGroup(_ context.Context, seasonID, groupID string, items []standing.Standing) error {
	rows := make([]standing.Standing, 0, len(items))
	for _, item := range items {
		item.SeasonID = seasonID
		item.GroupID = groupID
		rows = append(rows, item)
	}

	r.mu.Lock()
	r.byGroup[seasonID+":"+groupID] = rows
	r.mu.Unlock()
	return nil
}
