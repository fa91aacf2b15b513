package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/league-engine/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	teams map[string]team.Team
}

func NewTeamRepository(items []team.Team) *TeamRepository {
	teams := make(map[string]team.Team, len(items))
	for _, item := range items {
		teams[item.ID] = item
	}

	return &TeamRepository{teams: teams}
}

// ListByIDs returns known teams in the order requested; unknown ids are skipped.
func (r *TeamRepository) ListByIDs(_ context.Context, teamIDs []string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		if item, ok := r.teams[teamID]; ok {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.teams[teamID]
	return item, ok, nil
}
