package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/league-engine/internal/domain/season"
)

type SeasonRepository struct {
	mu      sync.RWMutex
	seasons map[string]season.Season
}

func NewSeasonRepository(items []season.Season) *SeasonRepository {
	seasons := make(map[string]season.Season, len(items))
	for _, item := range items {
		seasons[item.ID] = cloneSeason(item)
	}

	return &SeasonRepository{seasons: seasons}
}

func (r *SeasonRepository) GetByID(_ context.Context, seasonID string) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.seasons[seasonID]
	if !ok {
		return season.Season{}, false, nil
	}
	return cloneSeason(item), true, nil
}

func (r *SeasonRepository) GetActive(_ context.Context) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.seasons {
		if item.Active {
			return cloneSeason(item), true, nil
		}
	}
	return season.Season{}, false, nil
}

func (r *SeasonRepository) Create(_ context.Context, item season.Season) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.seasons[item.ID]; exists {
		return fmt.Errorf("season=%s already exists", item.ID)
	}
	for seasonID, existing := range r.seasons {
		existing.Active = false
		r.seasons[seasonID] = existing
	}
	item.Active = true
	r.seasons[item.ID] = cloneSeason(item)
	return nil
}

func (r *SeasonRepository) Close(_ context.Context, seasonID string, closedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.seasons[seasonID]
	if !ok {
		return fmt.Errorf("season=%s not found", seasonID)
	}
	if item.ClosedAt == nil {
		at := closedAt.UTC()
		item.ClosedAt = &at
	}
	item.Active = false
	r.seasons[seasonID] = item
	return nil
}

func cloneSeason(item season.Season) season.Season {
	if item.ClosedAt != nil {
		at := *item.ClosedAt
		item.ClosedAt = &at
	}
	return item
}
