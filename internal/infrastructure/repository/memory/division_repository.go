package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/league-engine/internal/domain/division"
)

type DivisionRepository struct {
	mu        sync.RWMutex
	divisions []division.Division
}

func NewDivisionRepository(items []division.Division) *DivisionRepository {
	divisions := make([]division.Division, len(items))
	copy(divisions, items)
	division.SortByLevel(divisions)

	return &DivisionRepository{divisions: divisions}
}

func (r *DivisionRepository) List(_ context.Context) ([]division.Division, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]division.Division, 0, len(r.divisions))
	out = append(out, r.divisions...)
	return out, nil
}

func (r *DivisionRepository) GetByID(_ context.Context, divisionID string) (division.Division, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.divisions {
		if item.ID == divisionID {
			return item, true, nil
		}
	}

	return division.Division{}, false, nil
}
