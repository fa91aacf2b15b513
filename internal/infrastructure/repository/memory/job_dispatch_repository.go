package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/league-engine/internal/domain/jobscheduler"
)

type JobDispatchRepository struct {
	mu     sync.RWMutex
	events map[string]jobscheduler.DispatchEvent
	order  []string
}

func NewJobDispatchRepository() *JobDispatchRepository {
	return &JobDispatchRepository{events: make(map[string]jobscheduler.DispatchEvent)}
}

// UpsertEvent keeps the latest status per dispatch id and rejects invalid events.
func (r *JobDispatchRepository) UpsertEvent(_ context.Context, event jobscheduler.DispatchEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.events[event.DispatchID]; !exists {
		r.order = append(r.order, event.DispatchID)
	}
	r.events[event.DispatchID] = event
	return nil
}

func (r *JobDispatchRepository) List(_ context.Context) ([]jobscheduler.DispatchEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]jobscheduler.DispatchEvent, 0, len(r.order))
	for _, dispatchID := range r.order {
		out = append(out, r.events[dispatchID])
	}
	return out, nil
}
