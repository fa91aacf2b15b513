package jobscheduler

import "context"

// Repository stores the latest event per dispatch id. Implementations keep
// the first timestamp recorded for each status.
type Repository interface {
	UpsertEvent(ctx context.Context, event DispatchEvent) error
}
