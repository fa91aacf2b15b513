package season

import (
	"context"
	"time"
)

type Repository interface {
	GetByID(ctx context.Context, seasonID string) (Season, bool, error)
	GetActive(ctx context.Context) (Season, bool, error)
	// Create stores a new season and makes it the active one.
	Create(ctx context.Context, item Season) error
	Close(ctx context.Context, seasonID string, closedAt time.Time) error
}
