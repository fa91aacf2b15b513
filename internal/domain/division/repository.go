package division

import "context"

// Repository exposes static division configuration.
type Repository interface {
	List(ctx context.Context) ([]Division, error)
	GetByID(ctx context.Context, divisionID string) (Division, bool, error)
}
