package assignment

import "context"

type Repository interface {
	ListByGroup(ctx context.Context, seasonID, groupID string) ([]Assignment, error)
	ListBySeason(ctx context.Context, seasonID string) ([]Assignment, error)
	// UpdateFlags overwrites the outcome flags of the given assignments.
	UpdateFlags(ctx context.Context, seasonID string, items []Assignment) error
	// UpdateNextGroups stores team -> next-season group pointers.
	UpdateNextGroups(ctx context.Context, seasonID string, targets map[string]string) error
	// CreateMany inserts assignments, skipping (team, season) pairs that already exist.
	CreateMany(ctx context.Context, items []Assignment) (int, error)
}
