package standing

import "context"

type Repository interface {
	ListByGroup(ctx context.Context, seasonID, groupID string) ([]Standing, error)
	ReplaceByGroup(ctx context.Context, seasonID, groupID string, standings []Standing) error
}
