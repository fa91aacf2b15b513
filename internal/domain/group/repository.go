package group

import "context"

type Repository interface {
	ListByDivision(ctx context.Context, divisionID string) ([]Group, error)
	GetByID(ctx context.Context, groupID string) (Group, bool, error)
}
