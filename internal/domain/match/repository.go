package match

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateFixture is returned by CreateMany when a live playoff fixture
// already holds the same season, group, round and slot. Nothing in the batch
// is written.
var ErrDuplicateFixture = errors.New("playoff fixture already exists")

type Repository interface {
	ListByGroups(ctx context.Context, seasonID string, groupIDs []string) ([]Match, error)
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	CreateMany(ctx context.Context, items []Match) error
	RecordResult(ctx context.Context, matchID string, homeScore, awayScore int, finishedAt time.Time) error
}
