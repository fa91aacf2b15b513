package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/league-engine/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	matches map[string]match.Match
}

func NewMatchRepository(items []match.Match) *MatchRepository {
	matches := make(map[string]match.Match, len(items))
	for _, item := range items {
		matches[item.ID] = cloneMatch(item)
	}

	return &MatchRepository{matches: matches}
}

func (r *MatchRepository) ListByGroups(_ context.Context, seasonID string, groupIDs []string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(groupIDs))
	for _, groupID := range groupIDs {
		wanted[groupID] = struct{}{}
	}

	out := make([]match.Match, 0)
	for _, item := range r.matches {
		if item.SeasonID != seasonID {
			continue
		}
		if _, ok := wanted[item.GroupID]; !ok {
			continue
		}
		out = append(out, cloneMatch(item))
	}
	match.SortChronological(out)
	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.matches[matchID]
	if !ok {
		return match.Match{}, false, nil
	}
	return cloneMatch(item), true, nil
}

func (r *MatchRepository) CreateMany(_ context.Context, items []match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	taken := make(map[string]struct{})
	for _, item := range r.matches {
		if key := item.SlotKey(); key != "" {
			taken[key] = struct{}{}
		}
	}
	for _, item := range items {
		if _, exists := r.matches[item.ID]; exists {
			return fmt.Errorf("match=%s already exists", item.ID)
		}
		key := item.SlotKey()
		if key == "" {
			continue
		}
		if _, exists := taken[key]; exists {
			return fmt.Errorf("match=%s round=%s slot=%d: %w", item.ID, item.PlayoffRound, item.PlayoffSlot, match.ErrDuplicateFixture)
		}
		taken[key] = struct{}{}
	}
	for _, item := range items {
		r.matches[item.ID] = cloneMatch(item)
	}
	return nil
}

func (r *MatchRepository) RecordResult(_ context.Context, matchID string, homeScore, awayScore int, finishedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.matches[matchID]
	if !ok {
		return fmt.Errorf("match=%s not found", matchID)
	}
	at := finishedAt.UTC()
	item.HomeScore = &homeScore
	item.AwayScore = &awayScore
	item.Status = match.StatusFinished
	item.FinishedAt = &at
	r.matches[matchID] = item
	return nil
}

func cloneMatch(item match.Match) match.Match {
	if item.HomeScore != nil {
		v := *item.HomeScore
		item.HomeScore = &v
	}
	if item.AwayScore != nil {
		v := *item.AwayScore
		item.AwayScore = &v
	}
	if item.FinishedAt != nil {
		v := *item.FinishedAt
		item.FinishedAt = &v
	}
	return item
}
