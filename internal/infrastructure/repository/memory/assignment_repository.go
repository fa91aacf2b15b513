package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/league-engine/internal/domain/assignment"
)

type AssignmentRepository struct {
	mu       sync.RWMutex
	bySeason map[string]map[string]assignment.Assignment
}

func NewAssignmentRepository(items []assignment.Assignment) *AssignmentRepository {
	bySeason := make(map[string]map[string]assignment.Assignment)
	for _, item := range items {
		if bySeason[item.SeasonID] == nil {
			bySeason[item.SeasonID] = make(map[string]assignment.Assignment)
		}
		bySeason[item.SeasonID][item.TeamID] = item
	}

	return &AssignmentRepository{bySeason: bySeason}
}

func (r *AssignmentRepository) ListByGroup(_ context.Context, seasonID, groupID string) ([]assignment.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]assignment.Assignment, 0)
	for _, item := range r.bySeason[seasonID] {
		if item.GroupID == groupID {
			out = append(out, item)
		}
	}
	sortAssignments(out)
	return out, nil
}

func (r *AssignmentRepository) ListBySeason(_ context.Context, seasonID string) ([]assignment.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]assignment.Assignment, 0, len(r.bySeason[seasonID]))
	for _, item := range r.bySeason[seasonID] {
		out = append(out, item)
	}
	sortAssignments(out)
	return out, nil
}

func (r *AssignmentRepository) UpdateFlags(_ context.Context, seasonID string, items []assignment.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.bySeason[seasonID]
	for _, item := range items {
		current, ok := rows[item.TeamID]
		if !ok {
			continue
		}
		current.PromotedNextSeason = item.PromotedNextSeason
		current.RelegatedNextSeason = item.RelegatedNextSeason
		current.PlayoffNextSeason = item.PlayoffNextSeason
		current.QualifiedForTournament = item.QualifiedForTournament
		rows[item.TeamID] = current
	}
	return nil
}

func (r *AssignmentRepository) UpdateNextGroups(_ context.Context, seasonID string, targets map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.bySeason[seasonID]
	for teamID, groupID := range targets {
		current, ok := rows[teamID]
		if !ok {
			continue
		}
		current.NextGroupID = groupID
		rows[teamID] = current
	}
	return nil
}

func (r *AssignmentRepository) CreateMany(_ context.Context, items []assignment.Assignment) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := 0
	for _, item := range items {
		rows := r.bySeason[item.SeasonID]
		if rows == nil {
			rows = make(map[string]assignment.Assignment)
			r.bySeason[item.SeasonID] = rows
		}
		if _, exists := rows[item.TeamID]; exists {
			continue
		}
		rows[item.TeamID] = item
		created++
	}
	return created, nil
}

func sortAssignments(items []assignment.Assignment) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].GroupID != items[j].GroupID {
			return items[i].GroupID < items[j].GroupID
		}
		return items[i].TeamID < items[j].TeamID
	})
}
