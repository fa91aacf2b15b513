package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/league-engine/internal/domain/assignment"
	"github.com/riskibarqy/league-engine/internal/domain/division"
	"github.com/riskibarqy/league-engine/internal/domain/group"
	"github.com/riskibarqy/league-engine/internal/domain/match"
	"github.com/riskibarqy/league-engine/internal/domain/outcome"
	"github.com/riskibarqy/league-engine/internal/domain/season"
	"github.com/riskibarqy/league-engine/internal/domain/standing"
	"github.com/riskibarqy/league-engine/internal/domain/team"
	"github.com/riskibarqy/league-engine/internal/platform/logging"
	"github.com/riskibarqy/league-engine/internal/platform/resilience"
)

// GroupTable is a ranked group table together with the outcome of every team.
type GroupTable struct {
	SeasonID   string                   `json:"season_id"`
	Group      group.Group              `json:"group"`
	DivisionID string                   `json:"division_id"`
	Standings  []standing.Standing      `json:"standings"`
	Labels     map[string]outcome.Label `json:"labels"`
}

type StandingService struct {
	seasonRepo     season.Repository
	divisionRepo   division.Repository
	groupRepo      group.Repository
	teamRepo       team.Repository
	assignmentRepo assignment.Repository
	matchRepo      match.Repository
	standingRepo   standing.Repository
	fallback       standing.DrawFallback
	gate           resilience.SingleFlight[GroupTable]
	writes         resilience.KeyedMutex
	logger         *logging.Logger
}

func NewStandingService(
	seasonRepo season.Repository,
	divisionRepo division.Repository,
	groupRepo group.Repository,
	teamRepo team.Repository,
	assignmentRepo assignment.Repository,
	matchRepo match.Repository,
	standingRepo standing.Repository,
	fallback standing.DrawFallback,
	logger *logging.Logger,
) *StandingService {
	if fallback == nil {
		fallback = standing.RandomDraw{}
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &StandingService{
		seasonRepo:     seasonRepo,
		divisionRepo:   divisionRepo,
		groupRepo:      groupRepo,
		teamRepo:       teamRepo,
		assignmentRepo: assignmentRepo,
		matchRepo:      matchRepo,
		standingRepo:   standingRepo,
		fallback:       fallback,
		logger:         logger,
	}
}

// ListByGroup returns the persisted table of a group.
func (s *StandingService) ListByGroup(ctx context.Context, seasonID, groupID string) ([]standing.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.ListByGroup")
	defer span.End()

	seasonID, groupID, err := normalizeGroupRef(seasonID, groupID)
	if err != nil {
		return nil, err
	}

	items, err := s.standingRepo.ListByGroup(ctx, seasonID, groupID)
	if err != nil {
		return nil, fmt.Errorf("list standings season=%s group=%s: %w", seasonID, groupID, err)
	}
	return items, nil
}

// Live computes the current table of a group from its results without writing it.
func (s *StandingService) Live(ctx context.Context, seasonID, groupID string) (GroupTable, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.Live")
	defer span.End()

	seasonID, groupID, err := normalizeGroupRef(seasonID, groupID)
	if err != nil {
		return GroupTable{}, err
	}

	item, err := s.getGroup(ctx, groupID)
	if err != nil {
		return GroupTable{}, err
	}
	div, bottomLevel, err := s.divisionOf(ctx, item)
	if err != nil {
		return GroupTable{}, err
	}
	table, _, err := s.tabulate(ctx, seasonID, item)
	if err != nil {
		return GroupTable{}, err
	}

	return GroupTable{
		SeasonID:   seasonID,
		Group:      item,
		DivisionID: div.ID,
		Standings:  table,
		Labels:     outcome.Classify(table, div, bottomLevel),
	}, nil
}

// Recompute rebuilds a group's table from scratch, replaces the stored rows and
// re-applies outcome flags to the group's assignments. Concurrent calls for the
// same group and policy share one execution; writes to a group never overlap.
func (s *StandingService) Recompute(ctx context.Context, seasonID, groupID string, policy outcome.Policy) (GroupTable, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.Recompute",
		attrSeasonID.String(seasonID),
		attrGroupID.String(groupID),
	)
	defer span.End()

	seasonID, groupID, err := normalizeGroupRef(seasonID, groupID)
	if err != nil {
		return GroupTable{}, err
	}

	groupKey := seasonID + ":" + groupID
	result, err, shared := s.gate.Do(groupKey+":"+policy.String(), func() (GroupTable, error) {
		unlock := s.writes.Lock(groupKey)
		defer unlock()
		return s.recompute(ctx, seasonID, groupID, policy)
	})
	if err != nil {
		return GroupTable{}, err
	}
	if shared {
		s.logger.DebugContext(ctx, "joined in-flight standings recompute", "season_id", seasonID, "group_id", groupID)
	}
	return result, nil
}

func (s *StandingService) recompute(ctx context.Context, seasonID, groupID string, policy outcome.Policy) (GroupTable, error) {
	current, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return GroupTable{}, fmt.Errorf("get season=%s: %w", seasonID, err)
	}
	if !exists {
		return GroupTable{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}
	if current.IsClosed() {
		return GroupTable{}, fmt.Errorf("%w: season=%s", ErrSeasonClosed, seasonID)
	}

	item, err := s.getGroup(ctx, groupID)
	if err != nil {
		return GroupTable{}, err
	}
	div, bottomLevel, err := s.divisionOf(ctx, item)
	if err != nil {
		return GroupTable{}, err
	}

	table, assignments, err := s.tabulate(ctx, seasonID, item)
	if err != nil {
		return GroupTable{}, err
	}
	if err := s.standingRepo.ReplaceByGroup(ctx, seasonID, groupID, table); err != nil {
		return GroupTable{}, fmt.Errorf("replace standings season=%s group=%s: %w", seasonID, groupID, err)
	}

	labels := outcome.Classify(table, div, bottomLevel)
	updated := outcome.Apply(assignments, labels, policy)
	if err := s.assignmentRepo.UpdateFlags(ctx, seasonID, updated); err != nil {
		return GroupTable{}, fmt.Errorf("update outcome flags season=%s group=%s: %w", seasonID, groupID, err)
	}

	counts := outcome.Count(labels)
	s.logger.InfoContext(ctx, "group standings recomputed",
		"season_id", seasonID,
		"division_id", div.ID,
		"group_id", groupID,
		"teams", len(table),
		"promotion", counts[outcome.LabelPromotion],
		"playoff", counts[outcome.LabelPlayoff],
		"relegation", counts[outcome.LabelRelegation],
		"preserve_promotion", policy.PreservePromotion,
	)

	return GroupTable{
		SeasonID:   seasonID,
		Group:      item,
		DivisionID: div.ID,
		Standings:  table,
		Labels:     labels,
	}, nil
}

// tabulate ranks the teams assigned to a group using its finished regular matches.
func (s *StandingService) tabulate(ctx context.Context, seasonID string, item group.Group) ([]standing.Standing, []assignment.Assignment, error) {
	assignments, err := s.assignmentRepo.ListByGroup(ctx, seasonID, item.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list assignments season=%s group=%s: %w", seasonID, item.ID, err)
	}

	teamIDs := assignment.TeamIDs(assignments)
	teams, err := s.teamRepo.ListByIDs(ctx, teamIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("list teams group=%s: %w", item.ID, err)
	}
	popularity := make(map[string]int, len(teams))
	for _, t := range teams {
		popularity[t.ID] = t.Popularity
	}

	entrants := make([]standing.Entrant, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		entrants = append(entrants, standing.Entrant{TeamID: teamID, Popularity: popularity[teamID]})
	}

	matches, err := s.matchRepo.ListByGroups(ctx, seasonID, []string{item.ID})
	if err != nil {
		return nil, nil, fmt.Errorf("list matches season=%s group=%s: %w", seasonID, item.ID, err)
	}
	regular := match.Regular(matches)

	table := standing.Rank(standing.Calculate(entrants, regular), regular, s.fallback)
	for i := range table {
		table[i].SeasonID = seasonID
		table[i].GroupID = item.ID
	}
	return table, assignments, nil
}

func (s *StandingService) getGroup(ctx context.Context, groupID string) (group.Group, error) {
	item, exists, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return group.Group{}, fmt.Errorf("get group=%s: %w", groupID, err)
	}
	if !exists {
		return group.Group{}, fmt.Errorf("%w: group=%s", ErrNotFound, groupID)
	}
	return item, nil
}

// divisionOf returns the group's division and the level of the bottom division.
func (s *StandingService) divisionOf(ctx context.Context, item group.Group) (division.Division, int, error) {
	divisions, err := s.divisionRepo.List(ctx)
	if err != nil {
		return division.Division{}, 0, fmt.Errorf("list divisions: %w", err)
	}
	for _, div := range divisions {
		if div.ID == item.DivisionID {
			return div, division.BottomLevel(divisions), nil
		}
	}
	return division.Division{}, 0, fmt.Errorf("%w: division=%s of group=%s", ErrNotFound, item.DivisionID, item.ID)
}

func normalizeGroupRef(seasonID, groupID string) (string, string, error) {
	seasonID = strings.TrimSpace(seasonID)
	groupID = strings.TrimSpace(groupID)
	if seasonID == "" {
		return "", "", fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	if groupID == "" {
		return "", "", fmt.Errorf("%w: group id is required", ErrInvalidInput)
	}
	return seasonID, groupID, nil
}
