package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/league-engine/internal/domain/division"
	"github.com/riskibarqy/league-engine/internal/domain/group"
	"github.com/riskibarqy/league-engine/internal/domain/match"
	"github.com/riskibarqy/league-engine/internal/domain/playoff"
)

// divisionScope is a division with its groups and every match of the season
// played in those groups.
type divisionScope struct {
	seasonID string
	division division.Division
	groups   []group.Group
	matches  []match.Match
}

func (d divisionScope) regular() []match.Match {
	return match.Regular(d.matches)
}

func (d divisionScope) bracket() playoff.Bracket {
	return playoff.NewBracket(match.Playoffs(d.matches))
}

type divisionScopeLoader struct {
	divisionRepo division.Repository
	groupRepo    group.Repository
	matchRepo    match.Repository
}

func (l divisionScopeLoader) load(ctx context.Context, seasonID, divisionID string) (divisionScope, error) {
	seasonID = strings.TrimSpace(seasonID)
	divisionID = strings.TrimSpace(divisionID)
	if seasonID == "" {
		return divisionScope{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	if divisionID == "" {
		return divisionScope{}, fmt.Errorf("%w: division id is required", ErrInvalidInput)
	}

	div, exists, err := l.divisionRepo.GetByID(ctx, divisionID)
	if err != nil {
		return divisionScope{}, fmt.Errorf("get division=%s: %w", divisionID, err)
	}
	if !exists {
		return divisionScope{}, fmt.Errorf("%w: division=%s", ErrNotFound, divisionID)
	}
	return l.loadDivision(ctx, seasonID, div)
}

// reloadMatches reads the scope's matches again, keeping division and groups.
func (l divisionScopeLoader) reloadMatches(ctx context.Context, scope divisionScope) (divisionScope, error) {
	matches, err := l.matchRepo.ListByGroups(ctx, scope.seasonID, group.IDs(scope.groups))
	if err != nil {
		return divisionScope{}, fmt.Errorf("list matches season=%s division=%s: %w", scope.seasonID, scope.division.ID, err)
	}
	scope.matches = matches
	return scope, nil
}

func (l divisionScopeLoader) loadDivision(ctx context.Context, seasonID string, div division.Division) (divisionScope, error) {
	if err := div.Validate(); err != nil {
		return divisionScope{}, err
	}

	groups, err := l.groupRepo.ListByDivision(ctx, div.ID)
	if err != nil {
		return divisionScope{}, fmt.Errorf("list groups division=%s: %w", div.ID, err)
	}
	group.SortByCode(groups)

	matches, err := l.matchRepo.ListByGroups(ctx, seasonID, group.IDs(groups))
	if err != nil {
		return divisionScope{}, fmt.Errorf("list matches season=%s division=%s: %w", seasonID, div.ID, err)
	}

	return divisionScope{
		seasonID: seasonID,
		division: div,
		groups:   groups,
		matches:  matches,
	}, nil
}
