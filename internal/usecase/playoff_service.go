package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/league-engine/internal/domain/assignment"
	"github.com/riskibarqy/league-engine/internal/domain/division"
	"github.com/riskibarqy/league-engine/internal/domain/group"
	"github.com/riskibarqy/league-engine/internal/domain/match"
	"github.com/riskibarqy/league-engine/internal/domain/playoff"
	"github.com/riskibarqy/league-engine/internal/domain/standing"
	"github.com/riskibarqy/league-engine/internal/platform/id"
	"github.com/riskibarqy/league-engine/internal/platform/logging"
	"github.com/riskibarqy/league-engine/internal/platform/resilience"
	"github.com/sourcegraph/conc/pool"
)

type PlayoffConfig struct {
	// StartOffset is the gap between the last regular fixture and the opening round.
	StartOffset time.Duration
	// RoundGap is the gap between consecutive playoff rounds.
	RoundGap time.Duration
}

type PlayoffService struct {
	scopes         divisionScopeLoader
	assignmentRepo assignment.Repository
	matchRepo      match.Repository
	standingRepo   standing.Repository
	idGen          id.Generator
	cfg            PlayoffConfig
	logger         *logging.Logger

	// gate runs one bracket write per division at a time; joining callers
	// share its result.
	gate resilience.SingleFlight[bracketChange]
}

// bracketChange is a division scope reloaded inside the gate together with
// the fixtures the write created.
type bracketChange struct {
	scope   divisionScope
	created []match.Match
}

func NewPlayoffService(
	divisionRepo division.Repository,
	groupRepo group.Repository,
	assignmentRepo assignment.Repository,
	matchRepo match.Repository,
	standingRepo standing.Repository,
	idGen id.Generator,
	cfg PlayoffConfig,
	logger *logging.Logger,
) *PlayoffService {
	if idGen == nil {
		idGen = id.NewUUIDGenerator()
	}
	if cfg.StartOffset <= 0 {
		cfg.StartOffset = 7 * 24 * time.Hour
	}
	if cfg.RoundGap <= 0 {
		cfg.RoundGap = 7 * 24 * time.Hour
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &PlayoffService{
		scopes: divisionScopeLoader{
			divisionRepo: divisionRepo,
			groupRepo:    groupRepo,
			matchRepo:    matchRepo,
		},
		assignmentRepo: assignmentRepo,
		matchRepo:      matchRepo,
		standingRepo:   standingRepo,
		idGen:          idGen,
		cfg:            cfg,
		logger:         logger,
	}
}

// Bracket returns the playoff fixtures of a division in round then slot order.
func (s *PlayoffService) Bracket(ctx context.Context, seasonID, divisionID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayoffService.Bracket")
	defer span.End()

	scope, err := s.scopes.load(ctx, seasonID, divisionID)
	if err != nil {
		return nil, err
	}
	return bracketFixtures(scope.bracket()), nil
}

// Generate seeds the opening round once the regular schedule is complete.
// It is a no-op when the division has no playoff or fixtures already exist.
func (s *PlayoffService) Generate(ctx context.Context, seasonID, divisionID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayoffService.Generate",
		attrSeasonID.String(seasonID),
		attrDivisionID.String(divisionID),
	)
	defer span.End()

	scope, err := s.scopes.load(ctx, seasonID, divisionID)
	if err != nil {
		return nil, err
	}
	_, created, err := s.generate(ctx, scope)
	return created, err
}

// generate returns the scope as stored after the write. The scope passed in
// may be stale; the bracket is read again inside the gate.
func (s *PlayoffService) generate(ctx context.Context, scope divisionScope) (divisionScope, []match.Match, error) {
	if !scope.division.HasPlayoffs() {
		return scope, nil, nil
	}
	change, err, _ := s.gate.Do(bracketKey("generate", scope), func() (bracketChange, error) {
		return s.generateLocked(ctx, scope)
	})
	return change.scope, change.created, err
}

func (s *PlayoffService) generateLocked(ctx context.Context, scope divisionScope) (bracketChange, error) {
	scope, err := s.scopes.reloadMatches(ctx, scope)
	if err != nil {
		return bracketChange{}, err
	}
	if !scope.bracket().Empty() {
		return bracketChange{scope: scope}, nil
	}

	div := scope.division
	regular := scope.regular()
	if len(regular) == 0 {
		return bracketChange{}, fmt.Errorf("%w: division=%s has no regular fixtures", playoff.ErrScheduleIncomplete, div.ID)
	}
	if pending := match.CountPending(regular); pending > 0 {
		return bracketChange{}, fmt.Errorf("%w: division=%s pending=%d", playoff.ErrScheduleIncomplete, div.ID, pending)
	}

	tables, err := s.loadTables(ctx, scope)
	if err != nil {
		return bracketChange{}, err
	}
	pairings, err := playoff.Seed(div, tables)
	if err != nil {
		return bracketChange{}, err
	}

	startsAt := match.LatestScheduled(regular).Add(s.cfg.StartOffset)
	change, err := s.persist(ctx, scope, pairings, teamGroups(tables), startsAt)
	if err != nil || len(change.created) == 0 {
		return change, err
	}

	s.logger.InfoContext(ctx, "playoff bracket generated",
		"season_id", scope.seasonID,
		"division_id", div.ID,
		"round", pairings[0].Round,
		"fixtures", len(change.created),
		"scheduled_at", startsAt,
	)
	return change, nil
}

// Advance creates the next round once every fixture of the latest round has a
// winner. It never creates a round twice.
func (s *PlayoffService) Advance(ctx context.Context, seasonID, divisionID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayoffService.Advance")
	defer span.End()

	scope, err := s.scopes.load(ctx, seasonID, divisionID)
	if err != nil {
		return nil, err
	}
	_, created, err := s.advance(ctx, scope)
	return created, err
}

func (s *PlayoffService) advance(ctx context.Context, scope divisionScope) (divisionScope, []match.Match, error) {
	if !scope.division.HasPlayoffs() {
		return scope, nil, nil
	}
	change, err, _ := s.gate.Do(bracketKey("advance", scope), func() (bracketChange, error) {
		return s.advanceLocked(ctx, scope)
	})
	return change.scope, change.created, err
}

func (s *PlayoffService) advanceLocked(ctx context.Context, scope divisionScope) (bracketChange, error) {
	scope, err := s.scopes.reloadMatches(ctx, scope)
	if err != nil {
		return bracketChange{}, err
	}
	bracket := scope.bracket()
	if bracket.Empty() {
		return bracketChange{scope: scope}, nil
	}

	pairings, err := playoff.NextRound(bracket)
	if err != nil {
		return bracketChange{}, fmt.Errorf("advance bracket division=%s: %w", scope.division.ID, err)
	}
	if len(pairings) == 0 {
		return bracketChange{scope: scope}, nil
	}

	tables, err := s.loadTables(ctx, scope)
	if err != nil {
		return bracketChange{}, err
	}

	startsAt := match.LatestScheduled(match.Playoffs(scope.matches)).Add(s.cfg.RoundGap)
	change, err := s.persist(ctx, scope, pairings, teamGroups(tables), startsAt)
	if err != nil || len(change.created) == 0 {
		return change, err
	}

	s.logger.InfoContext(ctx, "playoff round advanced",
		"season_id", scope.seasonID,
		"division_id", scope.division.ID,
		"round", pairings[0].Round,
		"fixtures", len(change.created),
		"scheduled_at", startsAt,
	)
	return change, nil
}

// Finalize marks the teams promoted by the bracket under the division policy.
// Promoted teams lose their playoff flag, eliminated teams keep it.
func (s *PlayoffService) Finalize(ctx context.Context, seasonID, divisionID string) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayoffService.Finalize")
	defer span.End()

	scope, err := s.scopes.load(ctx, seasonID, divisionID)
	if err != nil {
		return nil, err
	}
	return s.finalize(ctx, scope)
}

func (s *PlayoffService) finalize(ctx context.Context, scope divisionScope) ([]string, error) {
	bracket := scope.bracket()
	if !bracket.FinalFinished() {
		return nil, fmt.Errorf("%w: division=%s final not finished", playoff.ErrBracketUnresolved, scope.division.ID)
	}

	promoted, err := playoff.Promoted(scope.division.PlayoffPolicy, bracket)
	if err != nil {
		return nil, fmt.Errorf("resolve promotion division=%s: %w", scope.division.ID, err)
	}

	assignments, err := listDivisionAssignments(ctx, s.assignmentRepo, scope)
	if err != nil {
		return nil, err
	}
	byTeam := assignment.ByTeam(assignments)

	updates := make([]assignment.Assignment, 0, len(promoted))
	for _, teamID := range promoted {
		item, ok := byTeam[teamID]
		if !ok {
			return nil, fmt.Errorf("%w: promoted team=%s has no assignment in division=%s", playoff.ErrMalformedBracket, teamID, scope.division.ID)
		}
		if item.PromotedNextSeason && !item.PlayoffNextSeason {
			continue
		}
		item.PromotedNextSeason = true
		item.PlayoffNextSeason = false
		item.RelegatedNextSeason = false
		item.QualifiedForTournament = false
		updates = append(updates, item)
	}

	if len(updates) > 0 {
		if err := s.assignmentRepo.UpdateFlags(ctx, scope.seasonID, updates); err != nil {
			return nil, fmt.Errorf("mark playoff promotion division=%s: %w", scope.division.ID, err)
		}
		s.logger.InfoContext(ctx, "playoff promotion finalized",
			"season_id", scope.seasonID,
			"division_id", scope.division.ID,
			"policy", scope.division.PlayoffPolicy,
			"promoted", promoted,
		)
	}
	return promoted, nil
}

// loadTables reads the stored table of every group in the division.
func (s *PlayoffService) loadTables(ctx context.Context, scope divisionScope) ([]playoff.GroupTable, error) {
	p := pool.NewWithResults[playoff.GroupTable]().WithContext(ctx).WithCancelOnError()
	for _, item := range scope.groups {
		p.Go(func(ctx context.Context) (playoff.GroupTable, error) {
			rows, err := s.standingRepo.ListByGroup(ctx, scope.seasonID, item.ID)
			if err != nil {
				return playoff.GroupTable{}, fmt.Errorf("list standings season=%s group=%s: %w", scope.seasonID, item.ID, err)
			}
			return playoff.GroupTable{Group: item, Standings: rows}, nil
		})
	}

	tables, err := p.Wait()
	if err != nil {
		return nil, err
	}
	return tables, nil
}

// persist writes one round of fixtures. When another writer already stored
// the round, it returns the stored bracket and creates nothing.
func (s *PlayoffService) persist(ctx context.Context, scope divisionScope, pairings []playoff.Pairing, groups map[string]string, at time.Time) (bracketChange, error) {
	items := make([]match.Match, 0, len(pairings))
	for _, pairing := range pairings {
		groupID, ok := groups[pairing.HomeTeamID]
		if !ok {
			return bracketChange{}, fmt.Errorf("%w: team=%s has no group", playoff.ErrMalformedBracket, pairing.HomeTeamID)
		}
		matchID, err := s.idGen.NewID()
		if err != nil {
			return bracketChange{}, fmt.Errorf("generate playoff match id: %w", err)
		}
		items = append(items, match.Match{
			ID:           matchID,
			GroupID:      groupID,
			SeasonID:     scope.seasonID,
			HomeTeamID:   pairing.HomeTeamID,
			AwayTeamID:   pairing.AwayTeamID,
			ScheduledAt:  at.UTC(),
			Status:       match.StatusScheduled,
			IsPlayoff:    true,
			PlayoffRound: pairing.Round,
			PlayoffSlot:  pairing.Slot,
		})
	}

	err := s.matchRepo.CreateMany(ctx, items)
	if errors.Is(err, match.ErrDuplicateFixture) {
		s.logger.InfoContext(ctx, "playoff round already stored",
			"season_id", scope.seasonID,
			"division_id", scope.division.ID,
			"round", pairings[0].Round,
		)
		stored, err := s.scopes.reloadMatches(ctx, scope)
		if err != nil {
			return bracketChange{}, err
		}
		return bracketChange{scope: stored}, nil
	}
	if err != nil {
		return bracketChange{}, fmt.Errorf("create playoff fixtures season=%s: %w", scope.seasonID, err)
	}

	scope.matches = append(append(make([]match.Match, 0, len(scope.matches)+len(items)), scope.matches...), items...)
	return bracketChange{scope: scope, created: items}, nil
}

func bracketKey(op string, scope divisionScope) string {
	return op + ":" + scope.seasonID + ":" + scope.division.ID
}

func teamGroups(tables []playoff.GroupTable) map[string]string {
	out := make(map[string]string)
	for _, table := range tables {
		for _, row := range table.Standings {
			out[row.TeamID] = table.Group.ID
		}
	}
	return out
}

func bracketFixtures(b playoff.Bracket) []match.Match {
	out := make([]match.Match, 0, b.Size())
	for _, round := range []match.Round{match.RoundQuarterfinal, match.RoundSemifinal, match.RoundFinal} {
		out = append(out, b.Round(round)...)
	}
	return out
}

func listDivisionAssignments(ctx context.Context, repo assignment.Repository, scope divisionScope) ([]assignment.Assignment, error) {
	out := make([]assignment.Assignment, 0)
	for _, item := range scope.groups {
		rows, err := repo.ListByGroup(ctx, scope.seasonID, item.ID)
		if err != nil {
			return nil, fmt.Errorf("list assignments season=%s group=%s: %w", scope.seasonID, item.ID, err)
		}
		out = append(out, rows...)
	}
	return out, nil
}
