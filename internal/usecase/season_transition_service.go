package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/league-engine/internal/domain/assignment"
	"github.com/riskibarqy/league-engine/internal/domain/division"
	"github.com/riskibarqy/league-engine/internal/domain/domainerr"
	"github.com/riskibarqy/league-engine/internal/domain/group"
	"github.com/riskibarqy/league-engine/internal/domain/match"
	"github.com/riskibarqy/league-engine/internal/domain/outcome"
	"github.com/riskibarqy/league-engine/internal/domain/playoff"
	"github.com/riskibarqy/league-engine/internal/domain/season"
	"github.com/riskibarqy/league-engine/internal/domain/standing"
	"github.com/riskibarqy/league-engine/internal/domain/transition"
	"github.com/riskibarqy/league-engine/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const (
	DivisionStatusProcessed = "processed"
	DivisionStatusSkipped   = "skipped"
	DivisionStatusFailed    = "failed"
)

type SeasonTransitionConfig struct {
	// DivisionWorkers bounds how many divisions a match day processes at once.
	DivisionWorkers int
}

// DivisionReport describes what one trigger did to one division.
type DivisionReport struct {
	DivisionID      string         `json:"division_id"`
	Level           int            `json:"level"`
	PreviousPhase   season.Phase   `json:"previous_phase,omitempty"`
	Phase           season.Phase   `json:"phase,omitempty"`
	GroupsRefreshed int            `json:"groups_refreshed"`
	CreatedFixtures int            `json:"created_fixtures"`
	Promoted        []string       `json:"promoted,omitempty"`
	Status          string         `json:"status"`
	ErrorKind       domainerr.Kind `json:"error_kind,omitempty"`
	Error           string         `json:"error,omitempty"`
}

type MatchDayResult struct {
	SeasonID       string           `json:"season_id"`
	Divisions      []DivisionReport `json:"divisions"`
	ProcessedCount int              `json:"processed_count"`
	SkippedCount   int              `json:"skipped_count"`
	FailedCount    int              `json:"failed_count"`
	Planned        bool             `json:"planned"`
	PlanError      string           `json:"plan_error,omitempty"`
}

type PlanResult struct {
	SeasonID  string            `json:"season_id"`
	Moves     []transition.Move `json:"moves"`
	Stayed    int               `json:"stayed"`
	Promoted  int               `json:"promoted"`
	Relegated int               `json:"relegated"`
}

type RolloverInput struct {
	FromSeasonID string
	ToSeasonID   string
	Name         string
	StartsOn     time.Time
	EndsOn       time.Time
}

type RolloverResult struct {
	FromSeasonID       string    `json:"from_season_id"`
	ToSeasonID         string    `json:"to_season_id"`
	SeasonCreated      bool      `json:"season_created"`
	AssignmentsCreated int       `json:"assignments_created"`
	ClosedAt           time.Time `json:"closed_at"`
}

// DivisionOverview is the read model of one division: phase, live tables and bracket.
type DivisionOverview struct {
	SeasonID string            `json:"season_id"`
	Division division.Division `json:"division"`
	Phase    season.Phase      `json:"phase"`
	Groups   []GroupTable      `json:"groups"`
	Playoffs []match.Match     `json:"playoffs"`
}

type SeasonTransitionService struct {
	seasonRepo     season.Repository
	divisionRepo   division.Repository
	assignmentRepo assignment.Repository
	standingRepo   standing.Repository
	scopes         divisionScopeLoader
	standings      *StandingService
	playoffs       *PlayoffService
	cfg            SeasonTransitionConfig
	logger         *logging.Logger
	now            func() time.Time
}

func NewSeasonTransitionService(
	seasonRepo season.Repository,
	divisionRepo division.Repository,
	groupRepo group.Repository,
	assignmentRepo assignment.Repository,
	matchRepo match.Repository,
	standingRepo standing.Repository,
	standings *StandingService,
	playoffs *PlayoffService,
	cfg SeasonTransitionConfig,
	logger *logging.Logger,
) *SeasonTransitionService {
	if cfg.DivisionWorkers < 1 {
		cfg.DivisionWorkers = 1
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &SeasonTransitionService{
		seasonRepo:     seasonRepo,
		divisionRepo:   divisionRepo,
		assignmentRepo: assignmentRepo,
		standingRepo:   standingRepo,
		scopes: divisionScopeLoader{
			divisionRepo: divisionRepo,
			groupRepo:    groupRepo,
			matchRepo:    matchRepo,
		},
		standings: standings,
		playoffs:  playoffs,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// RunMatchDay processes every division of the season once. A failure in one
// division never stops the others. When all divisions have finalized their
// consequences the next season is planned.
func (s *SeasonTransitionService) RunMatchDay(ctx context.Context, seasonID string) (MatchDayResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonTransitionService.RunMatchDay", attrSeasonID.String(seasonID))
	defer span.End()

	current, err := s.resolveSeason(ctx, seasonID)
	if err != nil {
		return MatchDayResult{}, err
	}

	divisions, err := s.divisionRepo.List(ctx)
	if err != nil {
		return MatchDayResult{}, fmt.Errorf("list divisions: %w", err)
	}
	division.SortByLevel(divisions)

	reports, err := s.processAll(ctx, current.ID, divisions)
	if err != nil {
		return MatchDayResult{}, err
	}

	result := MatchDayResult{SeasonID: current.ID, Divisions: reports}
	finalized, planned := len(reports) > 0, len(reports) > 0
	for _, report := range reports {
		switch report.Status {
		case DivisionStatusProcessed:
			result.ProcessedCount++
		case DivisionStatusSkipped:
			result.SkippedCount++
		default:
			result.FailedCount++
		}
		if report.Status != DivisionStatusProcessed || !report.Phase.AtLeast(season.PhaseConsequencesFinalized) {
			finalized = false
		}
		if report.Phase != season.PhaseNextSeasonPlanned {
			planned = false
		}
	}

	switch {
	case planned:
		result.Planned = true
	case finalized:
		if _, err := s.PlanNextSeason(ctx, current.ID); err != nil {
			result.PlanError = err.Error()
			s.logger.ErrorContext(ctx, "plan next season failed", "season_id", current.ID, "error_kind", domainerr.KindOf(err), "error", err)
		} else {
			result.Planned = true
			for i := range result.Divisions {
				result.Divisions[i].Phase = season.PhaseNextSeasonPlanned
			}
		}
	}

	s.logger.InfoContext(ctx, "match day processed",
		"season_id", current.ID,
		"divisions", len(reports),
		"processed", result.ProcessedCount,
		"skipped", result.SkippedCount,
		"failed", result.FailedCount,
		"planned", result.Planned,
	)
	return result, nil
}

func (s *SeasonTransitionService) processAll(ctx context.Context, seasonID string, divisions []division.Division) ([]DivisionReport, error) {
	if len(divisions) == 0 {
		return nil, nil
	}

	workerCount := s.cfg.DivisionWorkers
	if workerCount > len(divisions) {
		workerCount = len(divisions)
	}
	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	results := make(chan DivisionReport, len(divisions))
	var workers sync.WaitGroup
	for _, div := range divisions {
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()
			results <- s.runDivision(ctx, seasonID, div)
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()
	close(results)

	reports := make([]DivisionReport, 0, len(divisions))
	for report := range results {
		reports = append(reports, report)
	}
	sort.SliceStable(reports, func(i, j int) bool {
		if reports[i].Level != reports[j].Level {
			return reports[i].Level < reports[j].Level
		}
		return reports[i].DivisionID < reports[j].DivisionID
	})
	return reports, nil
}

func (s *SeasonTransitionService) runDivision(ctx context.Context, seasonID string, div division.Division) DivisionReport {
	report := DivisionReport{DivisionID: div.ID, Level: div.Level}
	scope, err := s.scopes.loadDivision(ctx, seasonID, div)
	if err == nil {
		report, err = s.processDivision(ctx, scope)
	}

	switch kind := domainerr.KindOf(err); {
	case err == nil:
		report.Status = DivisionStatusProcessed
	case !domainerr.IsFatal(err):
		report.Status = DivisionStatusSkipped
		report.ErrorKind = kind
		report.Error = err.Error()
		s.logger.WarnContext(ctx, "division skipped for this cycle",
			"season_id", seasonID,
			"division_id", div.ID,
			"phase", report.Phase,
			"error", err,
		)
	default:
		report.Status = DivisionStatusFailed
		report.ErrorKind = kind
		report.Error = err.Error()
		s.logger.ErrorContext(ctx, "division processing aborted",
			"season_id", seasonID,
			"division_id", div.ID,
			"phase", report.Phase,
			"error_kind", kind,
			"error", err,
		)
	}
	return report
}

// ProcessDivision refreshes a division and moves it as far through its
// lifecycle as the recorded results allow. Repeated calls without new results
// change nothing.
func (s *SeasonTransitionService) ProcessDivision(ctx context.Context, seasonID, divisionID string) (DivisionReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonTransitionService.ProcessDivision",
		attrSeasonID.String(seasonID),
		attrDivisionID.String(divisionID),
	)
	defer span.End()

	if _, err := s.openSeason(ctx, seasonID); err != nil {
		return DivisionReport{}, err
	}
	scope, err := s.scopes.load(ctx, seasonID, divisionID)
	if err != nil {
		return DivisionReport{}, err
	}

	report, err := s.processDivision(ctx, scope)
	if err != nil {
		return report, failSpan(span, err)
	}
	report.Status = DivisionStatusProcessed
	span.SetAttributes(attrPhase.String(string(report.Phase)))
	return report, nil
}

func (s *SeasonTransitionService) processDivision(ctx context.Context, scope divisionScope) (DivisionReport, error) {
	div := scope.division
	report := DivisionReport{DivisionID: div.ID, Level: div.Level}

	snap, err := s.snapshot(ctx, scope)
	if err != nil {
		return report, err
	}
	entry := season.Derive(snap)
	report.PreviousPhase = entry
	report.Phase = entry

	policy := outcome.Policy{PreservePromotion: snap.PreservesPromotion()}
	for _, item := range scope.groups {
		if _, err := s.standings.Recompute(ctx, scope.seasonID, item.ID, policy); err != nil {
			return report, err
		}
		report.GroupsRefreshed++
	}

	phase := season.PhaseRegularInProgress
	report.Phase = phase
	step := func(to season.Phase) error {
		if err := season.Transition(phase, to); err != nil {
			return fmt.Errorf("division=%s: %w", div.ID, err)
		}
		if !entry.AtLeast(to) {
			s.logger.InfoContext(ctx, "division phase advanced",
				"season_id", scope.seasonID,
				"division_id", div.ID,
				"from", phase,
				"to", to,
			)
		}
		phase = to
		report.Phase = to
		return nil
	}

	if snap.RegularPending > 0 {
		return report, nil
	}
	if err := step(season.PhaseRegularComplete); err != nil {
		return report, err
	}

	if !div.HasPlayoffs() {
		if err := step(season.PhasePlayoffsNone); err != nil {
			return report, err
		}
	} else {
		var created []match.Match
		scope, created, err = s.playoffs.generate(ctx, scope)
		if err != nil {
			return report, err
		}
		report.CreatedFixtures += len(created)
		if err := step(season.PhasePlayoffsInProgress); err != nil {
			return report, err
		}

		scope, created, err = s.playoffs.advance(ctx, scope)
		if err != nil {
			return report, err
		}
		report.CreatedFixtures += len(created)
		if !scope.bracket().FinalFinished() {
			return report, nil
		}

		if err := step(season.PhasePlayoffsComplete); err != nil {
			return report, err
		}
		promoted, err := s.playoffs.finalize(ctx, scope)
		if err != nil {
			return report, err
		}
		report.Promoted = promoted
	}

	if err := step(season.PhaseConsequencesFinalized); err != nil {
		return report, err
	}
	if snap.Planned {
		if err := step(season.PhaseNextSeasonPlanned); err != nil {
			return report, err
		}
	}
	return report, nil
}

// RefreshGroup recomputes one group outside the match-day cycle, keeping
// bracket promotions once playoff fixtures exist.
func (s *SeasonTransitionService) RefreshGroup(ctx context.Context, seasonID, groupID string) (GroupTable, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonTransitionService.RefreshGroup")
	defer span.End()

	seasonID, groupID, err := normalizeGroupRef(seasonID, groupID)
	if err != nil {
		return GroupTable{}, err
	}
	if _, err := s.openSeason(ctx, seasonID); err != nil {
		return GroupTable{}, err
	}

	item, exists, err := s.scopes.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return GroupTable{}, fmt.Errorf("get group=%s: %w", groupID, err)
	}
	if !exists {
		return GroupTable{}, fmt.Errorf("%w: group=%s", ErrNotFound, groupID)
	}
	scope, err := s.scopes.load(ctx, seasonID, item.DivisionID)
	if err != nil {
		return GroupTable{}, err
	}
	snap, err := s.snapshot(ctx, scope)
	if err != nil {
		return GroupTable{}, err
	}

	return s.standings.Recompute(ctx, seasonID, groupID, outcome.Policy{PreservePromotion: snap.PreservesPromotion()})
}

// Phase derives the current lifecycle phase of a division.
func (s *SeasonTransitionService) Phase(ctx context.Context, seasonID, divisionID string) (season.Phase, error) {
	scope, err := s.scopes.load(ctx, seasonID, divisionID)
	if err != nil {
		return "", err
	}
	snap, err := s.snapshot(ctx, scope)
	if err != nil {
		return "", err
	}
	return season.Derive(snap), nil
}

func (s *SeasonTransitionService) snapshot(ctx context.Context, scope divisionScope) (season.Snapshot, error) {
	regular := scope.regular()
	bracket := scope.bracket()

	snap := season.Snapshot{
		RegularPending:     match.CountPending(regular),
		PlayoffsConfigured: scope.division.HasPlayoffs(),
		PlayoffFixtures:    bracket.Size(),
		PlayoffPending:     bracket.Pending(),
		FinalFinished:      bracket.FinalFinished(),
	}
	// A division whose schedule has not been published is still in progress.
	if len(regular) == 0 {
		snap.RegularPending = 1
	}

	assignments, err := listDivisionAssignments(ctx, s.assignmentRepo, scope)
	if err != nil {
		return season.Snapshot{}, err
	}

	if snap.PlayoffsConfigured && snap.FinalFinished {
		promoted, err := playoff.Promoted(scope.division.PlayoffPolicy, bracket)
		if err != nil {
			return season.Snapshot{}, fmt.Errorf("resolve promotion division=%s: %w", scope.division.ID, err)
		}
		byTeam := assignment.ByTeam(assignments)
		snap.PromotionFinalized = true
		for _, teamID := range promoted {
			item, ok := byTeam[teamID]
			if !ok || !item.PromotedNextSeason || item.PlayoffNextSeason {
				snap.PromotionFinalized = false
				break
			}
		}
	}

	snap.Planned = len(assignments) > 0
	for _, item := range assignments {
		if strings.TrimSpace(item.NextGroupID) == "" {
			snap.Planned = false
			break
		}
	}
	return snap, nil
}

// PlanNextSeason computes and stores the next-season group of every team.
// Every division must have finalized its consequences.
func (s *SeasonTransitionService) PlanNextSeason(ctx context.Context, seasonID string) (PlanResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonTransitionService.PlanNextSeason")
	defer span.End()

	current, err := s.openSeason(ctx, seasonID)
	if err != nil {
		return PlanResult{}, err
	}

	divisions, err := s.divisionRepo.List(ctx)
	if err != nil {
		return PlanResult{}, fmt.Errorf("list divisions: %w", err)
	}
	if len(divisions) == 0 {
		return PlanResult{}, fmt.Errorf("%w: no divisions configured", ErrPreconditionFailed)
	}
	division.SortByLevel(divisions)

	p := pool.NewWithResults[transition.DivisionInput]().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(s.cfg.DivisionWorkers)
	for _, div := range divisions {
		p.Go(func(ctx context.Context) (transition.DivisionInput, error) {
			return s.planInput(ctx, current.ID, div)
		})
	}
	inputs, err := p.Wait()
	if err != nil {
		return PlanResult{}, err
	}

	plan, err := transition.Build(inputs)
	if err != nil {
		return PlanResult{}, fmt.Errorf("build next season plan season=%s: %w", current.ID, err)
	}
	if err := s.assignmentRepo.UpdateNextGroups(ctx, current.ID, plan.Targets()); err != nil {
		return PlanResult{}, fmt.Errorf("store next season plan season=%s: %w", current.ID, err)
	}

	result := PlanResult{
		SeasonID:  current.ID,
		Moves:     plan.Moves,
		Stayed:    plan.Count(transition.MoveStay),
		Promoted:  plan.Count(transition.MovePromote),
		Relegated: plan.Count(transition.MoveRelegate),
	}
	s.logger.InfoContext(ctx, "next season planned",
		"season_id", current.ID,
		"teams", len(plan.Moves),
		"stayed", result.Stayed,
		"promoted", result.Promoted,
		"relegated", result.Relegated,
	)
	return result, nil
}

func (s *SeasonTransitionService) planInput(ctx context.Context, seasonID string, div division.Division) (transition.DivisionInput, error) {
	scope, err := s.scopes.loadDivision(ctx, seasonID, div)
	if err != nil {
		return transition.DivisionInput{}, err
	}
	snap, err := s.snapshot(ctx, scope)
	if err != nil {
		return transition.DivisionInput{}, err
	}
	if phase := season.Derive(snap); !phase.AtLeast(season.PhaseConsequencesFinalized) {
		return transition.DivisionInput{}, fmt.Errorf("%w: division=%s phase=%s", ErrPreconditionFailed, div.ID, phase)
	}

	entries := make([]transition.Entry, 0)
	for _, item := range scope.groups {
		assignments, err := s.assignmentRepo.ListByGroup(ctx, seasonID, item.ID)
		if err != nil {
			return transition.DivisionInput{}, fmt.Errorf("list assignments season=%s group=%s: %w", seasonID, item.ID, err)
		}
		rows, err := s.standingRepo.ListByGroup(ctx, seasonID, item.ID)
		if err != nil {
			return transition.DivisionInput{}, fmt.Errorf("list standings season=%s group=%s: %w", seasonID, item.ID, err)
		}
		positions := make(map[string]int, len(rows))
		for _, row := range rows {
			positions[row.TeamID] = row.Position
		}
		for _, a := range assignments {
			entries = append(entries, transition.Entry{
				TeamID:    a.TeamID,
				GroupID:   a.GroupID,
				Position:  positions[a.TeamID],
				Promoted:  a.PromotedNextSeason,
				Relegated: a.RelegatedNextSeason,
			})
		}
	}

	return transition.DivisionInput{Division: div, Groups: scope.groups, Entries: entries}, nil
}

// ExecutePlan opens the next season from a stored plan and closes the current
// one. Running it again is safe.
func (s *SeasonTransitionService) ExecutePlan(ctx context.Context, input RolloverInput) (RolloverResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonTransitionService.ExecutePlan")
	defer span.End()

	fromID := strings.TrimSpace(input.FromSeasonID)
	toID := strings.TrimSpace(input.ToSeasonID)
	if fromID == "" || toID == "" {
		return RolloverResult{}, fmt.Errorf("%w: from and to season ids are required", ErrInvalidInput)
	}
	if fromID == toID {
		return RolloverResult{}, fmt.Errorf("%w: next season must differ from season=%s", ErrInvalidInput, fromID)
	}

	from, exists, err := s.seasonRepo.GetByID(ctx, fromID)
	if err != nil {
		return RolloverResult{}, fmt.Errorf("get season=%s: %w", fromID, err)
	}
	if !exists {
		return RolloverResult{}, fmt.Errorf("%w: season=%s", ErrNotFound, fromID)
	}

	assignments, err := s.assignmentRepo.ListBySeason(ctx, fromID)
	if err != nil {
		return RolloverResult{}, fmt.Errorf("list assignments season=%s: %w", fromID, err)
	}
	if len(assignments) == 0 {
		return RolloverResult{}, fmt.Errorf("%w: season=%s has no assignments", ErrPreconditionFailed, fromID)
	}
	next := make([]assignment.Assignment, 0, len(assignments))
	for _, item := range assignments {
		if strings.TrimSpace(item.NextGroupID) == "" {
			return RolloverResult{}, fmt.Errorf("%w: season=%s team=%s has no next-season group", ErrPreconditionFailed, fromID, item.TeamID)
		}
		next = append(next, assignment.Assignment{
			TeamID:   item.TeamID,
			GroupID:  item.NextGroupID,
			SeasonID: toID,
		})
	}

	result := RolloverResult{FromSeasonID: fromID, ToSeasonID: toID}
	to, exists, err := s.seasonRepo.GetByID(ctx, toID)
	if err != nil {
		return RolloverResult{}, fmt.Errorf("get season=%s: %w", toID, err)
	}
	if exists && to.IsClosed() {
		return RolloverResult{}, fmt.Errorf("%w: season=%s", ErrSeasonClosed, toID)
	}
	if !exists {
		to = season.Season{
			ID:       toID,
			Name:     strings.TrimSpace(input.Name),
			Active:   true,
			StartsOn: input.StartsOn,
			EndsOn:   input.EndsOn,
		}
		if to.Name == "" {
			to.Name = toID
		}
		if err := to.Validate(); err != nil {
			return RolloverResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if err := s.seasonRepo.Create(ctx, to); err != nil {
			return RolloverResult{}, fmt.Errorf("create season=%s: %w", toID, err)
		}
		result.SeasonCreated = true
	}

	created, err := s.assignmentRepo.CreateMany(ctx, next)
	if err != nil {
		return RolloverResult{}, fmt.Errorf("create assignments season=%s: %w", toID, err)
	}
	result.AssignmentsCreated = created

	if from.IsClosed() {
		result.ClosedAt = from.ClosedAt.UTC()
	} else {
		closedAt := s.now().UTC()
		if err := s.seasonRepo.Close(ctx, fromID, closedAt); err != nil {
			return RolloverResult{}, fmt.Errorf("close season=%s: %w", fromID, err)
		}
		result.ClosedAt = closedAt
	}

	s.logger.InfoContext(ctx, "season rolled over",
		"from_season_id", fromID,
		"to_season_id", toID,
		"season_created", result.SeasonCreated,
		"assignments_created", created,
	)
	return result, nil
}

// Overview returns the live state of a division without writing anything.
func (s *SeasonTransitionService) Overview(ctx context.Context, seasonID, divisionID string) (DivisionOverview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonTransitionService.Overview")
	defer span.End()

	scope, err := s.scopes.load(ctx, seasonID, divisionID)
	if err != nil {
		return DivisionOverview{}, err
	}
	snap, err := s.snapshot(ctx, scope)
	if err != nil {
		return DivisionOverview{}, err
	}

	p := pool.NewWithResults[GroupTable]().WithContext(ctx).WithCancelOnError()
	for _, item := range scope.groups {
		p.Go(func(ctx context.Context) (GroupTable, error) {
			return s.standings.Live(ctx, scope.seasonID, item.ID)
		})
	}
	tables, err := p.Wait()
	if err != nil {
		return DivisionOverview{}, err
	}
	sort.SliceStable(tables, func(i, j int) bool {
		return tables[i].Group.Code < tables[j].Group.Code
	})

	return DivisionOverview{
		SeasonID: scope.seasonID,
		Division: scope.division,
		Phase:    season.Derive(snap),
		Groups:   tables,
		Playoffs: bracketFixtures(scope.bracket()),
	}, nil
}

func (s *SeasonTransitionService) resolveSeason(ctx context.Context, seasonID string) (season.Season, error) {
	if strings.TrimSpace(seasonID) != "" {
		return s.openSeason(ctx, seasonID)
	}

	current, exists, err := s.seasonRepo.GetActive(ctx)
	if err != nil {
		return season.Season{}, fmt.Errorf("get active season: %w", err)
	}
	if !exists {
		return season.Season{}, fmt.Errorf("%w: no active season", ErrNotFound)
	}
	if current.IsClosed() {
		return season.Season{}, fmt.Errorf("%w: season=%s", ErrSeasonClosed, current.ID)
	}
	return current, nil
}

func (s *SeasonTransitionService) openSeason(ctx context.Context, seasonID string) (season.Season, error) {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return season.Season{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	current, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return season.Season{}, fmt.Errorf("get season=%s: %w", seasonID, err)
	}
	if !exists {
		return season.Season{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}
	if current.IsClosed() {
		return season.Season{}, fmt.Errorf("%w: season=%s", ErrSeasonClosed, seasonID)
	}
	return current, nil
}
