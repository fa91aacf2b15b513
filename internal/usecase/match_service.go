package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/league-engine/internal/domain/match"
	"github.com/riskibarqy/league-engine/internal/domain/season"
	"github.com/riskibarqy/league-engine/internal/platform/logging"
)

type RecordResultInput struct {
	MatchID   string
	HomeScore int
	AwayScore int
}

// MatchService records results coming from the scheduling subsystem.
type MatchService struct {
	seasonRepo season.Repository
	matchRepo  match.Repository
	logger     *logging.Logger
	now        func() time.Time
}

func NewMatchService(seasonRepo season.Repository, matchRepo match.Repository, logger *logging.Logger) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		seasonRepo: seasonRepo,
		matchRepo:  matchRepo,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *MatchService) Get(ctx context.Context, matchID string) (match.Match, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match=%s: %w", matchID, err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return item, nil
}

// RecordResult stores a final score. Playoff matches must produce a winner.
func (s *MatchService) RecordResult(ctx context.Context, input RecordResultInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.RecordResult", attrMatchID.String(input.MatchID))
	defer span.End()

	if input.HomeScore < 0 || input.AwayScore < 0 {
		return match.Match{}, fmt.Errorf("%w: scores must be >= 0", ErrInvalidInput)
	}

	item, err := s.Get(ctx, input.MatchID)
	if err != nil {
		return match.Match{}, err
	}
	if match.NormalizeStatus(item.Status) == match.StatusCancelled {
		return match.Match{}, fmt.Errorf("%w: match=%s is cancelled", ErrInvalidInput, item.ID)
	}
	if item.IsPlayoff && input.HomeScore == input.AwayScore {
		return match.Match{}, fmt.Errorf("%w: playoff match=%s needs a winner", ErrInvalidInput, item.ID)
	}

	current, exists, err := s.seasonRepo.GetByID(ctx, item.SeasonID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get season=%s: %w", item.SeasonID, err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: season=%s", ErrNotFound, item.SeasonID)
	}
	if current.IsClosed() {
		return match.Match{}, fmt.Errorf("%w: season=%s", ErrSeasonClosed, item.SeasonID)
	}

	finishedAt := s.now().UTC()
	if err := s.matchRepo.RecordResult(ctx, item.ID, input.HomeScore, input.AwayScore, finishedAt); err != nil {
		return match.Match{}, failSpan(span, fmt.Errorf("record result match=%s: %w", item.ID, err))
	}

	home, away := input.HomeScore, input.AwayScore
	item.HomeScore = &home
	item.AwayScore = &away
	item.Status = match.StatusFinished
	item.FinishedAt = &finishedAt

	s.logger.InfoContext(ctx, "match result recorded",
		"match_id", item.ID,
		"season_id", item.SeasonID,
		"group_id", item.GroupID,
		"playoff", item.IsPlayoff,
		"home_score", home,
		"away_score", away,
	)
	return item, nil
}
