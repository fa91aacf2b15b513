package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/riskibarqy/league-engine/internal/domain/jobscheduler"
	"github.com/riskibarqy/league-engine/internal/domain/season"
	"github.com/riskibarqy/league-engine/internal/platform/logging"
	"go.opentelemetry.io/otel/trace"
)

const (
	JobNameMatchDay = "match-day"
	JobPathMatchDay = "/v1/internal/jobs/match-day"
)

type JobQueue interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

type noopJobQueue struct{}

func (noopJobQueue) Enqueue(_ context.Context, _ string, _ any, _ time.Duration, _ string) error {
	return nil
}

func NewNoopJobQueue() JobQueue {
	return noopJobQueue{}
}

// MatchDayRunner processes every division of a season once.
type MatchDayRunner interface {
	RunMatchDay(ctx context.Context, seasonID string) (MatchDayResult, error)
}

type JobOrchestratorConfig struct {
	MatchDayInterval time.Duration
}

type JobRunInput struct {
	SeasonID   string
	DispatchID string
}

type JobRunResult struct {
	Mode             string          `json:"mode"`
	SeasonID         string          `json:"season_id"`
	MatchDay         *MatchDayResult `json:"match_day,omitempty"`
	QueuedCount      int             `json:"queued_count"`
	QueuedOperations []string        `json:"queued_operations"`
}

type JobOrchestratorService struct {
	seasonRepo   season.Repository
	runner       MatchDayRunner
	queue        JobQueue
	dispatchRepo jobscheduler.Repository
	cfg          JobOrchestratorConfig
	logger       *logging.Logger
	now          func() time.Time
}

var dedupUnsafeCharRegex = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

func NewJobOrchestratorService(
	seasonRepo season.Repository,
	runner MatchDayRunner,
	queue JobQueue,
	dispatchRepo jobscheduler.Repository,
	cfg JobOrchestratorConfig,
	logger *logging.Logger,
) *JobOrchestratorService {
	if queue == nil {
		queue = NewNoopJobQueue()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MatchDayInterval <= 0 {
		cfg.MatchDayInterval = 24 * time.Hour
	}

	return &JobOrchestratorService{
		seasonRepo:   seasonRepo,
		runner:       runner,
		queue:        queue,
		dispatchRepo: dispatchRepo,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

// RunMatchDay runs the daily trigger and queues the next one.
func (s *JobOrchestratorService) RunMatchDay(ctx context.Context, input JobRunInput) (JobRunResult, error) {
	return s.run(ctx, "match-day", input, true)
}

// RunMatchDayDirect runs the daily trigger without queueing a follow-up.
func (s *JobOrchestratorService) RunMatchDayDirect(ctx context.Context, input JobRunInput) (JobRunResult, error) {
	return s.run(ctx, "match-day-direct", input, false)
}

// Bootstrap queues the first trigger of the active season.
func (s *JobOrchestratorService) Bootstrap(ctx context.Context, input JobRunInput) (JobRunResult, error) {
	current, err := s.pickSeason(ctx, input.SeasonID)
	if err != nil {
		return JobRunResult{}, err
	}

	now := s.now().UTC()
	if err := s.enqueueMatchDay(ctx, current.ID, 0, now); err != nil {
		return JobRunResult{}, err
	}
	return JobRunResult{
		Mode:             "bootstrap",
		SeasonID:         current.ID,
		QueuedCount:      1,
		QueuedOperations: []string{JobNameMatchDay + ":" + current.ID},
	}, nil
}

func (s *JobOrchestratorService) run(ctx context.Context, mode string, input JobRunInput, enqueueNext bool) (JobRunResult, error) {
	current, err := s.pickSeason(ctx, input.SeasonID)
	if err != nil {
		return JobRunResult{}, err
	}

	now := s.now().UTC()
	dispatchID := strings.TrimSpace(input.DispatchID)
	payload := map[string]any{
		"season_id":   current.ID,
		"dispatch_id": dispatchID,
	}

	matchDay, err := s.runner.RunMatchDay(ctx, current.ID)
	if err != nil {
		s.recordDispatchEvent(ctx, jobscheduler.DispatchEvent{
			DispatchID:   dispatchID,
			JobName:      JobNameMatchDay,
			JobPath:      JobPathMatchDay,
			SeasonID:     current.ID,
			Status:       jobscheduler.StatusFailed,
			Payload:      payload,
			ErrorMessage: err.Error(),
			OccurredAt:   now,
		})
		return JobRunResult{}, fmt.Errorf("run match day season=%s: %w", current.ID, err)
	}
	s.recordDispatchEvent(ctx, jobscheduler.DispatchEvent{
		DispatchID: dispatchID,
		JobName:    JobNameMatchDay,
		JobPath:    JobPathMatchDay,
		SeasonID:   current.ID,
		Status:     jobscheduler.StatusCompleted,
		Payload:    payload,
		OccurredAt: now,
	})

	result := JobRunResult{
		Mode:             mode,
		SeasonID:         current.ID,
		MatchDay:         &matchDay,
		QueuedOperations: make([]string, 0, 1),
	}
	if !enqueueNext {
		return result, nil
	}

	if err := s.enqueueMatchDay(ctx, current.ID, s.cfg.MatchDayInterval, now); err != nil {
		return JobRunResult{}, err
	}
	result.QueuedCount++
	result.QueuedOperations = append(result.QueuedOperations, JobNameMatchDay+":"+current.ID)
	return result, nil
}

func (s *JobOrchestratorService) pickSeason(ctx context.Context, seasonID string) (season.Season, error) {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		item, exists, err := s.seasonRepo.GetActive(ctx)
		if err != nil {
			return season.Season{}, fmt.Errorf("get active season for jobs: %w", err)
		}
		if !exists {
			return season.Season{}, fmt.Errorf("%w: no active season", ErrNotFound)
		}
		return item, nil
	}

	item, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return season.Season{}, fmt.Errorf("get season for jobs: %w", err)
	}
	if !exists {
		return season.Season{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	return item, nil
}

func (s *JobOrchestratorService) enqueueMatchDay(ctx context.Context, seasonID string, delay time.Duration, now time.Time) error {
	dedupID := dedupKey(JobNameMatchDay, seasonID, now.Add(delay), s.cfg.MatchDayInterval)
	payload := map[string]any{
		"season_id":   seasonID,
		"dispatch_id": dedupID,
	}
	if err := s.queue.Enqueue(ctx, JobPathMatchDay, payload, delay, dedupID); err != nil {
		s.recordDispatchEvent(ctx, jobscheduler.DispatchEvent{
			DispatchID:   dedupID,
			JobName:      JobNameMatchDay,
			JobPath:      JobPathMatchDay,
			SeasonID:     seasonID,
			Status:       jobscheduler.StatusFailed,
			Payload:      payload,
			ErrorMessage: err.Error(),
			OccurredAt:   now.UTC(),
		})
		return fmt.Errorf("enqueue match-day season=%s: %w", seasonID, err)
	}
	s.recordDispatchEvent(ctx, jobscheduler.DispatchEvent{
		DispatchID: dedupID,
		JobName:    JobNameMatchDay,
		JobPath:    JobPathMatchDay,
		SeasonID:   seasonID,
		Status:     jobscheduler.StatusSent,
		Payload:    payload,
		OccurredAt: now.UTC(),
	})
	return nil
}

func dedupKey(prefix, seasonID string, at time.Time, bucket time.Duration) string {
	if bucket <= 0 {
		bucket = time.Minute
	}
	slot := at.UTC().Truncate(bucket).Format("20060102T150405Z")
	prefix = sanitizeDedupSegment(prefix)
	seasonID = sanitizeDedupSegment(seasonID)
	return prefix + "-" + seasonID + "-" + slot
}

func sanitizeDedupSegment(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return dedupUnsafeCharRegex.ReplaceAllString(value, "-")
}

func (s *JobOrchestratorService) recordDispatchEvent(ctx context.Context, event jobscheduler.DispatchEvent) {
	if s.dispatchRepo == nil || strings.TrimSpace(event.DispatchID) == "" {
		return
	}
	traceID, spanID := traceMetaFromContext(ctx)
	event.TraceID = traceID
	event.SpanID = spanID
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.now().UTC()
	}
	if err := s.dispatchRepo.UpsertEvent(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "record job dispatch event failed",
			"dispatch_id", event.DispatchID,
			"status", event.Status,
			"error", err,
		)
	}
}

func traceMetaFromContext(ctx context.Context) (string, string) {
	spanContext := trace.SpanFromContext(ctx).SpanContext()
	if !spanContext.IsValid() {
		return "", ""
	}
	return spanContext.TraceID().String(), spanContext.SpanID().String()
}
