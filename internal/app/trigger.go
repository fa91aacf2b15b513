package app

import (
	"context"
	"time"

	"github.com/riskibarqy/league-engine/internal/platform/logging"
	"github.com/riskibarqy/league-engine/internal/usecase"
)

// RunMatchDayTicker fires a direct match-day run on every tick until ctx is
// done. It stands in for the queue when QStash is disabled.
func RunMatchDayTicker(ctx context.Context, jobs *usecase.JobOrchestratorService, interval time.Duration, logger *logging.Logger) {
	if jobs == nil || interval <= 0 {
		return
	}
	if logger == nil {
		logger = logging.Default()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.InfoContext(ctx, "match-day ticker started", "interval", interval.String())
	for {
		select {
		case <-ctx.Done():
			logger.InfoContext(ctx, "match-day ticker stopped")
			return
		case <-ticker.C:
			result, err := jobs.RunMatchDayDirect(ctx, usecase.JobRunInput{})
			if err != nil {
				logger.WarnContext(ctx, "scheduled match-day run failed", "error", err)
				continue
			}
			logger.InfoContext(ctx, "scheduled match-day run finished", "season_id", result.SeasonID)
		}
	}
}
