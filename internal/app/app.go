package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/league-engine/internal/config"
	"github.com/riskibarqy/league-engine/internal/domain/standing"
	"github.com/riskibarqy/league-engine/internal/infrastructure/jobqueue"
	"github.com/riskibarqy/league-engine/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/league-engine/internal/platform/id"
	"github.com/riskibarqy/league-engine/internal/platform/logging"
	"github.com/riskibarqy/league-engine/internal/platform/resilience"
	"github.com/riskibarqy/league-engine/internal/usecase"
)

// App holds the HTTP server and the services background loops need.
type App struct {
	Server *http.Server
	Jobs   *usecase.JobOrchestratorService

	closers []func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, closeRepos, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	standingSvc := usecase.NewStandingService(
		repos.seasons,
		repos.divisions,
		repos.groups,
		repos.teams,
		repos.assignments,
		repos.matches,
		repos.standings,
		drawFallback(cfg.Engine.TiebreakFallback),
		logger.Named("standings"),
	)
	playoffSvc := usecase.NewPlayoffService(
		repos.divisions,
		repos.groups,
		repos.assignments,
		repos.matches,
		repos.standings,
		idgen.NewUUIDGenerator(),
		usecase.PlayoffConfig{
			StartOffset: cfg.Engine.PlayoffStartOffset,
			RoundGap:    cfg.Engine.PlayoffRoundGap,
		},
		logger.Named("playoff"),
	)
	matchSvc := usecase.NewMatchService(repos.seasons, repos.matches, logger.Named("matches"))
	transitionSvc := usecase.NewSeasonTransitionService(
		repos.seasons,
		repos.divisions,
		repos.groups,
		repos.assignments,
		repos.matches,
		repos.standings,
		standingSvc,
		playoffSvc,
		usecase.SeasonTransitionConfig{DivisionWorkers: cfg.Engine.DivisionWorkers},
		logger.Named("transition"),
	)
	jobSvc := usecase.NewJobOrchestratorService(
		repos.seasons,
		transitionSvc,
		jobQueue(cfg, logger.Named("jobqueue")),
		repos.dispatches,
		usecase.JobOrchestratorConfig{MatchDayInterval: cfg.Engine.TriggerInterval},
		logger.Named("jobs"),
	)

	handler := httpapi.NewHandler(standingSvc, matchSvc, playoffSvc, transitionSvc, jobSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	return &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		Jobs:    jobSvc,
		closers: []func() error{closeRepos},
	}, nil
}

// Close releases storage handles. The HTTP server is shut down by the caller.
func (a *App) Close() error {
	var errs []error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func drawFallback(name string) standing.DrawFallback {
	if strings.EqualFold(strings.TrimSpace(name), config.TiebreakFallbackStable) {
		return standing.StableDraw{}
	}
	return standing.RandomDraw{}
}

func jobQueue(cfg config.Config, logger *logging.Logger) usecase.JobQueue {
	if !cfg.QStashEnabled {
		return usecase.NewNoopJobQueue()
	}

	logger.Info("qstash job queue enabled", "target_base_url", cfg.QStashTargetBaseURL)
	return jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
		BaseURL:          cfg.QStashBaseURL,
		Token:            cfg.QStashToken,
		TargetBaseURL:    cfg.QStashTargetBaseURL,
		Retries:          cfg.QStashRetries,
		InternalJobToken: cfg.InternalJobToken,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.QStashCircuitEnabled,
			FailureThreshold: cfg.QStashCircuitFailureCount,
			OpenTimeout:      cfg.QStashCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.QStashCircuitHalfOpenMaxReq,
		},
	}, logger)
}
