package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"printflow/internal/core/application/usecases/commands"
	"printflow/internal/core/domain/model/cleanup"

	"github.com/robfig/cron/v3"
)

// CleanupHandler runs one cleanup pass for a policy.
type CleanupHandler interface {
	Handle(ctx context.Context, cmd commands.CleanupOrdersCommand) (cleanup.Summary, error)
}

// CleanupJob runs the cleanup handler for one policy on a cron schedule.
// A trigger that fires while the previous run is still going is skipped, so
// runs of the same policy never overlap. Scheduled runs share a context that
// Stop cancels.
type CleanupJob struct {
	policy   cleanup.Policy
	schedule string
	handler  CleanupHandler
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NewCleanupJob builds a job for policy. schedule is a six-field cron spec
// with seconds; timeout bounds a single run and zero means unbounded.
func NewCleanupJob(
	policy cleanup.Policy,
	schedule string,
	handler CleanupHandler,
	timeout time.Duration,
	logger *slog.Logger,
) *CleanupJob {
	logger = logger.With("component", policy.Name()+"_cleanup_job")
	ctx, cancel := context.WithCancel(context.Background())
	return &CleanupJob{
		policy:   policy,
		schedule: schedule,
		handler:  handler,
		timeout:  timeout,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.Recover(cronLogger{logger}), cron.SkipIfStillRunning(cronLogger{logger})),
		),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (j *CleanupJob) Name() string {
	return j.policy.Name() + " cleanup"
}

// Start registers the schedule and starts the scheduler.
func (j *CleanupJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		_, _ = j.Run(j.ctx)
	}); err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.Info("cleanup job started", "schedule", j.schedule, "action", j.policy.Action().String())
	return nil
}

// Run executes one pass and logs its summary.
func (j *CleanupJob) Run(ctx context.Context) (cleanup.Summary, error) {
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	cmd, err := commands.NewCleanupOrdersCommand(j.policy)
	if err != nil {
		j.logger.ErrorContext(ctx, "cleanup command rejected", "error", err)
		return cleanup.Summary{}, err
	}

	j.logger.InfoContext(ctx, "cleanup run started")
	summary, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "cleanup run failed", "error", err)
		return cleanup.Summary{}, err
	}

	level := slog.LevelInfo
	if summary.HasFailures() {
		level = slog.LevelWarn
	}
	j.logger.Log(ctx, level, "cleanup run finished",
		"candidates", summary.Candidates(),
		"finalized", summary.Finalized,
		"already_clean", summary.AlreadyClean,
		"skipped", summary.Skipped,
		"superseded", summary.Superseded,
		"errored", summary.Errored,
		"duration", summary.FinishedAt.Sub(summary.StartedAt).String(),
	)
	return summary, nil
}

// Stop stops scheduling, cancels a running pass and waits for it to return.
func (j *CleanupJob) Stop() {
	stopped := j.cron.Stop()
	j.cancel()
	<-stopped.Done()
	j.logger.Info("cleanup job stopped")
}

// cronLogger routes scheduler messages to slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Info("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
