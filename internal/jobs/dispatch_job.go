package jobs

import (
	"context"
	"log/slog"

	"lastmile/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultDispatchSchedule runs a dispatch every thirty seconds.
const DefaultDispatchSchedule = "@every 30s"

// scheduleParser accepts six-field expressions with seconds and descriptors.
var scheduleParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

type dispatchHandler interface {
	Handle(ctx context.Context, cmd commands.DispatchCommand) (commands.DispatchResult, error)
}

// DispatchJob triggers dispatch runs on a cron schedule.
type DispatchJob struct {
	handler  dispatchHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewDispatchJob creates a dispatch job. An empty schedule falls back to DefaultDispatchSchedule.
func NewDispatchJob(handler dispatchHandler, schedule string, logger *slog.Logger) *DispatchJob {
	if schedule == "" {
		schedule = DefaultDispatchSchedule
	}

	logger = logger.With("component", "dispatch_job")
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError))

	return &DispatchJob{
		handler:  handler,
		schedule: schedule,
		cron: cron.New(
			cron.WithParser(scheduleParser),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		logger: logger,
	}
}

// Start registers the schedule and starts the cron runner.
// Returns the parse error for a malformed schedule.
func (j *DispatchJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dispatch job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running dispatch to finish.
func (j *DispatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Dispatch job stopped")
}

func (j *DispatchJob) run() {
	ctx := context.Background()

	cmd, err := commands.NewDispatchCommand(commands.TriggerSchedule)
	if err != nil {
		j.logger.ErrorContext(ctx, "Dispatch job failed", "error", err)
		return
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Dispatch job failed", "error", err)
		return
	}

	if result.Candidates == 0 {
		j.logger.DebugContext(ctx, "Dispatch job found nothing to batch")
	}
}
