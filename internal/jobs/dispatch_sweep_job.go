package jobs

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

const DispatchSweepJobName = "dispatch_sweep"

// RequestedJobLister yields the jobs still waiting for a cleaner, oldest first.
type RequestedJobLister interface {
	ListRequested(ctx context.Context, limit int) ([]*job.Job, error)
}

// Dispatcher runs one assign-nearest attempt.
type Dispatcher interface {
	Handle(ctx context.Context, cmd commands.AssignNearestCommand) (commands.AssignNearestResult, error)
}

// SweepReport counts the outcomes of one sweep.
type SweepReport struct {
	Scanned         int
	Assigned        int
	NoMatch         int
	AlreadyAssigned int
	Failed          int
}

// DispatchSweepJob periodically re-dispatches REQUESTED jobs that have
// coordinates, so a job created while nobody was online is picked up once a
// cleaner comes online.
type DispatchSweepJob struct {
	jobs       RequestedJobLister
	dispatcher Dispatcher
	schedule   string
	batch      int
	metrics    *metrics.Jobs
	cron       *cron.Cron
	logger     *slog.Logger
}

func NewDispatchSweepJob(
	jobs RequestedJobLister,
	dispatcher Dispatcher,
	schedule string,
	batch int,
	m *metrics.Jobs,
	logger *slog.Logger,
) *DispatchSweepJob {
	logger = logger.With("component", DispatchSweepJobName)
	return &DispatchSweepJob{
		jobs:       jobs,
		dispatcher: dispatcher,
		schedule:   schedule,
		batch:      batch,
		metrics:    m,
		cron:       newCron(logger),
		logger:     logger,
	}
}

func (j *DispatchSweepJob) Name() string {
	return DispatchSweepJobName
}

// Start schedules the sweep. An invalid schedule is returned as an error.
func (j *DispatchSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := runContext()
		defer cancel()

		report, err := j.Sweep(ctx)
		switch {
		case err != nil:
			j.metrics.Run(DispatchSweepJobName, "error")
			j.logger.ErrorContext(ctx, "Dispatch sweep failed", "error", err)
		case report.Failed > 0:
			j.metrics.Run(DispatchSweepJobName, "partial")
		default:
			j.metrics.Run(DispatchSweepJobName, "success")
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Dispatch sweep job started", "schedule", j.schedule, "batch", j.batch)
	return nil
}

func (j *DispatchSweepJob) Stop() {
	stopCron(j.cron)
	j.logger.Info("Dispatch sweep job stopped")
}

// Sweep dispatches up to batch waiting jobs one after another.
//
// No match and already assigned are expected outcomes. A job that vanished
// between listing and dispatch is skipped. Other failures are logged, counted
// and do not stop the sweep.
func (j *DispatchSweepJob) Sweep(ctx context.Context) (SweepReport, error) {
	waiting, err := j.jobs.ListRequested(ctx, j.batch)
	if err != nil {
		return SweepReport{}, err
	}

	report := SweepReport{Scanned: len(waiting)}
	for _, w := range waiting {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}

		cmd, err := commands.NewAssignNearestCommand(w.ID())
		if err != nil {
			report.Failed++
			continue
		}

		res, err := j.dispatcher.Handle(ctx, cmd)
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
			// skipped
		case err != nil:
			report.Failed++
			j.logger.ErrorContext(ctx, "Dispatch of waiting job failed", "job_id", w.ID().String(), "error", err)
		case res.Outcome == commands.OutcomeAssigned:
			report.Assigned++
		case res.Outcome == commands.OutcomeAlreadyAssigned:
			report.AlreadyAssigned++
		default:
			report.NoMatch++
		}
	}

	if report.Scanned > 0 {
		j.logger.DebugContext(ctx, "Dispatch sweep finished",
			"scanned", report.Scanned,
			"assigned", report.Assigned,
			"no_match", report.NoMatch,
			"already_assigned", report.AlreadyAssigned,
			"failed", report.Failed,
		)
	}

	return report, nil
}
