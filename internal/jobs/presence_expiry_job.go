package jobs

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

const PresenceExpiryJobName = "presence_expiry"

// PresenceExpirer marks stale workers offline.
type PresenceExpirer interface {
	Handle(ctx context.Context, cmd commands.ExpirePresenceCommand) (int, error)
}

// PresenceExpiryJob takes cleaners offline when they stop sending presence
// updates for longer than ttl.
type PresenceExpiryJob struct {
	handler  PresenceExpirer
	ttl      time.Duration
	schedule string
	metrics  *metrics.Jobs
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewPresenceExpiryJob(
	handler PresenceExpirer,
	ttl time.Duration,
	schedule string,
	m *metrics.Jobs,
	logger *slog.Logger,
) *PresenceExpiryJob {
	logger = logger.With("component", PresenceExpiryJobName)
	return &PresenceExpiryJob{
		handler:  handler,
		ttl:      ttl,
		schedule: schedule,
		metrics:  m,
		cron:     newCron(logger),
		logger:   logger,
	}
}

func (j *PresenceExpiryJob) Name() string {
	return PresenceExpiryJobName
}

func (j *PresenceExpiryJob) Start() error {
	if _, err := commands.NewExpirePresenceCommand(j.ttl); err != nil {
		return err
	}

	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := runContext()
		defer cancel()

		if _, err := j.Expire(ctx); err != nil {
			j.metrics.Run(PresenceExpiryJobName, "error")
			j.logger.ErrorContext(ctx, "Presence expiry failed", "error", err)
			return
		}
		j.metrics.Run(PresenceExpiryJobName, "success")
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Presence expiry job started", "schedule", j.schedule, "ttl", j.ttl)
	return nil
}

func (j *PresenceExpiryJob) Stop() {
	stopCron(j.cron)
	j.logger.Info("Presence expiry job stopped")
}

// Expire runs one pass and returns how many workers went offline.
func (j *PresenceExpiryJob) Expire(ctx context.Context) (int, error) {
	cmd, err := commands.NewExpirePresenceCommand(j.ttl)
	if err != nil {
		return 0, err
	}

	expired, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		return 0, err
	}

	if expired > 0 {
		j.logger.InfoContext(ctx, "Stale cleaners taken offline", "count", expired)
	}
	return expired, nil
}
