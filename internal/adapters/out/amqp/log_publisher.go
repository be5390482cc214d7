package amqp

import (
	"context"
	"log/slog"

	"dispatch/internal/core/ports"
)

// LogPublisher writes events to the log. It stands in when no broker is
// configured.
type LogPublisher struct {
	logger *slog.Logger
}

var _ ports.EventPublisher = LogPublisher{}

func NewLogPublisher(logger *slog.Logger) LogPublisher {
	return LogPublisher{logger: logger.With(slog.String("component", "event-log"))}
}

func (p LogPublisher) PublishJobAccepted(ctx context.Context, event ports.JobAcceptedEvent) error {
	p.logger.InfoContext(ctx, RoutingKeyJobAccepted,
		slog.String("job_id", event.JobID),
		slog.String("worker_id", event.WorkerID),
		slog.Float64("distance_km", event.DistanceKm),
		slog.Int("price_cents", event.PriceCents),
		slog.Time("accepted_at", event.AcceptedAt),
	)
	return nil
}
