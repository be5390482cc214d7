package ports

import (
	"context"
	"time"
)

// JobAcceptedEvent is emitted once a job has been durably assigned.
type JobAcceptedEvent struct {
	JobID      string    `json:"job_id"`
	WorkerID   string    `json:"worker_id"`
	DistanceKm float64   `json:"distance_km"`
	PriceCents int       `json:"price_cents"`
	AcceptedAt time.Time `json:"accepted_at"`
}

// EventPublisher delivers domain events to other systems.
type EventPublisher interface {
	PublishJobAccepted(ctx context.Context, event JobAcceptedEvent) error
}
