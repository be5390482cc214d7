// Package ports defines the interfaces the dispatch core consumes.
// Adapters under internal/adapters implement them.
package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/worker"
)

// WorkerRegistry stores worker presence.
type WorkerRegistry interface {
	// SetPresence upserts the worker keyed by its id. Last write wins.
	SetPresence(ctx context.Context, w *worker.Worker) (*worker.Worker, error)

	// ListOnlineWithLocation returns every online worker with a known location,
	// in no particular order. The result is empty, never nil, when nobody qualifies.
	ListOnlineWithLocation(ctx context.Context) ([]*worker.Worker, error)

	// Get returns errs.ErrObjectNotFound when the worker does not exist.
	Get(ctx context.Context, id kernel.UUID) (*worker.Worker, error)

	// ExpireStale marks online workers last seen before cutoff as offline and
	// returns how many were changed.
	ExpireStale(ctx context.Context, cutoff time.Time) (int, error)
}
