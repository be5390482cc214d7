// Package commands contains the use cases that change state.
// Every command is built by its constructor, which validates the input, and
// executed by a handler that depends only on the narrow storage interfaces below.
package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/waitlist"
	"dispatch/internal/core/domain/model/worker"
)

// Storage interfaces consumed by the handlers. ports.WorkerRegistry, ports.JobStore
// and ports.WaitlistRepository satisfy them.
type (
	PresenceWriter interface {
		SetPresence(ctx context.Context, w *worker.Worker) (*worker.Worker, error)
	}

	PresenceExpirer interface {
		ExpireStale(ctx context.Context, cutoff time.Time) (int, error)
	}

	CandidateSource interface {
		ListOnlineWithLocation(ctx context.Context) ([]*worker.Worker, error)
	}

	JobWriter interface {
		Add(ctx context.Context, j *job.Job) error
	}

	// JobAssigner reads a job and performs the conditional Requested -> Accepted write.
	JobAssigner interface {
		Get(ctx context.Context, id kernel.UUID) (*job.Job, error)
		Assign(ctx context.Context, jobID, workerID kernel.UUID, at time.Time) (*job.Job, error)
	}

	WaitlistWriter interface {
		Add(ctx context.Context, e *waitlist.Entry) error
	}
)
