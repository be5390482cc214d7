package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
)

// JobStore persists jobs and performs the assignment transition.
type JobStore interface {
	// Add persists a new Requested job.
	Add(ctx context.Context, j *job.Job) error

	// Get returns errs.ErrObjectNotFound when the job does not exist.
	Get(ctx context.Context, id kernel.UUID) (*job.Job, error)

	// Assign moves a Requested job to Accepted with workerID in a single
	// conditional write and returns the updated job.
	//
	// Errors:
	//   - errs.ObjectNotFoundError when the job does not exist
	//   - errs.ConflictError{ParamName: "job"} when the job is no longer Requested
	//   - errs.ConflictError{ParamName: "worker"} when the worker already holds an Accepted job
	Assign(ctx context.Context, jobID, workerID kernel.UUID, at time.Time) (*job.Job, error)

	// ListRequested returns up to limit of the oldest Requested jobs that have a location.
	ListRequested(ctx context.Context, limit int) ([]*job.Job, error)
}

// Contended entities reported in errs.ConflictError.ParamName by JobStore.Assign.
const (
	ConflictJob    = "job"
	ConflictWorker = "worker"
)
