package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/worker"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Outcome is the result class of one assign-nearest call.
type Outcome string

const (
	OutcomeAssigned        Outcome = "assigned"
	OutcomeNoMatch         Outcome = "no_match"
	OutcomeAlreadyAssigned Outcome = "already_assigned"

	// OutcomeNotFound and OutcomeError only label metrics and spans;
	// Handle reports them as errors.
	OutcomeNotFound Outcome = "not_found"
	OutcomeError    Outcome = "error"
)

// AssignNearestResult describes what the dispatch did.
//
// Job is set for every outcome. Worker and DistanceKm are set only for OutcomeAssigned.
type AssignNearestResult struct {
	Outcome    Outcome
	Job        *job.Job
	Worker     *worker.Worker
	DistanceKm float64
}

// AssignNearestCommandHandler is the dispatch engine. It ranks the online workers
// by distance to the job and claims the first one it can.
//
// The claim is a conditional write in the job store, so there are no in-process
// locks. When the worker is busy with another job, the next candidate is tried.
// When a concurrent dispatch wins the job, the call stops and reports
// OutcomeAlreadyAssigned. A job is never reassigned.
//
// Example:
//
//	cmd, _ := NewAssignNearestCommand(jobID)
//	res, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // unknown job
//	case err != nil:
//	    // storage failure
//	case res.Outcome == OutcomeAssigned:
//	    log.Printf("assigned %s at %.2f km", res.Worker.Name(), res.DistanceKm)
//	}
type AssignNearestCommandHandler struct {
	jobs      JobAssigner
	workers   CandidateSource
	index     services.ProximityIndex
	publisher ports.EventPublisher
	metrics   *metrics.Dispatch
	tracer    trace.Tracer
	logger    *slog.Logger
}

func NewAssignNearestCommandHandler(
	jobs JobAssigner,
	workers CandidateSource,
	publisher ports.EventPublisher,
	m *metrics.Dispatch,
	logger *slog.Logger,
) AssignNearestCommandHandler {
	return AssignNearestCommandHandler{
		jobs:      jobs,
		workers:   workers,
		index:     services.NewProximityIndex(),
		publisher: publisher,
		metrics:   m,
		tracer:    otel.Tracer("dispatch/commands"),
		logger:    logger.With("component", "AssignNearestCommandHandler"),
	}
}

// Handle runs one dispatch attempt.
//
// A missing job is returned as errs.ErrObjectNotFound. Storage failures are
// returned unchanged. Every other case is a result with a nil error.
func (h AssignNearestCommandHandler) Handle(
	ctx context.Context,
	cmd AssignNearestCommand,
) (result AssignNearestResult, err error) {
	if err = cmd.Validate(); err != nil {
		return AssignNearestResult{}, err
	}

	ctx, span := h.tracer.Start(ctx, "AssignNearest",
		trace.WithAttributes(attribute.String("job.id", cmd.JobID().String())))
	start := time.Now()

	defer func() {
		outcome := result.Outcome
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
			outcome = OutcomeNotFound
		case err != nil:
			outcome = OutcomeError
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		span.SetAttributes(attribute.String("dispatch.outcome", string(outcome)))
		span.End()
		h.metrics.Outcome(string(outcome), time.Since(start))
	}()

	return h.dispatch(ctx, cmd.JobID())
}

func (h AssignNearestCommandHandler) dispatch(ctx context.Context, jobID kernel.UUID) (AssignNearestResult, error) {
	j, err := h.jobs.Get(ctx, jobID)
	if err != nil {
		return AssignNearestResult{}, err
	}

	if j.Status().ValidateAssign() != nil {
		return AssignNearestResult{Outcome: OutcomeAlreadyAssigned, Job: j}, nil
	}

	target := j.Location()
	if target == nil {
		return AssignNearestResult{Outcome: OutcomeNoMatch, Job: j}, nil
	}

	online, err := h.workers.ListOnlineWithLocation(ctx)
	if err != nil {
		return AssignNearestResult{}, err
	}

	ranked, err := h.index.Nearest(*target, online)
	if err != nil {
		return AssignNearestResult{}, err
	}
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("dispatch.candidates", len(ranked)))

	for _, c := range ranked {
		assigned, err := h.jobs.Assign(ctx, jobID, c.Worker.ID(), time.Now())
		if err == nil {
			h.publish(ctx, assigned, c)
			return AssignNearestResult{
				Outcome:    OutcomeAssigned,
				Job:        assigned,
				Worker:     c.Worker,
				DistanceKm: c.DistanceKm,
			}, nil
		}

		var conflict *errs.ConflictError
		if !errors.As(err, &conflict) {
			return AssignNearestResult{}, err
		}
		h.metrics.Conflict(conflict.ParamName)

		if conflict.ParamName == ports.ConflictWorker {
			h.logger.DebugContext(ctx, "worker busy, trying next candidate",
				"job_id", jobID.String(), "worker_id", c.Worker.ID().String())
			continue
		}

		current, err := h.jobs.Get(ctx, jobID)
		if err != nil {
			return AssignNearestResult{}, err
		}
		return AssignNearestResult{Outcome: OutcomeAlreadyAssigned, Job: current}, nil
	}

	return AssignNearestResult{Outcome: OutcomeNoMatch, Job: j}, nil
}

// publish never fails the dispatch: the assignment is already stored.
func (h AssignNearestCommandHandler) publish(ctx context.Context, j *job.Job, c services.Candidate) {
	event := ports.JobAcceptedEvent{
		JobID:      j.ID().String(),
		WorkerID:   c.Worker.ID().String(),
		DistanceKm: c.DistanceKm,
		PriceCents: j.PriceCents(),
		AcceptedAt: time.Now().UTC(),
	}
	if at := j.AcceptedAt(); at != nil {
		event.AcceptedAt = *at
	}

	if err := h.publisher.PublishJobAccepted(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "failed to publish job.accepted",
			"job_id", event.JobID, "error", err)
	}
}
