package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
)

// CreateJobCommandHandler prices the request and stores it as a Requested job.
type CreateJobCommandHandler struct {
	jobs   JobWriter
	pricer services.Pricer
}

func NewCreateJobCommandHandler(jobs JobWriter, pricer services.Pricer) CreateJobCommandHandler {
	return CreateJobCommandHandler{
		jobs:   jobs,
		pricer: pricer,
	}
}

func (h CreateJobCommandHandler) Handle(ctx context.Context, cmd CreateJobCommand) (*job.Job, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	price, err := h.pricer.Price(cmd.Minutes())
	if err != nil {
		return nil, err
	}

	j, err := job.NewJob(kernel.NewUUID(), cmd.Intake(), price, time.Now())
	if err != nil {
		return nil, err
	}

	if err = h.jobs.Add(ctx, j); err != nil {
		return nil, err
	}

	return j, nil
}
