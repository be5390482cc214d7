package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAssignNearestCommandIsNotConstructed = errors.New(
	"AssignNearestCommand must be created via NewAssignNearestCommand constructor",
)

// AssignNearestCommand asks for the job to be matched with the closest available worker.
type AssignNearestCommand struct {
	jobID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignNearestCommand(jobID kernel.UUID) (AssignNearestCommand, error) {
	if err := jobID.Validate(); err != nil {
		return AssignNearestCommand{}, err
	}

	return AssignNearestCommand{
		jobID: jobID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c AssignNearestCommand) Validate() error {
	return c.guard.Validate(ErrAssignNearestCommandIsNotConstructed)
}

func (c AssignNearestCommand) JobID() kernel.UUID {
	return c.jobID
}
