package commands

import (
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateJobCommandIsNotConstructed = errors.New(
		"CreateJobCommand must be created via NewCreateJobCommand constructor",
	)
	ErrAddressIsRequired = errs.NewValueIsRequiredError("address")
)

// CreateJobCommand is a validated service request.
//
// Example:
//
//	cmd, err := NewCreateJobCommand("Bo", "555-0100", "1 Main St", &lat, &lng, 30, "")
//	if err != nil {
//	    return err
//	}
//	j, err := handler.Handle(ctx, cmd) // j.PriceCents() == 2250 at the default rate
type CreateJobCommand struct { //nolint:recvcheck //using for validation
	intake job.Intake

	guard guard.ConstructorGuard
}

func NewCreateJobCommand(
	name, phone, address string,
	lat, lng *float64,
	minutes int,
	notes string,
) (CreateJobCommand, error) {
	cmd := CreateJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setName(name),
		cmd.setPhone(phone),
		cmd.setAddress(address),
		cmd.setLocation(lat, lng),
		cmd.setMinutes(minutes),
	); err != nil {
		return CreateJobCommand{}, err
	}
	cmd.intake.Notes = strings.TrimSpace(notes)

	return cmd, nil
}

func (c CreateJobCommand) Validate() error {
	return c.guard.Validate(ErrCreateJobCommandIsNotConstructed)
}

// Intake returns the request fields as the job aggregate takes them.
func (c CreateJobCommand) Intake() job.Intake {
	return c.intake
}

func (c CreateJobCommand) Minutes() int {
	return c.intake.Minutes
}

func (c *CreateJobCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}

	c.intake.Name = name
	return nil
}

func (c *CreateJobCommand) setPhone(raw string) error {
	phone, err := kernel.NewPhone(raw)
	if err != nil {
		return err
	}

	c.intake.Phone = phone
	return nil
}

func (c *CreateJobCommand) setAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return ErrAddressIsRequired
	}

	c.intake.Address = address
	return nil
}

func (c *CreateJobCommand) setLocation(lat, lng *float64) error {
	location, err := kernel.NewOptionalGeoPoint(lat, lng)
	if err != nil {
		return err
	}

	c.intake.Location = location
	return nil
}

func (c *CreateJobCommand) setMinutes(minutes int) error {
	if minutes <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("minutes", fmt.Errorf("%d is not greater than 0", minutes))
	}
	if minutes > job.MaxMinutes {
		return errs.NewValueIsOutOfRangeError("minutes", minutes, 1, job.MaxMinutes)
	}

	c.intake.Minutes = minutes
	return nil
}
