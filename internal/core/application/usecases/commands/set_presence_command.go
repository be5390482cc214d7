package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrSetPresenceCommandIsNotConstructed = errors.New(
		"SetPresenceCommand must be created via NewSetPresenceCommand constructor",
	)
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
)

// SetPresenceCommand reports a worker's availability and, optionally, their location.
//
// Example:
//
//	lat, lng := 40.01, -73.0
//	cmd, err := NewSetPresenceCommand("Ana", "+1 555 010 2030", true, &lat, &lng)
//	if err != nil {
//	    return err // validation error
//	}
//	w, err := handler.Handle(ctx, cmd)
type SetPresenceCommand struct {
	name     string
	phone    kernel.Phone
	online   bool
	location *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewSetPresenceCommand validates the report. lat and lng must be given together or not at all.
func NewSetPresenceCommand(name, phone string, online bool, lat, lng *float64) (SetPresenceCommand, error) {
	cmd := SetPresenceCommand{
		online: online,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setName(name),
		cmd.setPhone(phone),
		cmd.setLocation(lat, lng),
	); err != nil {
		return SetPresenceCommand{}, err
	}

	return cmd, nil
}

func (c SetPresenceCommand) Validate() error {
	return c.guard.Validate(ErrSetPresenceCommandIsNotConstructed)
}

func (c SetPresenceCommand) Name() string {
	return c.name
}

func (c SetPresenceCommand) Phone() kernel.Phone {
	return c.phone
}

func (c SetPresenceCommand) Online() bool {
	return c.online
}

// Location is nil when the report carried no coordinates.
func (c SetPresenceCommand) Location() *kernel.GeoPoint {
	return c.location
}

func (c *SetPresenceCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *SetPresenceCommand) setPhone(raw string) error {
	phone, err := kernel.NewPhone(raw)
	if err != nil {
		return err
	}

	c.phone = phone
	return nil
}

func (c *SetPresenceCommand) setLocation(lat, lng *float64) error {
	location, err := kernel.NewOptionalGeoPoint(lat, lng)
	if err != nil {
		return err
	}

	c.location = location
	return nil
}
