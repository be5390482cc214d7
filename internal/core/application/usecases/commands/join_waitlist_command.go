package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/waitlist"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrJoinWaitlistCommandIsNotConstructed = errors.New(
		"JoinWaitlistCommand must be created via NewJoinWaitlistCommand constructor",
	)
	ErrEmailIsRequired = errs.NewValueIsRequiredError("email")
)

// JoinWaitlistCommand is an interest signup. Phone, zip and message are optional.
type JoinWaitlistCommand struct { //nolint:recvcheck //using for validation
	kind    waitlist.Kind
	contact waitlist.Contact

	guard guard.ConstructorGuard
}

func NewJoinWaitlistCommand(kind waitlist.Kind, name, email, phone, zip, message string) (JoinWaitlistCommand, error) {
	cmd := JoinWaitlistCommand{
		contact: waitlist.Contact{
			Zip:     strings.TrimSpace(zip),
			Message: strings.TrimSpace(message),
		},
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setKind(kind),
		cmd.setName(name),
		cmd.setEmail(email),
		cmd.setPhone(phone),
	); err != nil {
		return JoinWaitlistCommand{}, err
	}

	return cmd, nil
}

func (c JoinWaitlistCommand) Validate() error {
	return c.guard.Validate(ErrJoinWaitlistCommandIsNotConstructed)
}

func (c JoinWaitlistCommand) Kind() waitlist.Kind {
	return c.kind
}

func (c JoinWaitlistCommand) Contact() waitlist.Contact {
	return c.contact
}

func (c *JoinWaitlistCommand) setKind(kind waitlist.Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	c.kind = kind
	return nil
}

func (c *JoinWaitlistCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}

	c.contact.Name = name
	return nil
}

func (c *JoinWaitlistCommand) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailIsRequired
	}

	c.contact.Email = email
	return nil
}

func (c *JoinWaitlistCommand) setPhone(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	phone, err := kernel.NewPhone(raw)
	if err != nil {
		return err
	}

	c.contact.Phone = &phone
	return nil
}
