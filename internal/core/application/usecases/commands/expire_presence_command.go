package commands

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrExpirePresenceCommandIsNotConstructed = errors.New(
	"ExpirePresenceCommand must be created via NewExpirePresenceCommand constructor",
)

// ExpirePresenceCommand takes offline every worker that has not reported for longer than ttl.
type ExpirePresenceCommand struct {
	ttl time.Duration

	guard guard.ConstructorGuard
}

func NewExpirePresenceCommand(ttl time.Duration) (ExpirePresenceCommand, error) {
	if ttl <= 0 {
		return ExpirePresenceCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"ttl", fmt.Errorf("%s is not greater than 0", ttl))
	}

	return ExpirePresenceCommand{
		ttl:   ttl,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c ExpirePresenceCommand) Validate() error {
	return c.guard.Validate(ErrExpirePresenceCommandIsNotConstructed)
}

func (c ExpirePresenceCommand) TTL() time.Duration {
	return c.ttl
}
