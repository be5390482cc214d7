package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/waitlist"
)

// JoinWaitlistCommandHandler stores a signup. Entries are never updated.
type JoinWaitlistCommandHandler struct {
	entries WaitlistWriter
}

func NewJoinWaitlistCommandHandler(entries WaitlistWriter) JoinWaitlistCommandHandler {
	return JoinWaitlistCommandHandler{entries: entries}
}

func (h JoinWaitlistCommandHandler) Handle(ctx context.Context, cmd JoinWaitlistCommand) (*waitlist.Entry, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	entry, err := waitlist.NewEntry(cmd.Kind(), cmd.Contact(), time.Now())
	if err != nil {
		return nil, err
	}

	if err = h.entries.Add(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}
