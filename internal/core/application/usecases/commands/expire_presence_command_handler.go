package commands

import (
	"context"
	"time"
)

type ExpirePresenceCommandHandler struct {
	workers PresenceExpirer
}

func NewExpirePresenceCommandHandler(workers PresenceExpirer) ExpirePresenceCommandHandler {
	return ExpirePresenceCommandHandler{workers: workers}
}

// Handle returns the number of workers taken offline.
func (h ExpirePresenceCommandHandler) Handle(ctx context.Context, cmd ExpirePresenceCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	return h.workers.ExpireStale(ctx, time.Now().Add(-cmd.TTL()))
}
