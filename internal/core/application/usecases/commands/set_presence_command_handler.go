package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/worker"
)

// SetPresenceCommandHandler upserts the reporting worker into the registry.
// The worker id is derived from the phone, so repeated reports from one phone
// update the same record.
type SetPresenceCommandHandler struct {
	workers PresenceWriter
}

func NewSetPresenceCommandHandler(workers PresenceWriter) SetPresenceCommandHandler {
	return SetPresenceCommandHandler{workers: workers}
}

// Handle returns the stored worker snapshot.
func (h SetPresenceCommandHandler) Handle(ctx context.Context, cmd SetPresenceCommand) (*worker.Worker, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	w, err := worker.NewWorker(cmd.Name(), cmd.Phone(), cmd.Online(), cmd.Location(), time.Now())
	if err != nil {
		return nil, err
	}

	return h.workers.SetPresence(ctx, w)
}
