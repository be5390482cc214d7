package ports

import (
	"context"

	"dispatch/internal/core/domain/model/waitlist"
)

type WaitlistRepository interface {
	Add(ctx context.Context, e *waitlist.Entry) error
}
