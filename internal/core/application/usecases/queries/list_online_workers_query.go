package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrListOnlineWorkersQueryIsNotConstructed = errors.New(
		"ListOnlineWorkersQuery must be created via NewListOnlineWorkersQuery constructor",
	)
)

// ListOnlineWorkersQuery lists every online worker, located or not.
type ListOnlineWorkersQuery struct {
	guard guard.ConstructorGuard
}

func NewListOnlineWorkersQuery() ListOnlineWorkersQuery {
	return ListOnlineWorkersQuery{guard: guard.NewConstructorGuard()}
}

func (q ListOnlineWorkersQuery) Validate() error {
	return q.guard.Validate(ErrListOnlineWorkersQueryIsNotConstructed)
}

// ListOnlineWorkersQueryResponse is the read model of an online worker.
// Location is nil when the worker has not shared coordinates.
type ListOnlineWorkersQueryResponse struct {
	ID         kernel.UUID
	Name       string
	Phone      string
	Location   *kernel.GeoPoint
	LastSeenAt time.Time
}
