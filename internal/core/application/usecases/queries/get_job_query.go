// Package queries contains read operations over the dispatch state.
// Queries read straight from storage with SQL and skip the repositories,
// returning the shapes the HTTP layer renders.
package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetJobQueryIsNotConstructed = errors.New(
		"GetJobQuery must be created via NewGetJobQuery constructor",
	)
)

// GetJobQuery fetches one job by id.
//
// Example:
//
//	query, err := NewGetJobQuery(id)
//	if err != nil {
//	    return err
//	}
//	j, err := handler.Handle(ctx, query)
type GetJobQuery struct {
	id    kernel.UUID
	guard guard.ConstructorGuard
}

func NewGetJobQuery(id kernel.UUID) (GetJobQuery, error) {
	if err := id.Validate(); err != nil {
		return GetJobQuery{}, err
	}

	return GetJobQuery{
		id:    id,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q GetJobQuery) Validate() error {
	return q.guard.Validate(ErrGetJobQueryIsNotConstructed)
}

func (q GetJobQuery) ID() kernel.UUID {
	return q.id
}
