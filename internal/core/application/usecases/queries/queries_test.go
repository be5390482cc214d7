package queries_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetJobQuery(t *testing.T) {
	t.Run("should keep the id", func(t *testing.T) {
		id := kernel.NewUUID()

		query, err := queries.NewGetJobQuery(id)

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.Equal(t, id, query.ID())
	})

	t.Run("should reject an unconstructed id", func(t *testing.T) {
		_, err := queries.NewGetJobQuery(kernel.UUID{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail validation when built as a literal", func(t *testing.T) {
		err := queries.GetJobQuery{}.Validate()

		assert.ErrorIs(t, err, queries.ErrGetJobQueryIsNotConstructed)
	})
}

func TestNewListOnlineWorkersQuery(t *testing.T) {
	require.NoError(t, queries.NewListOnlineWorkersQuery().Validate())

	err := queries.ListOnlineWorkersQuery{}.Validate()
	assert.ErrorIs(t, err, queries.ErrListOnlineWorkersQueryIsNotConstructed)
}
