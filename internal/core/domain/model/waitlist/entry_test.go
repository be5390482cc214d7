package waitlist_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/waitlist"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("should create customer entry with normalized email", func(t *testing.T) {
		phone, err := kernel.NewPhone("555 010 1111")
		require.NoError(t, err)

		e, err := waitlist.NewEntry(waitlist.Customer, waitlist.Contact{
			Name:    " Lee ",
			Email:   " Lee@Example.COM ",
			Phone:   &phone,
			Zip:     "10001",
			Message: "weekly please",
		}, now)

		require.NoError(t, err)
		require.NoError(t, e.Validate())
		require.NoError(t, e.ID().Validate())
		assert.Equal(t, waitlist.Customer, e.Kind())
		assert.Equal(t, "Lee", e.Name())
		assert.Equal(t, "lee@example.com", e.Email())
		assert.Equal(t, "5550101111", e.Phone().String())
		assert.Equal(t, "10001", e.Zip())
		assert.Equal(t, "weekly please", e.Message())
		assert.Equal(t, now, e.CreatedAt())
	})

	t.Run("should allow cleaner entry without optional fields", func(t *testing.T) {
		e, err := waitlist.NewEntry(waitlist.Cleaner, waitlist.Contact{Name: "Sam", Email: "sam@example.com"}, now)

		require.NoError(t, err)
		assert.Nil(t, e.Phone())
	})

	t.Run("should reject malformed email", func(t *testing.T) {
		for _, email := range []string{"not-an-email", "Sam <sam@example.com>", "sam@"} {
			_, err := waitlist.NewEntry(waitlist.Cleaner, waitlist.Contact{Name: "Sam", Email: email}, now)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, email)
		}
	})

	t.Run("should require name and email", func(t *testing.T) {
		_, err := waitlist.NewEntry(waitlist.Customer, waitlist.Contact{}, now)

		require.ErrorIs(t, err, waitlist.ErrNameIsRequired)
		require.ErrorIs(t, err, waitlist.ErrEmailIsRequired)
	})

	t.Run("should reject unknown kind", func(t *testing.T) {
		_, err := waitlist.NewEntry(waitlist.Kind("PARTNER"), waitlist.Contact{Name: "Sam", Email: "sam@example.com"}, now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
