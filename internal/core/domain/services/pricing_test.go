package services_test

import (
	"testing"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricer_Price(t *testing.T) {
	pricer, err := services.NewPricer(services.DefaultHourlyRateCents)
	require.NoError(t, err)

	tests := []struct {
		minutes int
		want    int
	}{
		{minutes: 30, want: 2250},
		{minutes: 60, want: 4500},
		{minutes: 90, want: 6750},
		{minutes: 1, want: 75},
		{minutes: 7, want: 525},
		{minutes: 240, want: 18000},
	}

	for _, tt := range tests {
		got, err := pricer.Price(tt.minutes)

		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "minutes=%d", tt.minutes)
	}

	t.Run("should round half away from zero", func(t *testing.T) {
		p, err := services.NewPricer(3)
		require.NoError(t, err)

		// 10 minutes at 3 cents/hour is 0.5 cents.
		got, err := p.Price(10)
		require.NoError(t, err)
		assert.Equal(t, 1, got)

		// 30 minutes at 3 cents/hour is 1.5 cents.
		got, err = p.Price(30)
		require.NoError(t, err)
		assert.Equal(t, 2, got)
	})

	t.Run("should never price below one cent", func(t *testing.T) {
		p, err := services.NewPricer(1)
		require.NoError(t, err)

		got, err := p.Price(1)

		require.NoError(t, err)
		assert.Equal(t, 1, got)
	})

	t.Run("should reject non-positive minutes", func(t *testing.T) {
		_, err := pricer.Price(0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = pricer.Price(-5)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject prices that overflow the column", func(t *testing.T) {
		_, err := pricer.Price(30_000_000)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject unconstructed pricer", func(t *testing.T) {
		_, err := services.Pricer{}.Price(30)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestNewPricer(t *testing.T) {
	_, err := services.NewPricer(0)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
