package job_test

import (
	"strings"
	"testing"
	"time"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validIntake(t *testing.T) job.Intake {
	t.Helper()
	phone, err := kernel.NewPhone("+1 555 010 9999")
	require.NoError(t, err)
	loc, err := kernel.NewGeoPoint(40.0, -73.0)
	require.NoError(t, err)

	return job.Intake{
		Name:     "Maria",
		Phone:    phone,
		Address:  "12 Elm St",
		Location: &loc,
		Minutes:  30,
		Notes:    "two bathrooms",
	}
}

func TestNewJob(t *testing.T) {
	createdAt := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

	t.Run("should create requested job", func(t *testing.T) {
		id := kernel.NewUUID()

		j, err := job.NewJob(id, validIntake(t), 2250, createdAt)

		require.NoError(t, err)
		require.NoError(t, j.Validate())
		assert.True(t, j.ID().IsEqual(id))
		assert.Equal(t, job.Requested, j.Status())
		assert.Equal(t, "Maria", j.Name())
		assert.Equal(t, "+15550109999", j.Phone().String())
		assert.Equal(t, "12 Elm St", j.Address())
		assert.Equal(t, 30, j.Minutes())
		assert.Equal(t, 2250, j.PriceCents())
		assert.Equal(t, "two bathrooms", j.Notes())
		assert.Equal(t, createdAt, j.CreatedAt())
		assert.Nil(t, j.Worker())
		assert.Nil(t, j.AcceptedAt())
		require.NotNil(t, j.Location())
		assert.InDelta(t, 40.0, j.Location().Lat(), 0)
	})

	t.Run("should accept address-only job", func(t *testing.T) {
		in := validIntake(t)
		in.Location = nil

		j, err := job.NewJob(kernel.NewUUID(), in, 2250, createdAt)

		require.NoError(t, err)
		assert.Nil(t, j.Location())
	})

	t.Run("should reject non-positive minutes", func(t *testing.T) {
		for _, minutes := range []int{0, -15} {
			in := validIntake(t)
			in.Minutes = minutes

			j, err := job.NewJob(kernel.NewUUID(), in, 2250, createdAt)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Contains(t, err.Error(), "minutes")
			assert.Nil(t, j)
		}
	})

	t.Run("should cap minutes at one day", func(t *testing.T) {
		in := validIntake(t)
		in.Minutes = job.MaxMinutes
		_, err := job.NewJob(kernel.NewUUID(), in, 108000, createdAt)
		require.NoError(t, err)

		in.Minutes = job.MaxMinutes + 1
		_, err = job.NewJob(kernel.NewUUID(), in, 108075, createdAt)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("should reject price below one cent", func(t *testing.T) {
		_, err := job.NewJob(kernel.NewUUID(), validIntake(t), 0, createdAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "price")
	})

	t.Run("should collect all missing requester fields", func(t *testing.T) {
		in := job.Intake{Minutes: 30}

		_, err := job.NewJob(kernel.NewUUID(), in, 2250, createdAt)

		require.Error(t, err)
		assert.ErrorIs(t, err, job.ErrNameIsRequired)
		assert.ErrorIs(t, err, job.ErrAddressIsRequired)
		assert.ErrorIs(t, err, kernel.ErrPhoneIsNotConstructed)
	})

	t.Run("should bound notes length", func(t *testing.T) {
		in := validIntake(t)
		in.Notes = strings.Repeat("n", 2001)

		_, err := job.NewJob(kernel.NewUUID(), in, 2250, createdAt)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject zero-value location", func(t *testing.T) {
		in := validIntake(t)
		in.Location = &kernel.GeoPoint{}

		_, err := job.NewJob(kernel.NewUUID(), in, 2250, createdAt)

		require.ErrorIs(t, err, kernel.ErrGeoPointIsNotConstructed)
	})
}

func TestRestoreJob(t *testing.T) {
	createdAt := time.Now()

	t.Run("should restore accepted job with worker", func(t *testing.T) {
		workerID := kernel.NewUUID()
		acceptedAt := createdAt.Add(time.Minute)

		j, err := job.RestoreJob(kernel.NewUUID(), validIntake(t), 2250, job.Accepted, &workerID, createdAt, &acceptedAt)

		require.NoError(t, err)
		assert.Equal(t, job.Accepted, j.Status())
		require.NotNil(t, j.Worker())
		assert.True(t, j.Worker().IsEqual(workerID))
		require.NotNil(t, j.AcceptedAt())
		assert.True(t, acceptedAt.Equal(*j.AcceptedAt()))
	})

	t.Run("should reject accepted job without worker", func(t *testing.T) {
		_, err := job.RestoreJob(kernel.NewUUID(), validIntake(t), 2250, job.Accepted, nil, createdAt, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a valid status to have no worker")
	})

	t.Run("should reject requested job with worker", func(t *testing.T) {
		workerID := kernel.NewUUID()

		_, err := job.RestoreJob(kernel.NewUUID(), validIntake(t), 2250, job.Requested, &workerID, createdAt, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a valid status to have a worker")
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		_, err := job.RestoreJob(kernel.NewUUID(), validIntake(t), 2250, job.Unknown, nil, createdAt, nil)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestJob_Validate(t *testing.T) {
	var nilJob *job.Job
	require.ErrorIs(t, nilJob.Validate(), job.ErrJobIsNotConstructed)
	require.ErrorIs(t, (&job.Job{}).Validate(), job.ErrJobIsNotConstructed)
}
