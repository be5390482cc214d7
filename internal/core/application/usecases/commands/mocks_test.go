package commands_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/waitlist"
	"dispatch/internal/core/domain/model/worker"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWorkerRegistry struct{ mock.Mock }

func (m *MockWorkerRegistry) SetPresence(ctx context.Context, w *worker.Worker) (*worker.Worker, error) {
	args := m.Called(ctx, w)
	stored, _ := args.Get(0).(*worker.Worker)
	return stored, args.Error(1)
}

func (m *MockWorkerRegistry) ListOnlineWithLocation(ctx context.Context) ([]*worker.Worker, error) {
	args := m.Called(ctx)
	workers, _ := args.Get(0).([]*worker.Worker)
	return workers, args.Error(1)
}

func (m *MockWorkerRegistry) ExpireStale(ctx context.Context, cutoff time.Time) (int, error) {
	args := m.Called(ctx, cutoff)
	return args.Int(0), args.Error(1)
}

type MockJobStore struct{ mock.Mock }

func (m *MockJobStore) Add(ctx context.Context, j *job.Job) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

func (m *MockJobStore) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	args := m.Called(ctx, id)
	j, _ := args.Get(0).(*job.Job)
	return j, args.Error(1)
}

func (m *MockJobStore) Assign(ctx context.Context, jobID, workerID kernel.UUID, at time.Time) (*job.Job, error) {
	args := m.Called(ctx, jobID, workerID, at)
	j, _ := args.Get(0).(*job.Job)
	return j, args.Error(1)
}

type MockWaitlistRepository struct{ mock.Mock }

func (m *MockWaitlistRepository) Add(ctx context.Context, e *waitlist.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishJobAccepted(ctx context.Context, event ports.JobAcceptedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func f(v float64) *float64 { return &v }

func mustPhone(t *testing.T, raw string) kernel.Phone {
	t.Helper()
	p, err := kernel.NewPhone(raw)
	require.NoError(t, err)
	return p
}

func mustPoint(t *testing.T, lat, lng float64) *kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return &p
}

func newOnlineWorker(t *testing.T, name, phone string, lat, lng float64) *worker.Worker {
	t.Helper()
	w, err := worker.NewWorker(name, mustPhone(t, phone), true, mustPoint(t, lat, lng), time.Now())
	require.NoError(t, err)
	return w
}

func newRequestedJob(t *testing.T, location *kernel.GeoPoint) *job.Job {
	t.Helper()
	j, err := job.NewJob(kernel.NewUUID(), job.Intake{
		Name:     "Bo",
		Phone:    mustPhone(t, "5550100"),
		Address:  "1 Main St",
		Location: location,
		Minutes:  30,
	}, 2250, time.Now())
	require.NoError(t, err)
	return j
}

func acceptedCopy(t *testing.T, j *job.Job, workerID kernel.UUID) *job.Job {
	t.Helper()
	at := time.Now()
	accepted, err := job.RestoreJob(j.ID(), job.Intake{
		Name:     j.Name(),
		Phone:    j.Phone(),
		Address:  j.Address(),
		Location: j.Location(),
		Minutes:  j.Minutes(),
		Notes:    j.Notes(),
	}, j.PriceCents(), job.Accepted, &workerID, j.CreatedAt(), &at)
	require.NoError(t, err)
	return accepted
}
