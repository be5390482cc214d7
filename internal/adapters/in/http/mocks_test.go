package http_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/waitlist"
	"dispatch/internal/core/domain/model/worker"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockJobCreator struct{ mock.Mock }

func (m *MockJobCreator) Handle(ctx context.Context, cmd commands.CreateJobCommand) (*job.Job, error) {
	args := m.Called(ctx, cmd)
	j, _ := args.Get(0).(*job.Job)
	return j, args.Error(1)
}

type MockDispatcher struct{ mock.Mock }

func (m *MockDispatcher) Handle(
	ctx context.Context,
	cmd commands.AssignNearestCommand,
) (commands.AssignNearestResult, error) {
	args := m.Called(ctx, cmd)
	res, _ := args.Get(0).(commands.AssignNearestResult)
	return res, args.Error(1)
}

type MockPresenceSetter struct{ mock.Mock }

func (m *MockPresenceSetter) Handle(ctx context.Context, cmd commands.SetPresenceCommand) (*worker.Worker, error) {
	args := m.Called(ctx, cmd)
	w, _ := args.Get(0).(*worker.Worker)
	return w, args.Error(1)
}

type MockWaitlistJoiner struct{ mock.Mock }

func (m *MockWaitlistJoiner) Handle(ctx context.Context, cmd commands.JoinWaitlistCommand) (*waitlist.Entry, error) {
	args := m.Called(ctx, cmd)
	e, _ := args.Get(0).(*waitlist.Entry)
	return e, args.Error(1)
}

type MockJobReader struct{ mock.Mock }

func (m *MockJobReader) Handle(ctx context.Context, query queries.GetJobQuery) (*job.Job, error) {
	args := m.Called(ctx, query)
	j, _ := args.Get(0).(*job.Job)
	return j, args.Error(1)
}

type MockOnlineCleanersReader struct{ mock.Mock }

func (m *MockOnlineCleanersReader) Handle(
	ctx context.Context,
	query queries.ListOnlineWorkersQuery,
) ([]queries.ListOnlineWorkersQueryResponse, error) {
	args := m.Called(ctx, query)
	res, _ := args.Get(0).([]queries.ListOnlineWorkersQueryResponse)
	return res, args.Error(1)
}

func f(v float64) *float64 { return &v }

func mustPhone(t *testing.T, raw string) kernel.Phone {
	t.Helper()
	p, err := kernel.NewPhone(raw)
	require.NoError(t, err)
	return p
}

func newJob(t *testing.T) *job.Job {
	t.Helper()
	location, err := kernel.NewOptionalGeoPoint(f(40.0), f(-73.0))
	require.NoError(t, err)

	j, err := job.NewJob(kernel.NewUUID(), job.Intake{
		Name:     "Ann",
		Phone:    mustPhone(t, "5551112222"),
		Address:  "1 Main St",
		Location: location,
		Minutes:  30,
	}, 2250, time.Now())
	require.NoError(t, err)
	return j
}

func acceptedJob(t *testing.T, j *job.Job, workerID kernel.UUID) *job.Job {
	t.Helper()
	acceptedAt := time.Now()
	out, err := job.RestoreJob(j.ID(), job.Intake{
		Name:     j.Name(),
		Phone:    j.Phone(),
		Address:  j.Address(),
		Location: j.Location(),
		Minutes:  j.Minutes(),
		Notes:    j.Notes(),
	}, j.PriceCents(), job.Accepted, &workerID, j.CreatedAt(), &acceptedAt)
	require.NoError(t, err)
	return out
}

func newWorker(t *testing.T) *worker.Worker {
	t.Helper()
	location, err := kernel.NewOptionalGeoPoint(f(40.01), f(-73.0))
	require.NoError(t, err)

	w, err := worker.NewWorker("Bea", mustPhone(t, "5550000001"), true, location, time.Now())
	require.NoError(t, err)
	return w
}
