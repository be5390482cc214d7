package workerrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/pgtest"
	"dispatch/internal/adapters/out/postgres/workerrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/worker"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type WorkerRepositoryIntegrationTestSuite struct {
	suite.Suite
	db         *pgtest.Database
	repository *workerrepo.GormWorkerRepository
}

func (suite *WorkerRepositoryIntegrationTestSuite) SetupSuite() {
	db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *WorkerRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Truncate())
	suite.repository = workerrepo.NewGormWorkerRepository(suite.db.DB, 3*time.Second)
}

func (suite *WorkerRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.db != nil {
		suite.Require().NoError(suite.db.Terminate(context.Background()))
	}
}

func (suite *WorkerRepositoryIntegrationTestSuite) TestSetPresence_InsertsThenOverwrites() {
	ctx := context.Background()
	first := suite.newWorker("Ana", "5550102030", true, ptr(40.01), ptr(-73.0), time.Now().Add(-time.Minute))
	_, err := suite.repository.SetPresence(ctx, first)
	suite.Require().NoError(err)

	second := suite.newWorker("Ana B", "555-010-2030", false, nil, nil, time.Now())
	_, err = suite.repository.SetPresence(ctx, second)
	suite.Require().NoError(err)

	stored, err := suite.repository.Get(ctx, first.ID())
	suite.Require().NoError(err)
	suite.Equal("Ana B", stored.Name())
	suite.False(stored.Online())
	suite.Nil(stored.Location())
	suite.WithinDuration(second.LastSeenAt(), stored.LastSeenAt(), time.Millisecond)

	var count int64
	suite.Require().NoError(suite.db.DB.Model(&workerrepo.WorkerDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *WorkerRepositoryIntegrationTestSuite) TestListOnlineWithLocation_FiltersIneligible() {
	ctx := context.Background()
	located := suite.newWorker("Located", "5550000001", true, ptr(40.0), ptr(-73.0), time.Now())
	unlocated := suite.newWorker("Unlocated", "5550000002", true, nil, nil, time.Now())
	offline := suite.newWorker("Offline", "5550000003", false, ptr(40.0), ptr(-73.0), time.Now())
	for _, w := range []*worker.Worker{located, unlocated, offline} {
		_, err := suite.repository.SetPresence(ctx, w)
		suite.Require().NoError(err)
	}

	workers, err := suite.repository.ListOnlineWithLocation(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(workers, 1)
	suite.True(workers[0].IsEqual(located))
	suite.InDelta(40.0, workers[0].Location().Lat(), 1e-9)
}

func (suite *WorkerRepositoryIntegrationTestSuite) TestListOnlineWithLocation_EmptyIsNotNil() {
	workers, err := suite.repository.ListOnlineWithLocation(context.Background())

	suite.Require().NoError(err)
	suite.NotNil(workers)
	suite.Empty(workers)
}

func (suite *WorkerRepositoryIntegrationTestSuite) TestGet_Missing_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *WorkerRepositoryIntegrationTestSuite) TestExpireStale_OnlyTouchesOldOnlineWorkers() {
	ctx := context.Background()
	stale := suite.newWorker("Stale", "5550000001", true, ptr(40.0), ptr(-73.0), time.Now().Add(-time.Hour))
	fresh := suite.newWorker("Fresh", "5550000002", true, ptr(40.0), ptr(-73.0), time.Now())
	offline := suite.newWorker("Offline", "5550000003", false, nil, nil, time.Now().Add(-time.Hour))
	for _, w := range []*worker.Worker{stale, fresh, offline} {
		_, err := suite.repository.SetPresence(ctx, w)
		suite.Require().NoError(err)
	}

	n, err := suite.repository.ExpireStale(ctx, time.Now().Add(-15*time.Minute))
	suite.Require().NoError(err)
	suite.Equal(1, n)

	got, err := suite.repository.Get(ctx, stale.ID())
	suite.Require().NoError(err)
	suite.False(got.Online())

	got, err = suite.repository.Get(ctx, fresh.ID())
	suite.Require().NoError(err)
	suite.True(got.Online())
}

func (suite *WorkerRepositoryIntegrationTestSuite) TestCanceledContext_ReturnsStorageError() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := suite.repository.ListOnlineWithLocation(ctx)

	suite.Require().ErrorIs(err, errs.ErrStorage)
}

func (suite *WorkerRepositoryIntegrationTestSuite) newWorker(
	name, phone string,
	online bool,
	lat, lng *float64,
	seenAt time.Time,
) *worker.Worker {
	p, err := kernel.NewPhone(phone)
	suite.Require().NoError(err)
	loc, err := kernel.NewOptionalGeoPoint(lat, lng)
	suite.Require().NoError(err)
	w, err := worker.NewWorker(name, p, online, loc, seenAt)
	suite.Require().NoError(err)
	return w
}

func ptr(v float64) *float64 { return &v }

func TestWorkerRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(WorkerRepositoryIntegrationTestSuite))
}
