package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/jobrepo"
	"dispatch/internal/adapters/out/postgres/pgtest"
	"dispatch/internal/adapters/out/postgres/workerrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/worker"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type QueriesIntegrationTestSuite struct {
	suite.Suite
	db      *pgtest.Database
	workers *workerrepo.GormWorkerRepository
	jobs    *jobrepo.GormJobRepository
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.db = db
	suite.workers = workerrepo.NewGormWorkerRepository(db.DB, 3*time.Second)
	suite.jobs = jobrepo.NewGormJobRepository(db.DB, 3*time.Second)
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Truncate())
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	if suite.db != nil {
		suite.Require().NoError(suite.db.Terminate(context.Background()))
	}
}

func (suite *QueriesIntegrationTestSuite) TestGetJob_ReturnsStoredJob() {
	ctx := context.Background()
	stored := suite.addJob(ctx, true)

	query, err := queries.NewGetJobQuery(stored.ID())
	suite.Require().NoError(err)

	got, err := queries.NewGetJobQueryHandler(suite.db.DB, 3*time.Second).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(stored.ID(), got.ID())
	suite.Equal(job.Requested, got.Status())
	suite.Equal(2250, got.PriceCents())
	suite.Require().NotNil(got.Location())
	suite.InDelta(40.0, got.Location().Lat(), 1e-9)
}

func (suite *QueriesIntegrationTestSuite) TestGetJob_Missing_ReturnsNotFound() {
	query, err := queries.NewGetJobQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	got, err := queries.NewGetJobQueryHandler(suite.db.DB, 3*time.Second).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Nil(got)
}

func (suite *QueriesIntegrationTestSuite) TestGetJob_InvalidQuery_ReturnsError() {
	got, err := queries.NewGetJobQueryHandler(suite.db.DB, 3*time.Second).
		Handle(context.Background(), queries.GetJobQuery{})

	suite.Require().ErrorIs(err, queries.ErrGetJobQueryIsNotConstructed)
	suite.Nil(got)
}

func (suite *QueriesIntegrationTestSuite) TestListOnlineWorkers_EmptyDatabase_ReturnsEmptySlice() {
	got, err := queries.NewListOnlineWorkersQueryHandler(suite.db.DB, 3*time.Second).
		Handle(context.Background(), queries.NewListOnlineWorkersQuery())

	suite.Require().NoError(err)
	suite.NotNil(got)
	suite.Empty(got)
}

func (suite *QueriesIntegrationTestSuite) TestListOnlineWorkers_SkipsOfflineAndOrdersByName() {
	ctx := context.Background()
	lat, lng := 40.1, -73.0
	suite.setPresence(ctx, "Bea", "5550000002", true, &lat, &lng)
	suite.setPresence(ctx, "Al", "5550000001", true, nil, nil)
	suite.setPresence(ctx, "Cy", "5550000003", false, &lat, &lng)

	got, err := queries.NewListOnlineWorkersQueryHandler(suite.db.DB, 3*time.Second).
		Handle(ctx, queries.NewListOnlineWorkersQuery())

	suite.Require().NoError(err)
	suite.Require().Len(got, 2)

	suite.Equal("Al", got[0].Name)
	suite.Equal("5550000001", got[0].Phone)
	suite.Nil(got[0].Location)

	suite.Equal("Bea", got[1].Name)
	suite.Require().NotNil(got[1].Location)
	suite.InDelta(lat, got[1].Location.Lat(), 1e-9)
	suite.InDelta(lng, got[1].Location.Lng(), 1e-9)
}

func (suite *QueriesIntegrationTestSuite) TestListOnlineWorkers_CancelledContext_ReturnsError() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := queries.NewListOnlineWorkersQueryHandler(suite.db.DB, 3*time.Second).
		Handle(ctx, queries.NewListOnlineWorkersQuery())

	suite.Require().ErrorIs(err, errs.ErrStorage)
	suite.Nil(got)
}

func (suite *QueriesIntegrationTestSuite) addJob(ctx context.Context, located bool) *job.Job {
	phone, err := kernel.NewPhone("5551112222")
	suite.Require().NoError(err)

	intake := job.Intake{Name: "Ann", Phone: phone, Address: "1 Main St", Minutes: 30}
	if located {
		lat, lng := 40.0, -73.0
		intake.Location, err = kernel.NewOptionalGeoPoint(&lat, &lng)
		suite.Require().NoError(err)
	}

	j, err := job.NewJob(kernel.NewUUID(), intake, 2250, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.jobs.Add(ctx, j))

	return j
}

func (suite *QueriesIntegrationTestSuite) setPresence(
	ctx context.Context,
	name, rawPhone string,
	online bool,
	lat, lng *float64,
) {
	phone, err := kernel.NewPhone(rawPhone)
	suite.Require().NoError(err)
	location, err := kernel.NewOptionalGeoPoint(lat, lng)
	suite.Require().NoError(err)

	w, err := worker.NewWorker(name, phone, online, location, time.Now())
	suite.Require().NoError(err)
	_, err = suite.workers.SetPresence(ctx, w)
	suite.Require().NoError(err)
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesIntegrationTestSuite))
}
