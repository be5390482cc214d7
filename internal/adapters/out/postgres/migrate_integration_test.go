package postgres_test

import (
	"context"
	"testing"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/pgtest"

	"github.com/stretchr/testify/suite"
)

type MigrateIntegrationTestSuite struct {
	suite.Suite
	db *pgtest.Database
}

func (suite *MigrateIntegrationTestSuite) SetupSuite() {
	db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *MigrateIntegrationTestSuite) TearDownSuite() {
	if suite.db != nil {
		suite.Require().NoError(suite.db.Terminate(context.Background()))
	}
}

func (suite *MigrateIntegrationTestSuite) TestMigrate_IsIdempotent() {
	version, err := postgres.Migrate(suite.db.DSN)

	suite.Require().NoError(err)
	suite.Equal(uint(4), version)
}

func (suite *MigrateIntegrationTestSuite) TestMigrate_IndexesAcceptedJobsByWorker() {
	var names []string
	err := suite.db.DB.Raw(
		"SELECT indexname FROM pg_indexes WHERE tablename = 'jobs' ORDER BY indexname",
	).Scan(&names).Error

	suite.Require().NoError(err)
	suite.Contains(names, "jobs_accepted_by_worker")
	suite.NotContains(names, "jobs_one_accepted_per_worker")
}

func TestMigrateIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(MigrateIntegrationTestSuite))
}
