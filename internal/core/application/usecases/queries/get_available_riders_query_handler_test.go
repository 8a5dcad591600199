package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfilment/internal/adapters/out/postgres/riderrepo"
	"fulfilment/internal/core/application/usecases/queries"
	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/rider"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetAvailableRidersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetAvailableRidersQueryHandler
	riderRepo *riderrepo.GormRiderRepository
}

func (suite *GetAvailableRidersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&riderrepo.RiderDTO{}))

	suite.handler = queries.NewGetAvailableRidersQueryHandler(db)
	suite.riderRepo = riderrepo.NewGormRiderRepository(db)
}

func (suite *GetAvailableRidersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetAvailableRidersQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE riders").Error)
}

func (suite *GetAvailableRidersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	result, err := suite.handler.Handle(context.Background(), queries.NewGetAvailableRidersQuery())

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetAvailableRidersQueryHandlerTestSuite) TestHandle_ReturnsOnlyAvailableRidersSortedByName() {
	suite.seedRider("Emeka Obi", rider.Available, false)
	suite.seedRider("Adaeze Nwosu", rider.Available, true)
	suite.seedRider("Tunde Bakare", rider.Busy, true)
	suite.seedRider("Chiamaka Eze", rider.Offline, false)

	result, err := suite.handler.Handle(context.Background(), queries.NewGetAvailableRidersQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal("Adaeze Nwosu", result[0].Name)
	suite.Equal("Emeka Obi", result[1].Name)
}

func (suite *GetAvailableRidersQueryHandlerTestSuite) TestHandle_ReportsLastKnownPosition() {
	suite.seedRider("Emeka Obi", rider.Available, true)
	suite.seedRider("Adaeze Nwosu", rider.Available, false)

	result, err := suite.handler.Handle(context.Background(), queries.NewGetAvailableRidersQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	suite.Nil(result[0].Lat)
	suite.Nil(result[0].Lng)

	suite.Require().NotNil(result[1].Lat)
	suite.Require().NotNil(result[1].Lng)
	suite.InDelta(6.5244, *result[1].Lat, 0.0001)
	suite.InDelta(3.3792, *result[1].Lng, 0.0001)
}

func (suite *GetAvailableRidersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	_, err := suite.handler.Handle(context.Background(), queries.GetAvailableRidersQuery{})

	suite.Require().ErrorIs(err, queries.ErrGetAvailableRidersQueryIsNotConstructed)
}

func (suite *GetAvailableRidersQueryHandlerTestSuite) seedRider(
	name string, status rider.Status, withLocation bool,
) {
	now := time.Now().UTC()

	rdr, err := rider.NewRider(kernel.NewUUID(), name, "+2348098765432", now)
	suite.Require().NoError(err)

	if withLocation {
		point, pointErr := kernel.NewGeoPoint(6.5244, 3.3792)
		suite.Require().NoError(pointErr)
		suite.Require().NoError(rdr.ReportLocation(point, now))
	}

	switch status {
	case rider.Busy:
		suite.Require().NoError(rdr.Claim(now))
	case rider.Offline:
		suite.Require().NoError(rdr.GoOffline(now))
	default:
	}

	suite.Require().NoError(suite.riderRepo.Add(context.Background(), rdr))
}

func TestGetAvailableRidersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetAvailableRidersQueryHandlerTestSuite))
}
