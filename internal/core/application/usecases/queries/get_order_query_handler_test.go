package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfilment/internal/adapters/out/postgres/deliveryrepo"
	"fulfilment/internal/adapters/out/postgres/orderrepo"
	"fulfilment/internal/adapters/out/postgres/riderrepo"
	"fulfilment/internal/core/application/usecases/queries"
	"fulfilment/internal/core/domain/model/delivery"
	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/domain/model/rider"
	"fulfilment/internal/core/domain/services"
	"fulfilment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrderQueryHandlerTestSuite struct {
	suite.Suite
	container    *postgres.PostgresContainer
	db           *gorm.DB
	handler      queries.GetOrderQueryHandler
	orderRepo    *orderrepo.GormOrderRepository
	deliveryRepo *deliveryrepo.GormDeliveryRepository
	riderRepo    *riderrepo.GormRiderRepository
}

func (suite *GetOrderQueryHandlerTestSuite) SetupSuite() {
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

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{},
		&deliveryrepo.DeliveryDTO{}, &riderrepo.RiderDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOrderQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db)
	suite.deliveryRepo = deliveryrepo.NewGormDeliveryRepository(db)
	suite.riderRepo = riderrepo.NewGormRiderRepository(db)
}

func (suite *GetOrderQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetOrderQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_items, deliveries, riders").Error
	suite.Require().NoError(err)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_OrderWithoutDelivery() {
	ctx := context.Background()

	ord := suite.seedOrder()

	query, err := queries.NewGetOrderQuery(ord.ID())
	suite.Require().NoError(err)

	resp, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.True(resp.ID.IsEqual(ord.ID()))
	suite.Equal(order.NumberFor(ord.ID()), resp.Number)
	suite.Equal("Mama Nkechi Kitchen", resp.BusinessName)
	suite.Equal("+2348012345678", resp.CustomerPhone)
	suite.Equal(order.Pending.String(), resp.Status)
	suite.Equal(order.PaymentPending.String(), resp.PaymentStatus)
	suite.Len(resp.Items, 2)
	suite.Equal(kernel.NewMoneyFromNaira(9500), resp.ItemsSubtotal)
	suite.Equal(kernel.NewMoneyFromNaira(500), resp.Discount)
	suite.Equal(kernel.NewMoneyFromNaira(9000), resp.Total)
	suite.Nil(resp.Delivery)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_OrderWithAssignedDelivery() {
	ctx := context.Background()

	ord := suite.seedOrder()
	rdr := suite.seedRider("Emeka Obi", rider.Available)
	rec := suite.seedAssignedDelivery(ord.ID(), rdr)

	query, err := queries.NewGetOrderQuery(ord.ID())
	suite.Require().NoError(err)

	resp, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().NotNil(resp.Delivery)
	suite.Equal(delivery.Assigned.String(), resp.Delivery.Status)
	suite.Equal(rec.TrackingNumber(), resp.Delivery.TrackingNumber)
	suite.Equal("Emeka Obi", resp.Delivery.RiderName)
	suite.Equal(rec.Fee(), resp.Delivery.Fee)
	suite.InDelta(rec.DistanceKm(), resp.Delivery.DistanceKm, 0.001)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_NonExistentOrder_ReturnsNotFound() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	_, err := suite.handler.Handle(context.Background(), queries.GetOrderQuery{})

	suite.Require().ErrorIs(err, queries.ErrGetOrderQueryIsNotConstructed)
}

func (suite *GetOrderQueryHandlerTestSuite) seedOrder() *order.Order {
	first, err := order.NewItem(kernel.NewUUID(), kernel.NewMoneyFromNaira(4000), 2)
	suite.Require().NoError(err)
	second, err := order.NewItem(kernel.NewUUID(), kernel.NewMoneyFromNaira(1500), 1)
	suite.Require().NoError(err)

	ord, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "Mama Nkechi Kitchen",
		kernel.NewUUID(), "+2348012345678", []order.Item{first, second},
		kernel.NewMoneyFromNaira(500), time.Now().UTC())
	suite.Require().NoError(err)
	ord.PopEvents()

	suite.Require().NoError(suite.orderRepo.Add(context.Background(), ord))
	return ord
}

func (suite *GetOrderQueryHandlerTestSuite) seedRider(name string, status rider.Status) *rider.Rider {
	rdr, err := rider.NewRider(kernel.NewUUID(), name, "+2348098765432", time.Now().UTC())
	suite.Require().NoError(err)
	if status == rider.Busy {
		suite.Require().NoError(rdr.Claim(time.Now().UTC()))
	}

	suite.Require().NoError(suite.riderRepo.Add(context.Background(), rdr))
	return rdr
}

func (suite *GetOrderQueryHandlerTestSuite) seedAssignedDelivery(
	orderID kernel.UUID, rdr *rider.Rider,
) *delivery.Record {
	now := time.Now().UTC()

	pickupPoint, err := kernel.NewGeoPoint(6.6018, 3.3515)
	suite.Require().NoError(err)
	pickup, err := delivery.NewWaypoint(pickupPoint, "12 Allen Avenue, Ikeja")
	suite.Require().NoError(err)
	dropoffPoint, err := kernel.NewGeoPoint(6.4541, 3.3947)
	suite.Require().NoError(err)
	dropoff, err := delivery.NewWaypoint(dropoffPoint, "3 Marina Road, Lagos Island")
	suite.Require().NoError(err)

	rec, err := delivery.NewRecord(kernel.NewUUID(), orderID, pickup, dropoff, now)
	suite.Require().NoError(err)

	tariff, err := services.NewTariff(kernel.NewMoneyFromNaira(500), kernel.NewMoneyFromNaira(50))
	suite.Require().NoError(err)
	dispatcher := services.NewRiderDispatcher(services.NewDeliveryPricer())
	suite.Require().NoError(dispatcher.Assign(rec, rdr, tariff, now))

	suite.Require().NoError(suite.deliveryRepo.Add(context.Background(), rec))
	suite.Require().NoError(suite.riderRepo.Update(context.Background(), rdr))
	return rec
}

func TestGetOrderQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderQueryHandlerTestSuite))
}
