package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfilment/internal/adapters/out/postgres/orderrepo"
	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/ports"
	"fulfilment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite verifies order persistence against a
// real PostgreSQL instance.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items").Error)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)

	var itemCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.ItemDTO{}).Count(&itemCount).Error)
	suite.Equal(int64(2), itemCount)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_ReturnsOrder() {
	ctx := context.Background()

	originalOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, originalOrder))

	retrievedOrder, err := suite.repository.Get(ctx, originalOrder.ID())
	suite.Require().NoError(err)

	suite.True(retrievedOrder.ID().IsEqual(originalOrder.ID()))
	suite.Equal(originalOrder.BusinessName(), retrievedOrder.BusinessName())
	suite.Equal(originalOrder.CustomerPhone(), retrievedOrder.CustomerPhone())
	suite.Equal(order.Pending, retrievedOrder.Status())
	suite.Equal(order.PaymentPending, retrievedOrder.PaymentStatus())
	suite.Equal(originalOrder.Total(), retrievedOrder.Total())
	suite.Len(retrievedOrder.Items(), 2)
	suite.Empty(retrievedOrder.PopEvents())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrievedOrder, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrievedOrder)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_InvalidID_ReturnsValidationError() {
	_, err := suite.repository.Get(context.Background(), kernel.UUID{})

	suite.Require().ErrorIs(err, kernel.ErrUUIDIsNotConstructed)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsStatusAndFee() {
	ctx := context.Background()
	now := time.Now().UTC()

	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.TransitionTo(order.Confirmed, now))
	suite.Require().NoError(testOrder.MarkPaid(now))
	suite.Require().NoError(testOrder.SetDeliveryFee(kernel.NewMoneyFromNaira(920), now))
	testOrder.PopEvents()

	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrievedOrder, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, retrievedOrder.Status())
	suite.Equal(order.PaymentPaid, retrievedOrder.PaymentStatus())
	suite.Equal(kernel.NewMoneyFromNaira(920), retrievedOrder.DeliveryFee())
	suite.Equal(testOrder.Total(), retrievedOrder.Total())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_DoesNotTouchOrderLines() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.TransitionTo(order.Confirmed, time.Now().UTC()))
	testOrder.PopEvents()
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	var itemCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.ItemDTO{}).Count(&itemCount).Error)
	suite.Equal(int64(2), itemCount)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_VanishedRow_ReportsConflict() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()

	err := suite.repository.Update(ctx, testOrder)

	suite.Require().ErrorIs(err, ports.ErrConcurrentModification)
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	first, err := order.NewItem(kernel.NewUUID(), kernel.NewMoneyFromNaira(4000), 2)
	suite.Require().NoError(err)
	second, err := order.NewItem(kernel.NewUUID(), kernel.NewMoneyFromNaira(1500), 1)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "Mama Nkechi Kitchen",
		kernel.NewUUID(), "+2348012345678", []order.Item{first, second},
		kernel.NewMoneyFromNaira(500), time.Now().UTC())
	suite.Require().NoError(err)
	testOrder.PopEvents()

	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
