package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfilment/internal/core/application/usecases/commands"
	"fulfilment/internal/core/domain/model/delivery"
	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/notification"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/domain/model/rider"
	"fulfilment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, r *delivery.Record) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, r *delivery.Record) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Record), args.Error(1)
}

func (m *MockDeliveryRepository) GetActiveByOrder(ctx context.Context, orderID kernel.UUID) (*delivery.Record, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Record), args.Error(1)
}

func (m *MockDeliveryRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*delivery.Record, error) {
	args := m.Called(ctx, trackingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Record), args.Error(1)
}

type MockRiderRepository struct{ mock.Mock }

func (m *MockRiderRepository) Add(ctx context.Context, r *rider.Rider) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRiderRepository) Update(ctx context.Context, r *rider.Rider) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rider.Rider), args.Error(1)
}

func (m *MockRiderRepository) GetAllAvailable(ctx context.Context) ([]*rider.Rider, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rider.Rider), args.Error(1)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Add(ctx context.Context, e *notification.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockNotificationRepository) Update(ctx context.Context, e *notification.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Event), args.Error(1)
}

func (m *MockNotificationRepository) GetAllDue(ctx context.Context, now time.Time, limit int) ([]*notification.Event, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Event), args.Error(1)
}

type MockWebhookRepository struct{ mock.Mock }

func (m *MockWebhookRepository) Claim(ctx context.Context, provider string, token string, receivedAt time.Time) error {
	args := m.Called(ctx, provider, token, receivedAt)
	return args.Error(0)
}

// MockUoW satisfies every unit of work combination the handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func (m *MockUoW) RiderRepository() ports.RiderRepository {
	args := m.Called()
	return args.Get(0).(ports.RiderRepository)
}

func (m *MockUoW) NotificationRepository() ports.NotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRepository)
}

func (m *MockUoW) WebhookRepository() ports.WebhookRepository {
	args := m.Called()
	return args.Get(0).(ports.WebhookRepository)
}

type MockDispatchUoWFactory struct{ mock.Mock }

func (m *MockDispatchUoWFactory) Create() commands.DispatchUoW {
	args := m.Called()
	return args.Get(0).(commands.DispatchUoW)
}

type MockWebhookUoWFactory struct{ mock.Mock }

func (m *MockWebhookUoWFactory) Create() commands.WebhookUoW {
	args := m.Called()
	return args.Get(0).(commands.WebhookUoW)
}

type MockNotificationUoWFactory struct{ mock.Mock }

func (m *MockNotificationUoWFactory) Create() commands.NotificationUoW {
	args := m.Called()
	return args.Get(0).(commands.NotificationUoW)
}

type MockMessageSender struct{ mock.Mock }

func (m *MockMessageSender) Send(ctx context.Context, phone string, text string) error {
	args := m.Called(ctx, phone, text)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, change ports.StatusChange) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// Test data helpers shared by the handler tests.

func testItems(t *testing.T) []order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), kernel.NewMoneyFromNaira(4000), 3)
	require.NoError(t, err)
	return []order.Item{item}
}

func testWaypoint(t *testing.T, lat float64, lng float64, address string) delivery.Waypoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	wp, err := delivery.NewWaypoint(point, address)
	require.NoError(t, err)
	return wp
}

func newTestOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	ord, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), "Mama Nkechi Kitchen",
		kernel.NewUUID(), "+2348012345678", testItems(t), 0, time.Now().UTC())
	require.NoError(t, err)

	path := []order.Status{order.Confirmed, order.Preparing, order.Ready, order.OutForDelivery, order.Delivered}
	for _, next := range path {
		if ord.Status() == status {
			break
		}
		require.NoError(t, ord.TransitionTo(next, time.Now().UTC()))
		if ord.Status() == status {
			break
		}
	}
	ord.PopEvents()
	return ord
}

func newTestRecord(t *testing.T, orderID kernel.UUID) *delivery.Record {
	t.Helper()
	rec, err := delivery.NewRecord(
		kernel.NewUUID(), orderID,
		testWaypoint(t, 6.5244, 3.3792, "12 Allen Avenue, Ikeja"),
		testWaypoint(t, 6.4550, 3.4246, "5 Marina Road, Lagos Island"),
		time.Now().UTC())
	require.NoError(t, err)
	return rec
}
