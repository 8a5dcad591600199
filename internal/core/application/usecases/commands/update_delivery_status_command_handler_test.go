package commands_test

import (
	"log/slog"
	"testing"
	"time"

	"fulfilment/internal/core/application/usecases/commands"
	"fulfilment/internal/core/domain/model/delivery"
	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/domain/model/rider"
	"fulfilment/internal/core/domain/services"
	"fulfilment/internal/pkg/locks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUpdateStatusHandler(factory commands.DispatchUoWFactory) commands.UpdateDeliveryStatusCommandHandler {
	return commands.NewUpdateDeliveryStatusCommandHandler(
		factory,
		locks.NewKeyedMutex(),
		services.NewRiderDispatcher(services.NewDeliveryPricer()),
		commands.NewBroadcaster(nil, nil, slog.Default()),
	)
}

// newInTransitFixture builds a delivery in transit with its busy rider.
func newInTransitFixture(t *testing.T, orderID kernel.UUID) (*delivery.Record, *rider.Rider) {
	t.Helper()

	now := time.Now().UTC()
	rec := newTestRecord(t, orderID)
	rdr := newTestRider(t)

	require.NoError(t, rdr.Claim(now))
	require.NoError(t, rec.Assign(rdr.ID(), 8.4, kernel.NewMoneyFromNaira(920), now))
	require.NoError(t, rec.MarkPickedUp(now))
	require.NoError(t, rec.MarkInTransit(now))

	return rec, rdr
}

func TestUpdateDeliveryStatusCommandHandler_Handle_DeliveredCompletesOrder(t *testing.T) {
	ctx := t.Context()

	ord := newTestOrder(t, order.OutForDelivery)
	rec, rdr := newInTransitFixture(t, ord.ID())

	cmd, err := commands.NewUpdateDeliveryStatusCommand(rec.ID(), delivery.Delivered)
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	orderRepo := new(MockOrderRepository)
	riderRepo := new(MockRiderRepository)
	notificationRepo := new(MockNotificationRepository)

	readUow := new(MockUoW)
	uow := new(MockUoW)

	mock.InOrder(
		readUow.On("Begin", ctx).Return(nil).Once(),
		readUow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Get", ctx, rec.ID()).Return(rec, nil).Once(),
		readUow.On("Rollback", ctx).Return(nil).Once(),

		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Get", ctx, rec.ID()).Return(rec, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		uow.On("RiderRepository").Return(riderRepo).Once(),
		riderRepo.On("Get", ctx, rdr.ID()).Return(rdr, nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Update", ctx, rec).Return(nil).Once(),
		uow.On("RiderRepository").Return(riderRepo).Once(),
		riderRepo.On("Update", ctx, rdr).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, ord).Return(nil).Once(),
		uow.On("NotificationRepository").Return(notificationRepo).Once(),
		notificationRepo.On("Add", ctx, mock.AnythingOfType("*notification.Event")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(readUow).Once()
	factory.On("Create").Return(uow).Once()

	err = newUpdateStatusHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, delivery.Delivered, rec.Status())
	assert.Equal(t, order.Delivered, ord.Status())
	assert.Equal(t, rider.Available, rdr.Status())
	uow.AssertExpectations(t)
}

func TestUpdateDeliveryStatusCommandHandler_Handle_DeliveredRequiresOutForDelivery(t *testing.T) {
	ctx := t.Context()

	ord := newTestOrder(t, order.Ready)
	rec, rdr := newInTransitFixture(t, ord.ID())

	cmd, err := commands.NewUpdateDeliveryStatusCommand(rec.ID(), delivery.Delivered)
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	orderRepo := new(MockOrderRepository)
	riderRepo := new(MockRiderRepository)

	readUow := new(MockUoW)
	uow := new(MockUoW)

	mock.InOrder(
		readUow.On("Begin", ctx).Return(nil).Once(),
		readUow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Get", ctx, rec.ID()).Return(rec, nil).Once(),
		readUow.On("Rollback", ctx).Return(nil).Once(),

		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Get", ctx, rec.ID()).Return(rec, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once(),
		uow.On("RiderRepository").Return(riderRepo).Once(),
		riderRepo.On("Get", ctx, rdr.ID()).Return(rdr, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(readUow).Once()
	factory.On("Create").Return(uow).Once()

	err = newUpdateStatusHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, services.ErrOrderNotReadyForDelivery)
	assert.Equal(t, delivery.InTransit, rec.Status())
	assert.Equal(t, rider.Busy, rdr.Status())
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestUpdateDeliveryStatusCommandHandler_Handle_DuplicateReportIsNoOp(t *testing.T) {
	ctx := t.Context()

	ord := newTestOrder(t, order.OutForDelivery)
	rec, _ := newInTransitFixture(t, ord.ID())

	cmd, err := commands.NewUpdateDeliveryStatusCommand(rec.ID(), delivery.InTransit)
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	readUow := new(MockUoW)
	uow := new(MockUoW)

	mock.InOrder(
		readUow.On("Begin", ctx).Return(nil).Once(),
		readUow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Get", ctx, rec.ID()).Return(rec, nil).Once(),
		readUow.On("Rollback", ctx).Return(nil).Once(),

		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Get", ctx, rec.ID()).Return(rec, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(readUow).Once()
	factory.On("Create").Return(uow).Once()

	err = newUpdateStatusHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, delivery.InTransit, rec.Status())
	uow.AssertNotCalled(t, "Commit", ctx)
	uow.AssertNotCalled(t, "OrderRepository")
}
