package cmd

import (
	"log/slog"

	httpin "fulfilment/internal/adapters/in/http"
	"fulfilment/internal/adapters/out/kafka"
	"fulfilment/internal/adapters/out/postgres"
	"fulfilment/internal/adapters/out/realtime"
	"fulfilment/internal/adapters/out/whatsapp"
	"fulfilment/internal/core/application/usecases/commands"
	"fulfilment/internal/core/application/usecases/queries"
	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/services"
	"fulfilment/internal/core/ports"
	"fulfilment/internal/jobs"
	"fulfilment/internal/pkg/locks"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters, domain services and use case handlers.
// Every Create* method hands out a ready-to-use handler over the shared
// infrastructure.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	orderLocks *locks.KeyedMutex
	tariff     services.Tariff
	dispatcher services.RiderDispatcher
	catalog    services.MessageCatalog

	bus       *realtime.Bus
	publisher *kafka.StatusChangePublisher
	sender    *whatsapp.Sender

	logger *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	baseFee, err := kernel.NewMoney(config.TariffBaseFeeKobo)
	if err != nil {
		return nil, err
	}

	perKmRate, err := kernel.NewMoney(config.TariffPerKmRateKobo)
	if err != nil {
		return nil, err
	}

	tariff, err := services.NewTariff(baseFee, perKmRate)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		orderLocks: locks.NewKeyedMutex(),
		tariff:     tariff,
		dispatcher: services.NewRiderDispatcher(services.NewDeliveryPricer()),
		catalog:    services.NewMessageCatalog(),
		bus:        realtime.NewBus(),
		publisher:  kafka.NewStatusChangePublisher([]string{config.KafkaHost}, config.KafkaOrderEventsTopic),
		sender:     whatsapp.NewSender(config.WhatsAppBaseURL, config.WhatsAppAPIKey),
		logger:     logger,
	}, nil
}

// Close releases infrastructure held by the root (the Kafka writer).
func (c *CompositionRoot) Close() error {
	return c.publisher.Close()
}

// OrderStream exposes the realtime bus for the SSE endpoint.
func (c *CompositionRoot) OrderStream() ports.OrderStream {
	return c.bus
}

func (c *CompositionRoot) createBroadcaster() commands.Broadcaster {
	return commands.NewBroadcaster(c.publisher, c.bus, c.logger)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.createBroadcaster())
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, c.orderLocks, c.dispatcher, c.createBroadcaster())
}

func (c *CompositionRoot) CreateAssignRiderCommandHandler() commands.AssignRiderCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignRiderCommandHandler(f, c.orderLocks, c.dispatcher, c.tariff, c.createBroadcaster())
}

func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateDeliveryStatusCommandHandler(f, c.orderLocks, c.dispatcher, c.createBroadcaster())
}

func (c *CompositionRoot) CreateReassignRiderCommandHandler() commands.ReassignRiderCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReassignRiderCommandHandler(f, c.orderLocks, c.dispatcher, c.tariff, c.createBroadcaster())
}

func (c *CompositionRoot) CreateIngestPaymentWebhookCommandHandler() commands.IngestPaymentWebhookCommandHandler {
	var f commands.WebhookUoWFactory = FuncWebhookUoWFactory(func() commands.WebhookUoW {
		return c.uowFactory.Create()
	})
	return commands.NewIngestPaymentWebhookCommandHandler(f, c.orderLocks, c.createBroadcaster())
}

func (c *CompositionRoot) CreateIngestDeliveryWebhookCommandHandler() commands.IngestDeliveryWebhookCommandHandler {
	var f commands.WebhookUoWFactory = FuncWebhookUoWFactory(func() commands.WebhookUoW {
		return c.uowFactory.Create()
	})
	return commands.NewIngestDeliveryWebhookCommandHandler(f, c.orderLocks, c.dispatcher, c.createBroadcaster())
}

func (c *CompositionRoot) CreateDispatchNotificationsCommandHandler() commands.DispatchNotificationsCommandHandler {
	var f commands.NotificationUoWFactory = FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchNotificationsCommandHandler(f, c.catalog, c.sender, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateTrackDeliveryQueryHandler() queries.TrackDeliveryQueryHandler {
	return queries.NewTrackDeliveryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableRidersQueryHandler() queries.GetAvailableRidersQueryHandler {
	return queries.NewGetAvailableRidersQueryHandler(c.gormDB)
}

// CreateServer assembles the HTTP server over every handler.
func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateTransitionOrderCommandHandler(),
		c.CreateAssignRiderCommandHandler(),
		c.CreateUpdateDeliveryStatusCommandHandler(),
		c.CreateReassignRiderCommandHandler(),
		c.CreateIngestPaymentWebhookCommandHandler(),
		c.CreateIngestDeliveryWebhookCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateTrackDeliveryQueryHandler(),
		c.CreateGetAvailableRidersQueryHandler(),
		c.OrderStream(),
	)
}

// CreateJobManager assembles the background job manager.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateDispatchNotificationsCommandHandler(),
		c.config.NotificationSchedule,
		c.logger,
	)
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}

type FuncWebhookUoWFactory func() commands.WebhookUoW

func (f FuncWebhookUoWFactory) Create() commands.WebhookUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}
