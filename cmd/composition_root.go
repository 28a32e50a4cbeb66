package cmd

import (
	"context"
	"log/slog"
	"os"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/bindingrepo"
	"fulfillment/internal/adapters/out/postgres/webhookrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/slot"
	"fulfillment/internal/jobs"
	"fulfillment/internal/realtime"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	bus         *realtime.Bus
	broadcaster *realtime.Broadcaster
	logger      *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	bus := realtime.NewBus()

	usageReader := bindingrepo.NewGormUsageReader(gormDB)
	loader := enrichedSlotLoader{
		handler: queries.NewGetSlotQueryHandler(gormDB, usageReader),
	}
	targets := webhookrepo.NewGormWebhookTargetRepository(gormDB, noopTracker{})

	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		bus:         bus,
		broadcaster: realtime.NewBroadcaster(loader, targets, bus, logger),
		logger:      logger,
	}
}

func (c *CompositionRoot) Bus() *realtime.Bus {
	return c.bus
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CreateCreateSlotCommandHandler() commands.CreateSlotCommandHandler {
	var f commands.SlotUoWFactory = FuncSlotUoWFactory(func() commands.SlotUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateSlotCommandHandler(f, c.broadcaster)
}

func (c *CompositionRoot) CreateReserveCapacityCommandHandler() commands.ReserveCapacityCommandHandler {
	var f commands.ReservationUoWFactory = FuncReservationUoWFactory(func() commands.ReservationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReserveCapacityCommandHandler(f, c.broadcaster)
}

func (c *CompositionRoot) CreateRegisterWebhookCommandHandler() commands.RegisterWebhookCommandHandler {
	var f commands.WebhookUoWFactory = FuncWebhookUoWFactory(func() commands.WebhookUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterWebhookCommandHandler(f)
}

func (c *CompositionRoot) CreateGetSlotQueryHandler() queries.GetSlotQueryHandler {
	return queries.NewGetSlotQueryHandler(c.gormDB, bindingrepo.NewGormUsageReader(c.gormDB))
}

func (c *CompositionRoot) CreateListSlotsQueryHandler() queries.ListSlotsQueryHandler {
	return queries.NewListSlotsQueryHandler(c.gormDB, bindingrepo.NewGormUsageReader(c.gormDB))
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	upcoming := queries.NewListUpcomingSlotIDsQueryHandler(c.gormDB)
	return jobs.NewJobManager(upcoming, c.broadcaster, c.logger)
}

type FuncSlotUoWFactory func() commands.SlotUoW

func (f FuncSlotUoWFactory) Create() commands.SlotUoW {
	return f()
}

type FuncReservationUoWFactory func() commands.ReservationUoW

func (f FuncReservationUoWFactory) Create() commands.ReservationUoW {
	return f()
}

type FuncWebhookUoWFactory func() commands.WebhookUoW

func (f FuncWebhookUoWFactory) Create() commands.WebhookUoW {
	return f()
}

// enrichedSlotLoader adapts the single-slot query handler to the broadcaster's
// loader contract.
type enrichedSlotLoader struct {
	handler queries.GetSlotQueryHandler
}

func (l enrichedSlotLoader) Load(ctx context.Context, slotID kernel.UUID) (slot.EnrichedSlot, error) {
	query, err := queries.NewGetSlotQuery(slotID)
	if err != nil {
		return slot.EnrichedSlot{}, err
	}
	return l.handler.Handle(ctx, query)
}

// noopTracker backs read-only repository use outside a unit of work.
type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}
