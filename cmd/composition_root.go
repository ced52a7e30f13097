package cmd

import (
	"log/slog"

	httpin "lastmile/internal/adapters/in/http"
	"lastmile/internal/adapters/out/events"
	"lastmile/internal/adapters/out/postgres"
	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"
	"lastmile/internal/jobs"
	"lastmile/internal/metrics"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	dispatcher services.Dispatcher
	publisher  *events.RedisPublisher
	logger     *slog.Logger
}

// NewCompositionRoot wires the application. publisher may be nil, in which case
// couriers are not notified about their assignments.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	grouping services.GrouperConfig,
	assigning services.AssignerConfig,
	publisher *events.RedisPublisher,
	logger *slog.Logger,
) (CompositionRoot, error) {
	dispatcher, err := services.NewDispatcher(grouping, assigning)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateDispatchCommandHandler() commands.DispatchCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})

	// A nil *RedisPublisher must not reach the handler as a non-nil interface.
	var publisher ports.AssignmentPublisher
	if c.publisher != nil {
		publisher = c.publisher
	}

	return commands.NewDispatchCommandHandler(f, c.dispatcher, publisher, metrics.DispatchObserver{})
}

func (c *CompositionRoot) CreateGetAllCouriersQueryHandler() queries.GetAllCouriersQueryHandler {
	return queries.NewGetAllCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingOrdersQueryHandler() queries.GetPendingOrdersQueryHandler {
	return queries.NewGetPendingOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCourierBatchesQueryHandler() queries.GetCourierBatchesQueryHandler {
	return queries.NewGetCourierBatchesQueryHandler(c.gormDB)
}

// CreateRouter builds the echo instance serving the HTTP API.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	createOrder := c.CreateCreateOrderCommandHandler()
	createCourier := c.CreateCreateCourierCommandHandler()

	server := httpin.NewServer(
		&createOrder,
		&createCourier,
		c.CreateDispatchCommandHandler(),
		c.CreateGetAllCouriersQueryHandler(),
		c.CreateGetPendingOrdersQueryHandler(),
		c.CreateGetCourierBatchesQueryHandler(),
	)

	return httpin.NewRouter(httpin.RouterConfig{
		DispatchRate:  c.config.DispatchRate,
		DispatchBurst: c.config.DispatchBurst,
	}, server)
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	return jobs.NewJobManager(c.CreateDispatchCommandHandler(), c.config.DispatchSchedule, c.logger)
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
