package queries_test

import (
	"context"
	"time"

	"lastmile/internal/adapters/out/postgres/batchrepo"
	"lastmile/internal/adapters/out/postgres/courierrepo"
	"lastmile/internal/adapters/out/postgres/orderrepo"
	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// postgresSuite owns the container and schema shared by the query handler suites.
type postgresSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
}

func (suite *postgresSuite) SetupSuite() {
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

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &courierrepo.CourierDTO{}, &batchrepo.BatchDTO{})
	suite.Require().NoError(err)
}

func (suite *postgresSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *postgresSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, couriers, batches").Error
	suite.Require().NoError(err)
}

func (suite *postgresSuite) saveCourier(name string, x, y float64) *courier.Courier {
	location, err := kernel.NewLocation(x, y)
	suite.Require().NoError(err)
	c, err := courier.NewCourier(kernel.NewUUID(), name, location)
	suite.Require().NoError(err)

	repo := courierrepo.NewGormCourierRepository(suite.db, &mockAggregateTracker{})
	suite.Require().NoError(repo.Add(context.Background(), c))
	return c
}

func (suite *postgresSuite) saveOrder(kitchenID, customerID, pickup string, x, y float64) *order.Order {
	pickupTime, err := kernel.ParseTimeOfDay(pickup)
	suite.Require().NoError(err)
	location, err := kernel.NewLocation(x, y)
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), kitchenID, customerID, pickupTime, location)
	suite.Require().NoError(err)

	repo := orderrepo.NewGormOrderRepository(suite.db, &mockAggregateTracker{})
	suite.Require().NoError(repo.Add(context.Background(), o))
	return o
}

// mockAggregateTracker is a no-op tracker; query tests do not inspect tracking.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}
