package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrderSummaryQueryHandlerTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	handler    queries.GetOrderSummaryQueryHandler
	repository *orderrepo.GormOrderRepository
}

func (suite *GetOrderSummaryQueryHandlerTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.TimelineEntryDTO{}))

	suite.handler = queries.NewGetOrderSummaryQueryHandler(db)
}

func (suite *GetOrderSummaryQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_timeline_entries").Error)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *GetOrderSummaryQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetOrderSummaryQueryHandlerTestSuite) TestHandle_PlacedOrder_ReturnsBaseReadModel() {
	placed := suite.newPlacedOrder()
	suite.Require().NoError(suite.repository.Add(context.Background(), placed))

	query, err := queries.NewGetOrderSummaryQuery(placed.ID())
	suite.Require().NoError(err)

	summary, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(placed.ID(), summary.ID)
	suite.Equal("placed", summary.Status)
	suite.Equal("site@builder.example", summary.CustomerContact)
	suite.Equal([]string{"cement 50kg", "steel rods 12mm"}, summary.Items)
	suite.Equal(100, summary.Volume)
	suite.InDelta(placed.Destination().Latitude(), summary.Destination.Latitude(), 1e-9)
	suite.InDelta(placed.Destination().Longitude(), summary.Destination.Longitude(), 1e-9)
	suite.InDelta(placed.Pricing().DistanceKm(), summary.DistanceKm, 1e-6)
	suite.Equal("extended", summary.Zone)
	suite.Equal("1-2 days", summary.Eta)
	suite.True(placed.Pricing().TransportCost().Equal(summary.TransportCost))
	suite.True(decimal.NewFromInt(2000).Equal(summary.ItemsTotal))
	suite.True(placed.Pricing().Total().Equal(summary.Total))

	suite.Nil(summary.AssignedPilotID)
	suite.Nil(summary.DriverName)
	suite.Nil(summary.DriverPhone)
	suite.Nil(summary.DriverVehicleReg)
	suite.Nil(summary.HandoffCodeExpiresAt)
	suite.Nil(summary.JourneyStartedAt)
	suite.Nil(summary.DeliveredAt)
	suite.Empty(summary.DeliveryNotes)

	suite.Require().Len(summary.Timeline, 1)
	suite.Equal("placed", summary.Timeline[0].Status)
	suite.Equal("order placed", summary.Timeline[0].Note)
	suite.WithinDuration(placed.Timeline()[0].At(), summary.Timeline[0].At, time.Second)
}

func (suite *GetOrderSummaryQueryHandlerTestSuite) TestHandle_DispatchedOrder_ExposesDriverAndCodeExpiry() {
	dispatched, driver := suite.newDispatchedOrder()
	expiresAt := time.Now().UTC().Add(48 * time.Hour)
	suite.Require().NoError(dispatched.SetHandoffCode("482913", expiresAt))
	suite.Require().NoError(dispatched.StartJourney(driver.PilotID(), time.Now().UTC()))
	suite.Require().NoError(suite.repository.Add(context.Background(), dispatched))

	query, err := queries.NewGetOrderSummaryQuery(dispatched.ID())
	suite.Require().NoError(err)

	summary, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal("dispatched", summary.Status)

	suite.Require().NotNil(summary.AssignedPilotID)
	suite.True(summary.AssignedPilotID.IsEqual(driver.PilotID()))
	suite.Require().NotNil(summary.DriverName)
	suite.Equal("Ravi Kumar", *summary.DriverName)
	suite.Require().NotNil(summary.DriverPhone)
	suite.Equal("+91-98-7654-3210", *summary.DriverPhone)
	suite.Require().NotNil(summary.DriverVehicleReg)
	suite.Equal("MH-12-AB-1234", *summary.DriverVehicleReg)

	suite.Require().NotNil(summary.HandoffCodeExpiresAt)
	suite.WithinDuration(expiresAt, *summary.HandoffCodeExpiresAt, time.Second)
	suite.NotNil(summary.JourneyStartedAt)
	suite.Nil(summary.DeliveredAt)

	suite.Require().Len(summary.Timeline, 4)
	suite.Equal("order placed", summary.Timeline[0].Note)
	suite.Equal("payment captured", summary.Timeline[1].Note)
	suite.Equal("claimed by Ravi Kumar", summary.Timeline[2].Note)
	suite.Equal("journey started", summary.Timeline[3].Note)
	suite.Equal(driver.PilotID().String(), summary.Timeline[3].Actor)
}

func (suite *GetOrderSummaryQueryHandlerTestSuite) TestHandle_DeliveredOrder_KeepsDriverAfterRelease() {
	dispatched, driver := suite.newDispatchedOrder()
	suite.Require().NoError(dispatched.SetHandoffCode("482913", time.Now().UTC().Add(48*time.Hour)))
	suite.Require().NoError(dispatched.CompleteDelivery("left at the site gate", time.Now().UTC()))
	suite.Require().NoError(suite.repository.Add(context.Background(), dispatched))

	query, err := queries.NewGetOrderSummaryQuery(dispatched.ID())
	suite.Require().NoError(err)

	summary, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal("delivered", summary.Status)

	suite.Nil(summary.AssignedPilotID)
	suite.Require().NotNil(summary.DriverName)
	suite.Equal("Ravi Kumar", *summary.DriverName)

	suite.Nil(summary.HandoffCodeExpiresAt)
	suite.Require().NotNil(summary.DeliveredAt)
	suite.WithinDuration(time.Now().UTC(), *summary.DeliveredAt, time.Minute)
	suite.Equal("left at the site gate", summary.DeliveryNotes)

	suite.Require().Len(summary.Timeline, 4)
	suite.Equal("delivery completed", summary.Timeline[3].Note)
	suite.Equal(driver.PilotID().String(), summary.Timeline[3].Actor)
}

func (suite *GetOrderSummaryQueryHandlerTestSuite) TestHandle_NonExistentOrder_ReturnsNotFoundError() {
	query, err := queries.NewGetOrderSummaryQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetOrderSummaryQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetOrderSummaryQuery{}

	_, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetOrderSummaryQuery constructor")
}

func (suite *GetOrderSummaryQueryHandlerTestSuite) newPlacedOrder() *order.Order {
	engine, err := services.NewDistancePricingEngine(decimal.NewFromInt(150))
	suite.Require().NoError(err)

	origin, err := kernel.NewCoordinates(19.0760, 72.8777)
	suite.Require().NoError(err)
	destination, err := kernel.NewCoordinates(18.5204, 73.8567)
	suite.Require().NoError(err)

	pricing, err := engine.Quote(origin, destination, decimal.NewFromInt(2000))
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		"site@builder.example",
		[]string{"cement 50kg", "steel rods 12mm"},
		100,
		origin,
		destination,
		pricing,
		time.Now().UTC(),
	)
	suite.Require().NoError(err)

	return testOrder
}

func (suite *GetOrderSummaryQueryHandlerTestSuite) newDispatchedOrder() (*order.Order, order.DriverDetails) {
	testOrder := suite.newPlacedOrder()
	suite.Require().NoError(testOrder.Advance(order.Confirmed, "payment captured", "payments", time.Now().UTC()))

	driver, err := order.NewDriverDetails(kernel.NewUUID(), "Ravi Kumar", "+91-98-7654-3210", "MH-12-AB-1234")
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.AssignPilot(driver, time.Now().UTC()))

	return testOrder, driver
}

func TestGetOrderSummaryQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderSummaryQueryHandlerTestSuite))
}
