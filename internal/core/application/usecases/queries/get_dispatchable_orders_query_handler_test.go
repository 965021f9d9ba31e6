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

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetDispatchableOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	handler    queries.GetDispatchableOrdersQueryHandler
	repository *orderrepo.GormOrderRepository
}

func (suite *GetDispatchableOrdersQueryHandlerTestSuite) SetupSuite() {
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

	suite.handler = queries.NewGetDispatchableOrdersQueryHandler(db)
}

func (suite *GetDispatchableOrdersQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_timeline_entries").Error)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *GetDispatchableOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetDispatchableOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetDispatchableOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetDispatchableOrdersQueryHandlerTestSuite) TestHandle_MixedStatuses_ReturnsOnlyReadyUnassignedOrders() {
	placed := suite.newPlacedOrder()
	confirmed := suite.newConfirmedOrder()
	preparing := suite.newOrderInStatus(order.Preparing)
	processing := suite.newOrderInStatus(order.Processing)
	dispatched := suite.newDispatchedOrder()
	cancelled := suite.newConfirmedOrder()
	suite.Require().NoError(cancelled.Cancel("payment reversed", "payments", time.Now().UTC()))

	suite.saveOrders(placed, confirmed, preparing, processing, dispatched, cancelled)

	query := queries.NewGetDispatchableOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Len(result, 3)

	resultMap := make(map[kernel.UUID]queries.GetDispatchableOrdersQueryResponse)
	for _, r := range result {
		resultMap[r.ID] = r
	}

	suite.Contains(resultMap, confirmed.ID())
	suite.Contains(resultMap, preparing.ID())
	suite.Contains(resultMap, processing.ID())
	suite.NotContains(resultMap, placed.ID())
	suite.NotContains(resultMap, dispatched.ID())
	suite.NotContains(resultMap, cancelled.ID())

	suite.Equal("confirmed", resultMap[confirmed.ID()].Status)
	suite.Equal("preparing", resultMap[preparing.ID()].Status)
	suite.Equal("processing", resultMap[processing.ID()].Status)
}

func (suite *GetDispatchableOrdersQueryHandlerTestSuite) TestHandle_ClaimableOrder_CarriesTransportDetails() {
	confirmed := suite.newConfirmedOrder()
	suite.saveOrders(confirmed)

	query := queries.NewGetDispatchableOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)

	claimable := result[0]
	suite.Equal(confirmed.ID(), claimable.ID)
	suite.Equal(100, claimable.Volume)
	suite.InDelta(confirmed.Destination().Latitude(), claimable.Destination.Latitude(), 1e-9)
	suite.InDelta(confirmed.Destination().Longitude(), claimable.Destination.Longitude(), 1e-9)
	suite.InDelta(confirmed.Pricing().DistanceKm(), claimable.DistanceKm, 1e-6)
	suite.Equal("extended", claimable.Zone)
	suite.Equal("1-2 days", claimable.Eta)
	suite.True(confirmed.Pricing().TransportCost().Equal(claimable.TransportCost))
}

func (suite *GetDispatchableOrdersQueryHandlerTestSuite) TestHandle_SeveralOrders_ReturnsOldestFirst() {
	oldest := suite.newConfirmedOrder()
	middle := suite.newConfirmedOrder()
	newest := suite.newConfirmedOrder()
	suite.saveOrders(newest, oldest, middle)

	now := time.Now().UTC()
	suite.backdateCreation(oldest.ID(), now.Add(-3*time.Hour))
	suite.backdateCreation(middle.ID(), now.Add(-2*time.Hour))
	suite.backdateCreation(newest.ID(), now.Add(-1*time.Hour))

	query := queries.NewGetDispatchableOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal(oldest.ID(), result[0].ID)
	suite.Equal(middle.ID(), result[1].ID)
	suite.Equal(newest.ID(), result[2].ID)
}

func (suite *GetDispatchableOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetDispatchableOrdersQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetDispatchableOrdersQuery constructor")
}

func (suite *GetDispatchableOrdersQueryHandlerTestSuite) newPlacedOrder() *order.Order {
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

func (suite *GetDispatchableOrdersQueryHandlerTestSuite) newConfirmedOrder() *order.Order {
	testOrder := suite.newPlacedOrder()
	suite.Require().NoError(testOrder.Advance(order.Confirmed, "payment captured", "payments", time.Now().UTC()))
	return testOrder
}

func (suite *GetDispatchableOrdersQueryHandlerTestSuite) newOrderInStatus(target order.Status) *order.Order {
	testOrder := suite.newConfirmedOrder()
	now := time.Now().UTC()

	if target == order.Preparing || target == order.Processing {
		suite.Require().NoError(testOrder.Advance(order.Preparing, "picking started", "warehouse", now))
	}
	if target == order.Processing {
		suite.Require().NoError(testOrder.Advance(order.Processing, "loading at dock", "warehouse", now))
	}

	return testOrder
}

func (suite *GetDispatchableOrdersQueryHandlerTestSuite) newDispatchedOrder() *order.Order {
	testOrder := suite.newConfirmedOrder()
	driver, err := order.NewDriverDetails(kernel.NewUUID(), "Ravi Kumar", "+91-98-7654-3210", "MH-12-AB-1234")
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.AssignPilot(driver, time.Now().UTC()))
	return testOrder
}

func (suite *GetDispatchableOrdersQueryHandlerTestSuite) saveOrders(orders ...*order.Order) {
	for _, o := range orders {
		suite.Require().NoError(suite.repository.Add(context.Background(), o))
	}
}

func (suite *GetDispatchableOrdersQueryHandlerTestSuite) backdateCreation(orderID kernel.UUID, createdAt time.Time) {
	err := suite.db.Exec("UPDATE orders SET created_at = ? WHERE id = ?", createdAt, orderID.Bytes()).Error
	suite.Require().NoError(err)
}

func TestGetDispatchableOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetDispatchableOrdersQueryHandlerTestSuite))
}
