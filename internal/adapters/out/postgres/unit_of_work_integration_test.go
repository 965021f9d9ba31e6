package postgres_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/outboxrepo"
	"dispatch/internal/adapters/out/postgres/pilotrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/pilot"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/outbox"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies transaction coordination across the
// order, pilot and outbox repositories using a PostgreSQL container. The
// claim workflow is the central scenario: its three writes either all commit
// or all disappear.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
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

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.TimelineEntryDTO{},
		&pilotrepo.PilotDTO{},
		&outboxrepo.MessageDTO{},
	))

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE orders, order_timeline_entries, pilots, outbox_messages").Error,
	)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.OrderRepository(), "First instance should provide order repository")
	suite.NotNil(uow1.PilotRepository(), "First instance should provide pilot repository")
	suite.NotNil(uow1.OutboxRepository(), "First instance should provide outbox repository")
	suite.NotNil(uow2.OrderRepository(), "Second instance should provide order repository")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ClaimWorkflow_CommitsAtomically() {
	ctx := context.Background()
	orderID, pilotID := suite.seedConfirmedOrderAndPilot()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	// Load both aggregates inside the transaction.
	claimedOrder, err := uow.OrderRepository().Get(ctx, orderID)
	suite.Require().NoError(err)
	claimingPilot, err := uow.PilotRepository().Get(ctx, pilotID)
	suite.Require().NoError(err)

	// Assign, conditionally write the order, mark the pilot busy and queue
	// the customer notification, all on the same transaction.
	driver, err := claimingPilot.DriverSnapshot()
	suite.Require().NoError(err)
	suite.Require().NoError(claimedOrder.AssignPilot(driver, time.Now().UTC()))

	claimed, err := uow.OrderRepository().UpdateClaimed(ctx, claimedOrder)
	suite.Require().NoError(err)
	suite.Require().True(claimed)

	suite.Require().NoError(claimingPilot.TakeOrder(orderID, claimedOrder.Volume()))
	suite.Require().NoError(uow.PilotRepository().Update(ctx, claimingPilot))

	message, err := outbox.NewMessage("orders.claimed", orderID.String(), []byte(`{}`), time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OutboxRepository().Add(ctx, message))

	suite.Require().NoError(uow.Commit(ctx))

	// All three writes must be visible to a fresh unit of work.
	verify := suite.factory.Create()

	persistedOrder, err := verify.OrderRepository().Get(ctx, orderID)
	suite.Require().NoError(err)
	suite.Equal(order.Dispatched, persistedOrder.Status())
	suite.Require().NotNil(persistedOrder.AssignedPilot())
	suite.True(persistedOrder.AssignedPilot().IsEqual(pilotID))

	persistedPilot, err := verify.PilotRepository().Get(ctx, pilotID)
	suite.Require().NoError(err)
	suite.False(persistedPilot.IsAvailable())
	suite.Require().NotNil(persistedPilot.CurrentOrder())
	suite.True(persistedPilot.CurrentOrder().IsEqual(orderID))

	pending, err := verify.OutboxRepository().GetMessagesForPublish(ctx, 10)
	suite.Require().NoError(err)
	suite.Len(pending, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ClaimWorkflow_RollbackLeavesNothing() {
	ctx := context.Background()
	orderID, pilotID := suite.seedConfirmedOrderAndPilot()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	claimedOrder, err := uow.OrderRepository().Get(ctx, orderID)
	suite.Require().NoError(err)
	claimingPilot, err := uow.PilotRepository().Get(ctx, pilotID)
	suite.Require().NoError(err)

	driver, err := claimingPilot.DriverSnapshot()
	suite.Require().NoError(err)
	suite.Require().NoError(claimedOrder.AssignPilot(driver, time.Now().UTC()))

	claimed, err := uow.OrderRepository().UpdateClaimed(ctx, claimedOrder)
	suite.Require().NoError(err)
	suite.Require().True(claimed)

	suite.Require().NoError(claimingPilot.TakeOrder(orderID, claimedOrder.Volume()))
	suite.Require().NoError(uow.PilotRepository().Update(ctx, claimingPilot))

	message, err := outbox.NewMessage("orders.claimed", orderID.String(), []byte(`{}`), time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OutboxRepository().Add(ctx, message))

	suite.Require().NoError(uow.Rollback(ctx))

	// Nothing from the aborted claim may be visible afterwards.
	verify := suite.factory.Create()

	persistedOrder, err := verify.OrderRepository().Get(ctx, orderID)
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, persistedOrder.Status())
	suite.Nil(persistedOrder.AssignedPilot())

	persistedPilot, err := verify.PilotRepository().Get(ctx, pilotID)
	suite.Require().NoError(err)
	suite.True(persistedPilot.IsAvailable())
	suite.Nil(persistedPilot.CurrentOrder())

	pending, err := verify.OutboxRepository().GetMessagesForPublish(ctx, 10)
	suite.Require().NoError(err)
	suite.Empty(pending)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction_UsesConnection() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := suite.newConfirmedOrder()
	err := uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err, "Repository without Begin should write directly")

	restored, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(restored.IsEqual(testOrder))
}

func (suite *UnitOfWorkIntegrationTestSuite) seedConfirmedOrderAndPilot() (kernel.UUID, kernel.UUID) {
	ctx := context.Background()
	seed := suite.factory.Create()

	testOrder := suite.newConfirmedOrder()
	suite.Require().NoError(seed.OrderRepository().Add(ctx, testOrder))

	profile, err := pilot.NewProfile("Ravi Kumar", "+91-98-7654-3210", "MH-12-AB-1234", 500)
	suite.Require().NoError(err)
	testPilot, err := pilot.NewPilot(kernel.NewUUID(), profile)
	suite.Require().NoError(err)
	suite.Require().NoError(seed.PilotRepository().Add(ctx, testPilot))

	return testOrder.ID(), testPilot.ID()
}

func (suite *UnitOfWorkIntegrationTestSuite) newConfirmedOrder() *order.Order {
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
	suite.Require().NoError(testOrder.Advance(order.Confirmed, "payment captured", "payments", time.Now().UTC()))

	return testOrder
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
