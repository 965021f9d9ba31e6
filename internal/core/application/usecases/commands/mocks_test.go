package commands_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/pilot"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/outbox"
	"dispatch/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

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

func (m *MockOrderRepository) UpdateClaimed(ctx context.Context, o *order.Order) (bool, error) {
	args := m.Called(ctx, o)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) UpdateDelivered(ctx context.Context, o *order.Order) (bool, error) {
	args := m.Called(ctx, o)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) GetAllWithExpiredCode(ctx context.Context, asOf time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockPilotRepository struct{ mock.Mock }

func (m *MockPilotRepository) Add(ctx context.Context, p *pilot.Pilot) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPilotRepository) Update(ctx context.Context, p *pilot.Pilot) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPilotRepository) Get(ctx context.Context, id kernel.UUID) (*pilot.Pilot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pilot.Pilot), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, message *outbox.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockOutboxRepository) Update(ctx context.Context, message *outbox.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockOutboxRepository) GetMessagesForPublish(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

// MockUoW satisfies every unit of work interface in this package.
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

func (m *MockUoW) PilotRepository() ports.PilotRepository {
	args := m.Called()
	return args.Get(0).(ports.PilotRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockPilotUoWFactory struct{ mock.Mock }

func (m *MockPilotUoWFactory) Create() commands.PilotUoW {
	args := m.Called()
	return args.Get(0).(commands.PilotUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, recipientContact string, message string) error {
	args := m.Called(ctx, recipientContact, message)
	return args.Error(0)
}

type MockMessagePublisher struct{ mock.Mock }

func (m *MockMessagePublisher) Publish(ctx context.Context, topic string, key string, payload []byte) error {
	args := m.Called(ctx, topic, key, payload)
	return args.Error(0)
}

// Shared fixtures.

func testCoordinates(t *testing.T, lat, lon float64) kernel.Coordinates {
	t.Helper()

	coords, err := kernel.NewCoordinates(lat, lon)
	require.NoError(t, err)
	return coords
}

func testPricingEngine(t *testing.T) services.DistancePricingEngine {
	t.Helper()

	engine, err := services.NewDistancePricingEngine(decimal.NewFromInt(150))
	require.NoError(t, err)
	return engine
}

func testHandoffCodes(t *testing.T) services.HandoffCodeService {
	t.Helper()

	codes, err := services.NewHandoffCodeService(testPricingEngine(t), 2*time.Hour)
	require.NoError(t, err)
	return codes
}

func newPlacedOrder(t *testing.T) *order.Order {
	t.Helper()

	origin := testCoordinates(t, 19.0760, 72.8777)
	destination := testCoordinates(t, 18.5204, 73.8567)

	pricing, err := testPricingEngine(t).Quote(origin, destination, decimal.NewFromInt(2000))
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		"site@builder.example",
		[]string{"cement 50kg", "steel rods 12mm"},
		100,
		origin,
		destination,
		pricing,
		testNow,
	)
	require.NoError(t, err)
	return o
}

func newConfirmedOrder(t *testing.T) *order.Order {
	t.Helper()

	o := newPlacedOrder(t)
	require.NoError(t, o.Advance(order.Confirmed, "payment confirmed", "payment-provider", testNow))
	return o
}

func newAvailablePilot(t *testing.T) *pilot.Pilot {
	t.Helper()

	profile, err := pilot.NewProfile("Ravi Kumar", "+91-98-7654-3210", "MH-12-AB-1234", 500)
	require.NoError(t, err)

	p, err := pilot.NewPilot(kernel.NewUUID(), profile)
	require.NoError(t, err)
	return p
}

// newDispatchedPair builds a confirmed order already claimed by a pilot,
// with both sides of the assignment wired.
func newDispatchedPair(t *testing.T) (*order.Order, *pilot.Pilot) {
	t.Helper()

	o := newConfirmedOrder(t)
	p := newAvailablePilot(t)

	driver, err := p.DriverSnapshot()
	require.NoError(t, err)
	require.NoError(t, o.AssignPilot(driver, testNow))
	require.NoError(t, p.TakeOrder(o.ID(), o.Volume()))
	return o, p
}
