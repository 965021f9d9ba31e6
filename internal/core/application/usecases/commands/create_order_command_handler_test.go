package commands_test

import (
	"errors"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	origin := testCoordinates(t, 19.0760, 72.8777)
	destination := testCoordinates(t, 18.5204, 73.8567)

	cmd, err := commands.NewCreateOrderCommand(
		orderID, "site@builder.example", []string{"cement 50kg"}, 100, origin, destination, decimal.NewFromInt(2000))
	require.NoError(t, err)

	var created *order.Order

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*order.Order)
			}).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory, testPricingEngine(t))
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, created)

	assert.True(t, created.ID().IsEqual(orderID))
	assert.Equal(t, order.Placed, created.Status())
	assert.Len(t, created.Timeline(), 1)
	assert.Nil(t, created.AssignedPilot())

	// Mumbai to Pune lands in the farthest band
	assert.Equal(t, "extended", created.Pricing().Zone())
	assert.Equal(t, "1-2 days", created.Pricing().Eta())
	assert.True(t, decimal.NewFromInt(7209).Equal(created.Pricing().TransportCost()),
		"got %s", created.Pricing().TransportCost())
	assert.True(t, decimal.NewFromInt(9209).Equal(created.Pricing().Total()),
		"got %s", created.Pricing().Total())

	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		"site@builder.example",
		[]string{"cement 50kg"},
		100,
		testCoordinates(t, 19.0760, 72.8777),
		testCoordinates(t, 18.5204, 73.8567),
		decimal.NewFromInt(2000))
	require.NoError(t, err)

	expectedErr := errors.New("duplicate key")

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(expectedErr).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory, testPricingEngine(t))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, expectedErr)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		"site@builder.example",
		[]string{"cement 50kg"},
		100,
		testCoordinates(t, 19.0760, 72.8777),
		testCoordinates(t, 18.5204, 73.8567),
		decimal.NewFromInt(2000))
	require.NoError(t, err)

	expectedErr := errors.New("connection refused")

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(expectedErr).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory, testPricingEngine(t))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, expectedErr)
	uow.AssertNotCalled(t, "OrderRepository")
	uow.AssertNotCalled(t, "Rollback", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	var cmd commands.CreateOrderCommand

	factory := new(MockOrderUoWFactory)
	handler := commands.NewCreateOrderCommandHandler(factory, testPricingEngine(t))
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
