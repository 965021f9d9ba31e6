package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdvanceOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	testOrder := newConfirmedOrder(t)
	cmd, err := commands.NewAdvanceOrderCommand(testOrder.ID(), order.Preparing, "stock reserved", "warehouse")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAdvanceOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Preparing, testOrder.Status())

	// placed, confirmed, preparing
	timeline := testOrder.Timeline()
	require.Len(t, timeline, 3)
	assert.Equal(t, order.Preparing, timeline[2].Status())
	assert.Equal(t, "stock reserved", timeline[2].Note())
	assert.Equal(t, "warehouse", timeline[2].Actor())

	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAdvanceOrderCommandHandler_Handle_IllegalTransition(t *testing.T) {
	t.Run("should reject a skipped step", func(t *testing.T) {
		ctx := t.Context()

		testOrder := newPlacedOrder(t)
		cmd, err := commands.NewAdvanceOrderCommand(testOrder.ID(), order.Processing, "", "warehouse")
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		uow := new(MockUoW)

		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		handler := commands.NewAdvanceOrderCommandHandler(factory)
		err = handler.Handle(ctx, cmd)

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Placed, testOrder.Status())
		orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("should reject advancing a cancelled order", func(t *testing.T) {
		ctx := t.Context()

		testOrder := newConfirmedOrder(t)
		require.NoError(t, testOrder.Cancel("payment reversed", "payment-provider", testNow))

		cmd, err := commands.NewAdvanceOrderCommand(testOrder.ID(), order.Preparing, "", "warehouse")
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		uow := new(MockUoW)

		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		handler := commands.NewAdvanceOrderCommandHandler(factory)
		err = handler.Handle(ctx, cmd)

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Cancelled, testOrder.Status())
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}

func TestAdvanceOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()

	testOrder := newConfirmedOrder(t)
	cmd, err := commands.NewAdvanceOrderCommand(testOrder.ID(), order.Preparing, "", "warehouse")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(nil, errs.NewObjectNotFoundError(testOrder.ID().String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAdvanceOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestAdvanceOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	var cmd commands.AdvanceOrderCommand

	factory := new(MockOrderUoWFactory)
	handler := commands.NewAdvanceOrderCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAdvanceOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
