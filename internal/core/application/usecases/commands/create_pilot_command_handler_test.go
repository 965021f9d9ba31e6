package commands_test

import (
	"errors"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/pilot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreatePilotCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	pilotID := kernel.NewUUID()
	cmd, err := commands.NewCreatePilotCommand(pilotID, "Ravi Kumar", "+91-98-7654-3210", "MH-12-AB-1234", 500)
	require.NoError(t, err)

	var created *pilot.Pilot

	pilotRepo := new(MockPilotRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PilotRepository").Return(pilotRepo).Once(),
		pilotRepo.On("Add", ctx, mock.AnythingOfType("*pilot.Pilot")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*pilot.Pilot)
			}).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPilotUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreatePilotCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, created)

	// a fresh pilot is idle with a clean record
	assert.True(t, created.ID().IsEqual(pilotID))
	assert.True(t, created.IsAvailable())
	assert.Nil(t, created.CurrentOrder())
	assert.Nil(t, created.LastLocation())
	assert.Zero(t, created.TotalDeliveries())
	assert.Zero(t, created.Rating())

	pilotRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreatePilotCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewCreatePilotCommand(
		kernel.NewUUID(), "Ravi Kumar", "+91-98-7654-3210", "MH-12-AB-1234", 500)
	require.NoError(t, err)

	expectedErr := errors.New("duplicate key")

	pilotRepo := new(MockPilotRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PilotRepository").Return(pilotRepo).Once(),
		pilotRepo.On("Add", ctx, mock.AnythingOfType("*pilot.Pilot")).Return(expectedErr).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPilotUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreatePilotCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, expectedErr)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreatePilotCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	var cmd commands.CreatePilotCommand

	factory := new(MockPilotUoWFactory)
	handler := commands.NewCreatePilotCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCreatePilotCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
