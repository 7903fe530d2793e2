package commands_test

import (
	"testing"

	"printflow/internal/core/application/usecases/commands"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/tracking"
	"printflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateTrackingCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := newTestOrder(t, "PB-7", true, testNow)
	cmd, err := commands.NewCreateTrackingCommand(o.Code(), o.ID())
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	repo := new(MockTrackingRepository)
	uow := new(MockUoW)
	var created *tracking.Tracking
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("TrackingRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*tracking.Tracking")).
			Run(func(args mock.Arguments) { created = args.Get(1).(*tracking.Tracking) }).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateTrackingCommandHandler(factory, fixedClock{now: testNow})
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.True(t, created.Code().IsEqual(o.Code()))
	assert.True(t, created.OrderID().IsEqual(o.ID()))
	assert.True(t, created.IsOnlyPlaced())
	uow.AssertExpectations(t)
}

func TestCreateTrackingCommandHandler_Handle_CodeOfAnotherOrder(t *testing.T) {
	ctx := t.Context()
	o := newTestOrder(t, "PB-7", true, testNow)
	cmd, err := commands.NewCreateTrackingCommand(kernel.MustOrderCode("PB-8"), o.ID())
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	repo := new(MockTrackingRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orders).Once()
	orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateTrackingCommandHandler(factory, fixedClock{now: testNow})
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.ErrorContains(t, err, "PB-8")
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateTrackingCommandHandler_Handle_UnknownOrder(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateTrackingCommand(kernel.MustOrderCode("PB-7"), orderID)
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orders).Once()
	orders.On("Get", ctx, orderID).Return(nil, errs.NewObjectNotFoundError("order", orderID)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateTrackingCommandHandler(factory, fixedClock{now: testNow})
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "TrackingRepository")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateTrackingCommandHandler_Handle_Conflict(t *testing.T) {
	ctx := t.Context()
	o := newTestOrder(t, "PB-7", true, testNow)
	cmd, err := commands.NewCreateTrackingCommand(o.Code(), o.ID())
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	repo := new(MockTrackingRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orders).Once()
	orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow.On("TrackingRepository").Return(repo).Once()
	repo.On("Add", ctx, mock.Anything).Return(errs.NewObjectAlreadyExistsError("tracking", "PB-7")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateTrackingCommandHandler(factory, fixedClock{now: testNow})
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectAlreadyExists)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewCreateTrackingCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewCreateTrackingCommand(kernel.OrderCode{}, kernel.UUID{})

	require.ErrorIs(t, err, kernel.ErrOrderCodeIsNotConstructed)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
