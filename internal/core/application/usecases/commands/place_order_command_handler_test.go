package commands_test

import (
	"errors"
	"testing"

	"printflow/internal/core/application/usecases/commands"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"
	"printflow/internal/core/domain/model/tracking"
	"printflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPlaceOrderCommand(t *testing.T) commands.PlaceOrderCommand {
	t.Helper()
	p := newOrderParts(t, true)
	cmd, err := commands.NewPlaceOrderCommand(kernel.MustOrderCode("PB-1001"), p.delivery, p.files, p.payment,
		p.preferences, "203.0.113.7")
	require.NoError(t, err)
	return cmd
}

func TestPlaceOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := newPlaceOrderCommand(t)

	orderRepo := new(MockOrderRepository)
	trackingRepo := new(MockTrackingRepository)
	uow := new(MockUoW)
	var added *order.Order
	var initial *tracking.Tracking
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) { added = args.Get(1).(*order.Order) }).
			Return(nil).Once(),
		uow.On("TrackingRepository").Return(trackingRepo).Once(),
		trackingRepo.On("Add", ctx, mock.AnythingOfType("*tracking.Tracking")).
			Run(func(args mock.Arguments) { initial = args.Get(1).(*tracking.Tracking) }).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, fixedClock{now: testNow})
	id, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, added)
	require.NotNil(t, initial)
	assert.True(t, id.IsEqual(added.ID()))
	assert.Equal(t, testNow, added.CreatedAt())
	assert.True(t, initial.OrderID().IsEqual(added.ID()))
	assert.True(t, initial.Code().IsEqual(cmd.Code()))
	assert.Equal(t, "OrderPlaced", initial.CurrentStageName())
	placedAt, _ := initial.CompletedAt(tracking.OrderPlaced)
	assert.Equal(t, testNow, placedAt)
	orderRepo.AssertExpectations(t)
	trackingRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_DuplicateCode(t *testing.T) {
	ctx := t.Context()
	cmd := newPlaceOrderCommand(t)
	duplicate := errs.NewObjectAlreadyExistsError("order code", "PB-1001")

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.Anything).Return(duplicate).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, fixedClock{now: testNow})
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectAlreadyExists)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertNotCalled(t, "TrackingRepository")
}

func TestPlaceOrderCommandHandler_Handle_TrackingAddError(t *testing.T) {
	ctx := t.Context()
	cmd := newPlaceOrderCommand(t)

	orderRepo := new(MockOrderRepository)
	trackingRepo := new(MockTrackingRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.Anything).Return(nil).Once(),
		uow.On("TrackingRepository").Return(trackingRepo).Once(),
		trackingRepo.On("Add", ctx, mock.Anything).Return(errors.New("insert failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, fixedClock{now: testNow})
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockUoWFactory)
	h := commands.NewPlaceOrderCommandHandler(factory, fixedClock{now: testNow})

	_, err := h.Handle(t.Context(), commands.PlaceOrderCommand{})

	require.ErrorIs(t, err, commands.ErrPlaceOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestPlaceOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd := newPlaceOrderCommand(t)

	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewPlaceOrderCommandHandler(factory, fixedClock{now: testNow})
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertNotCalled(t, "Rollback", mock.Anything)
}
