package commands

import (
	"context"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"
	"printflow/internal/core/domain/model/tracking"
	"printflow/internal/core/ports"
)

// PlaceOrderCommandHandler creates an order together with its initial
// tracking record. Both rows are written in one transaction, so an order
// never exists without tracking.
type PlaceOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

func NewPlaceOrderCommandHandler(uowFactory UoWFactory, clock ports.Clock) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle returns the internal identifier of the new order. A taken order code
// surfaces as errs.ObjectAlreadyExistsError from the repositories.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	now := h.clock.Now()
	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		cmd.Code(),
		cmd.Delivery(),
		cmd.Files(),
		cmd.Payment(),
		cmd.Preferences(),
		cmd.IPAddress(),
		now,
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	record, err := tracking.NewTracking(aggregate.Code(), aggregate.ID(), now)
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.TrackingRepository().Add(ctx, record); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return aggregate.ID(), nil
}
