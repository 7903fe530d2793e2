package commands

import (
	"context"
	"fmt"

	"printflow/internal/core/domain/model/tracking"
	"printflow/internal/core/ports"
	"printflow/internal/pkg/errs"
)

// CreateTrackingCommandHandler writes the initial tracking record with
// OrderPlaced completed. The order must exist and carry the command's code.
// A second record for the same code is rejected by the repository with
// errs.ObjectAlreadyExistsError.
type CreateTrackingCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

func NewCreateTrackingCommandHandler(uowFactory UoWFactory, clock ports.Clock) CreateTrackingCommandHandler {
	return CreateTrackingCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *CreateTrackingCommandHandler) Handle(ctx context.Context, cmd CreateTrackingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	record, err := tracking.NewTracking(cmd.Code(), cmd.OrderID(), h.clock.Now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if !o.Code().IsEqual(cmd.Code()) {
		return errs.NewValueIsInvalidErrorWithCause("order code",
			fmt.Errorf("order %s has code %s, not %s", o.ID(), o.Code(), cmd.Code()))
	}

	if err = uow.TrackingRepository().Add(ctx, record); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
