package commands

import (
	"context"
)

// SoftDeleteOrderCommandHandler sets the soft-delete flag of an order. Since
// soft-deleted orders are not found by code, deleting twice yields
// errs.ObjectNotFoundError.
type SoftDeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewSoftDeleteOrderCommandHandler(uowFactory OrderUoWFactory) SoftDeleteOrderCommandHandler {
	return SoftDeleteOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *SoftDeleteOrderCommandHandler) Handle(ctx context.Context, cmd SoftDeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetByCode(ctx, cmd.Code())
	if err != nil {
		return err
	}

	if !aggregate.MarkDeleted() {
		return nil
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
