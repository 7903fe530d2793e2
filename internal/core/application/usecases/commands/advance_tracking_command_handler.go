package commands

import (
	"context"

	"printflow/internal/core/domain/model/tracking"
	"printflow/internal/core/ports"
)

// AdvanceTrackingCommandHandler applies a stage change request to the stored
// tracking record.
//
// The request is validated against the record as loaded in this transaction.
// The write is conditional on the loaded version, so two concurrent requests
// for the same order cannot both succeed on the same state: the loser gets
// errs.VersionIsInvalidError and must re-fetch.
//
// Example:
//
//	handler := NewAdvanceTrackingCommandHandler(uowFactory, clock)
//	applied, err := handler.Handle(ctx, cmd)
//	var transitionErr *tracking.StageTransitionError
//	if errors.As(err, &transitionErr) {
//	    // 412: transitionErr.Required must be completed first
//	}
type AdvanceTrackingCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

func NewAdvanceTrackingCommandHandler(uowFactory UoWFactory, clock ports.Clock) AdvanceTrackingCommandHandler {
	return AdvanceTrackingCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle returns the stages that became completed. An accepted request that
// changes nothing returns no stages and writes nothing.
func (h *AdvanceTrackingCommandHandler) Handle(ctx context.Context, cmd AdvanceTrackingCommand) ([]tracking.Stage, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	// soft-deleted orders are not found
	if _, err := uow.OrderRepository().GetByCode(ctx, cmd.Code()); err != nil {
		return nil, err
	}

	trackingRepo := uow.TrackingRepository()
	record, err := trackingRepo.GetByCode(ctx, cmd.Code())
	if err != nil {
		return nil, err
	}

	applied, err := record.Advance(cmd.Progress(), h.clock.Now())
	if err != nil {
		return nil, err
	}
	if len(applied) == 0 {
		return nil, nil
	}

	if err = trackingRepo.Update(ctx, record); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return applied, nil
}
