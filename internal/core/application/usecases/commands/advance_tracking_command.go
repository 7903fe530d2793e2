package commands

import (
	"errors"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/tracking"
	"printflow/internal/pkg/guard"
)

var ErrAdvanceTrackingCommandIsNotConstructed = errors.New(
	"AdvanceTrackingCommand must be created via NewAdvanceTrackingCommand constructor",
)

// AdvanceTrackingCommand requests stage changes for one order.
//
// Example:
//
//	progress, _ := tracking.ParseProgress(map[string]tracking.StageProposal{
//	    "PaymentVerified": {Completed: true},
//	})
//	cmd, err := NewAdvanceTrackingCommand(code, progress)
type AdvanceTrackingCommand struct { //nolint:recvcheck //using for validation
	code     kernel.OrderCode
	progress tracking.Progress

	guard guard.ConstructorGuard
}

func NewAdvanceTrackingCommand(code kernel.OrderCode, progress tracking.Progress) (AdvanceTrackingCommand, error) {
	if err := errors.Join(code.Validate(), progress.Validate()); err != nil {
		return AdvanceTrackingCommand{}, err
	}
	return AdvanceTrackingCommand{code: code, progress: progress, guard: guard.NewConstructorGuard()}, nil
}

func (c AdvanceTrackingCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceTrackingCommandIsNotConstructed)
}

func (c AdvanceTrackingCommand) Code() kernel.OrderCode {
	return c.code
}

func (c AdvanceTrackingCommand) Progress() tracking.Progress {
	return c.progress
}
