package commands

import (
	"errors"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/guard"
)

var ErrCreateTrackingCommandIsNotConstructed = errors.New(
	"CreateTrackingCommand must be created via NewCreateTrackingCommand constructor",
)

// CreateTrackingCommand creates the initial tracking record of an existing
// order, for orders stored without one.
type CreateTrackingCommand struct { //nolint:recvcheck //using for validation
	code    kernel.OrderCode
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateTrackingCommand(code kernel.OrderCode, orderID kernel.UUID) (CreateTrackingCommand, error) {
	if err := errors.Join(code.Validate(), orderID.Validate()); err != nil {
		return CreateTrackingCommand{}, err
	}
	return CreateTrackingCommand{code: code, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateTrackingCommand) Validate() error {
	return c.guard.Validate(ErrCreateTrackingCommandIsNotConstructed)
}

func (c CreateTrackingCommand) Code() kernel.OrderCode {
	return c.code
}

func (c CreateTrackingCommand) OrderID() kernel.UUID {
	return c.orderID
}
