package commands

import (
	"errors"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/guard"
)

var ErrSoftDeleteOrderCommandIsNotConstructed = errors.New(
	"SoftDeleteOrderCommand must be created via NewSoftDeleteOrderCommand constructor",
)

// SoftDeleteOrderCommand hides an order from customers. Its files are still
// reclaimed by cleanup.
type SoftDeleteOrderCommand struct { //nolint:recvcheck //using for validation
	code kernel.OrderCode

	guard guard.ConstructorGuard
}

func NewSoftDeleteOrderCommand(code kernel.OrderCode) (SoftDeleteOrderCommand, error) {
	if err := code.Validate(); err != nil {
		return SoftDeleteOrderCommand{}, err
	}
	return SoftDeleteOrderCommand{code: code, guard: guard.NewConstructorGuard()}, nil
}

func (c SoftDeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrSoftDeleteOrderCommandIsNotConstructed)
}

func (c SoftDeleteOrderCommand) Code() kernel.OrderCode {
	return c.code
}
