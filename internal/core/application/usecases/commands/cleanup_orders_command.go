package commands

import (
	"errors"

	"printflow/internal/core/domain/model/cleanup"
	"printflow/internal/pkg/guard"
)

var ErrCleanupOrdersCommandIsNotConstructed = errors.New(
	"CleanupOrdersCommand must be created via NewCleanupOrdersCommand constructor",
)

// CleanupOrdersCommand runs one cleanup pass under a policy.
type CleanupOrdersCommand struct { //nolint:recvcheck //using for validation
	policy cleanup.Policy

	guard guard.ConstructorGuard
}

func NewCleanupOrdersCommand(policy cleanup.Policy) (CleanupOrdersCommand, error) {
	if err := policy.Validate(); err != nil {
		return CleanupOrdersCommand{}, err
	}
	return CleanupOrdersCommand{policy: policy, guard: guard.NewConstructorGuard()}, nil
}

func (c CleanupOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCleanupOrdersCommandIsNotConstructed)
}

func (c CleanupOrdersCommand) Policy() cleanup.Policy {
	return c.policy
}
