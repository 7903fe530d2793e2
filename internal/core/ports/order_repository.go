// Package ports defines the contracts between the print service core and its
// infrastructure: persistence, external file storage and time.
package ports

import (
	"context"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate. Returns errs.ObjectAlreadyExistsError
	// when the order code is already taken.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate: its file set and
	// its soft-delete flag.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by internal identifier, soft-deleted or not.
	// Cleanup uses it so soft-deleted orders are still reclaimed.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByCode retrieves a non-deleted order by its customer-facing code.
	// Soft-deleted orders are reported as not found.
	GetByCode(ctx context.Context, code kernel.OrderCode) (*order.Order, error)

	// FindByPhone lists non-deleted orders for a delivery phone, newest first.
	FindByPhone(ctx context.Context, phone string) ([]*order.Order, error)

	// Delete removes the order row permanently.
	Delete(ctx context.Context, id kernel.UUID) error
}
