package ports

import (
	"context"
)

// UnitOfWorkFactory hands out a fresh UnitOfWork per command. Cleanup workers
// call Create once per candidate, so units of work are never shared between
// goroutines.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork spans the writes of one command across orders and tracking
// records. Callers drive Begin/Commit/Rollback themselves.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit fails when no transaction is open.
	Commit(ctx context.Context) error

	// Rollback fails when no transaction is open; deferred calls after a
	// successful Commit ignore that error.
	Rollback(ctx context.Context) error

	// OrderRepository and TrackingRepository share the open transaction, or
	// use the pool directly when none is open.
	OrderRepository() OrderRepository
	TrackingRepository() TrackingRepository
}
