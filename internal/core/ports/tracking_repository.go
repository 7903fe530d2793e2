package ports

import (
	"context"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/tracking"
)

// TrackingRepository defines the persistence contract for tracking records.
type TrackingRepository interface {
	// Add persists the initial record of an order. Returns
	// errs.ObjectAlreadyExistsError when the order code already has one.
	Add(ctx context.Context, aggregate *tracking.Tracking) error

	// Update writes the stages of aggregate if the stored version still equals
	// aggregate.Version(), and bumps it. A lost race returns
	// errs.VersionIsInvalidError and writes nothing.
	Update(ctx context.Context, aggregate *tracking.Tracking) error

	// GetByCode retrieves the record for an order code.
	GetByCode(ctx context.Context, code kernel.OrderCode) (*tracking.Tracking, error)

	// FindCandidates lists the records selected by filter, oldest order first.
	// Abandoned filters compare against the order's creation time.
	FindCandidates(ctx context.Context, filter tracking.CandidateFilter) ([]*tracking.Tracking, error)

	// Delete removes the record of aggregate permanently if the stored version
	// still equals aggregate.Version(). A record that changed since it was
	// loaded is kept and errs.VersionIsInvalidError is returned.
	Delete(ctx context.Context, aggregate *tracking.Tracking) error
}
