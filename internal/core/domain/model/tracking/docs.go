// Package tracking models the fulfillment progress of a print order.
//
// The package includes:
//   - Stage: the fixed, ordered set of fulfillment stages
//   - Tracking: the aggregate holding per-stage completion timestamps for one order
//   - Progress: a whitelisted, validated request to complete stages
//   - CandidateFilter: the selection rules used by the cleanup jobs
//
// Key business rules:
//   - Stages complete strictly in canonical order:
//     OrderPlaced -> PaymentVerified -> PrintingStarted -> PrintingCompleted ->
//     ReadyForDelivery -> ReachedDestinationCity -> OutForDelivery -> Delivered
//   - A stage can only be completed when its predecessor is already persisted as completed
//   - A completed stage is never reverted and its completion time never changes
//   - A tracking record starts with OrderPlaced completed
//
// Tracking stores completion times as a prefix of the canonical order, so a
// later stage being complete while an earlier one is not cannot be represented.
package tracking
