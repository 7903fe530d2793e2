// Package kernel provides core domain primitives shared by the order and
// tracking aggregates.
//
// The package includes:
//   - UUID: the system-internal identifier of an order
//   - OrderCode: the customer-facing order code used for every cross-reference
//   - FileReference: an opaque URL pointing at a file held by an external store
//
// All three are immutable value objects whose zero values fail validation.
package kernel
