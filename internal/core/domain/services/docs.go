// Package services provides domain services that coordinate work no single
// aggregate owns.
//
// The package includes:
//   - FilePurger: deletes an order's file set from the two external stores
//     concurrently and reports the outcome per file role
package services
