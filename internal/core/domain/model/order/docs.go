// Package order provides the Order aggregate of the print service: what the
// customer bought, where it goes, and which external files back it.
//
// The package includes:
//   - Order: the aggregate root, identified internally by a UUID and publicly by an OrderCode
//   - Delivery and AccessCredential: recipient details and the hashed self-service credential
//   - FileSet: the document, front cover and back cover references held as one unit
//   - Payment: method, transaction id, total cost and voucher
//   - Preferences: print options stored as a JSON document
//
// Key business rules:
//   - The three file references are either all present or all absent
//   - Cleanup clears the file set as a whole, never a single reference
//   - A soft-deleted order is hidden from customers but still reclaimed by cleanup
//   - The access credential is stored only as a bcrypt hash
//
// Fulfillment progress does not live here: it is owned by the tracking package
// and linked to the order through its OrderCode.
package order
