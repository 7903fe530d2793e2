package order

import (
	"errors"
	"fmt"
	"net/netip"
	"time"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order represents a customer's print purchase. It is the aggregate root that owns
// the delivery details, the payment metadata and the external file references.
//
// Order follows these invariants:
//   - Must have a valid internal identifier and a valid order code
//   - Delivery and payment must be constructed through their own constructors
//   - The file set is complete or empty, never partial
//   - Can only be created through NewOrder or RestoreOrder
//
// The creation time is fixed at placement and drives abandoned-order cleanup.
type Order struct {
	// id is the internal identifier, never shown to customers
	id kernel.UUID

	// code is the customer-facing identifier shared with the tracking record
	code kernel.OrderCode

	delivery    Delivery
	files       FileSet
	payment     Payment
	preferences Preferences

	// ipAddress is the client address the order was placed from; may be empty
	ipAddress string

	createdAt time.Time

	// isDeleted hides the order from customers without removing it
	isDeleted bool

	// isConstructed ensures the order was created via NewOrder or RestoreOrder
	isConstructed bool
}

// NewOrder creates an Order at placement time.
//
// Example:
//
//	credential, _ := order.NewAccessCredential("secret")
//	delivery, _ := order.NewDelivery("Rahim", "01700000000", "House 5", "Dhaka", "Mirpur", credential)
//	files, _ := order.ParseFileSet(pdfURL, frontURL, backURL)
//	payment, _ := order.NewPayment("bkash", "TX-1", decimal.RequireFromString("450"), "")
//	o, err := order.NewOrder(kernel.NewUUID(), code, delivery, files, payment, prefs, "203.0.113.7", now)
func NewOrder(
	id kernel.UUID,
	code kernel.OrderCode,
	delivery Delivery,
	files FileSet,
	payment Payment,
	preferences Preferences,
	ipAddress string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setIdentity(id, code),
		o.setContent(delivery, files, payment, preferences),
		o.setIPAddress(ipAddress),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an Order from storage.
func RestoreOrder(
	id kernel.UUID,
	code kernel.OrderCode,
	delivery Delivery,
	files FileSet,
	payment Payment,
	preferences Preferences,
	ipAddress string,
	createdAt time.Time,
	isDeleted bool,
) (*Order, error) {
	o, err := NewOrder(id, code, delivery, files, payment, preferences, ipAddress, createdAt)
	if err != nil {
		return nil, err
	}
	o.isDeleted = isDeleted
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their internal identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID          { return o.id }
func (o *Order) Code() kernel.OrderCode   { return o.code }
func (o *Order) Delivery() Delivery       { return o.delivery }
func (o *Order) Files() FileSet           { return o.files }
func (o *Order) Payment() Payment         { return o.payment }
func (o *Order) Preferences() Preferences { return o.preferences }
func (o *Order) IPAddress() string        { return o.ipAddress }
func (o *Order) CreatedAt() time.Time     { return o.createdAt }
func (o *Order) IsDeleted() bool          { return o.isDeleted }
func (o *Order) HasFiles() bool           { return !o.files.IsEmpty() }

// ClearFiles drops all three file references at once. It reports whether the
// set was non-empty before the call.
func (o *Order) ClearFiles() bool {
	if o.files.IsEmpty() {
		return false
	}
	o.files = EmptyFileSet()
	return true
}

// MarkDeleted soft-deletes the order. Deleting twice is a no-op; it reports
// whether the flag changed.
func (o *Order) MarkDeleted() bool {
	if o.isDeleted {
		return false
	}
	o.isDeleted = true
	return true
}

// CredentialMatches checks a customer's plain credential against the stored hash.
func (o *Order) CredentialMatches(plain string) bool {
	return o.delivery.Credential().Matches(plain)
}

func (o *Order) setIdentity(id kernel.UUID, code kernel.OrderCode) error {
	if err := errors.Join(id.Validate(), code.Validate()); err != nil {
		return err
	}
	o.id = id
	o.code = code
	return nil
}

func (o *Order) setContent(delivery Delivery, files FileSet, payment Payment, preferences Preferences) error {
	if err := errors.Join(
		delivery.Validate(),
		payment.Validate(),
		preferences.Validate(),
	); err != nil {
		return err
	}
	o.delivery = delivery
	o.files = files
	o.payment = payment
	o.preferences = preferences
	return nil
}

func (o *Order) setIPAddress(ipAddress string) error {
	if ipAddress == "" {
		return nil
	}
	addr, err := netip.ParseAddr(ipAddress)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("ip address", fmt.Errorf("%q: %w", ipAddress, err))
	}
	o.ipAddress = addr.String()
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	o.createdAt = createdAt.UTC()
	return nil
}
