package commands

import (
	"errors"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"
	"printflow/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand represents a checkout: the order content plus the code
// the customer will use to follow it.
//
// Example:
//
//	files, _ := order.ParseFileSet(pdfURL, frontURL, backURL)
//	cmd, err := NewPlaceOrderCommand(code, delivery, files, payment, prefs, c.RealIP())
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, clock)
//	orderID, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to place order: %w", err)
//	}
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	code        kernel.OrderCode
	delivery    order.Delivery
	files       order.FileSet
	payment     order.Payment
	preferences order.Preferences
	ipAddress   string

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand validates that every value object was constructed.
// The file set may be empty.
func NewPlaceOrderCommand(
	code kernel.OrderCode,
	delivery order.Delivery,
	files order.FileSet,
	payment order.Payment,
	preferences order.Preferences,
	ipAddress string,
) (PlaceOrderCommand, error) {
	if err := errors.Join(
		code.Validate(),
		delivery.Validate(),
		payment.Validate(),
		preferences.Validate(),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return PlaceOrderCommand{
		code:        code,
		delivery:    delivery,
		files:       files,
		payment:     payment,
		preferences: preferences,
		ipAddress:   ipAddress,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) Code() kernel.OrderCode         { return c.code }
func (c PlaceOrderCommand) Delivery() order.Delivery       { return c.delivery }
func (c PlaceOrderCommand) Files() order.FileSet           { return c.files }
func (c PlaceOrderCommand) Payment() order.Payment         { return c.payment }
func (c PlaceOrderCommand) Preferences() order.Preferences { return c.preferences }
func (c PlaceOrderCommand) IPAddress() string              { return c.ipAddress }
