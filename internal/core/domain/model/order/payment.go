package order

import (
	"errors"
	"fmt"
	"strings"

	"printflow/internal/pkg/errs"
	"printflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment")

// Payment is the payment metadata captured at checkout. The order does not
// verify payments; PaymentVerified is a tracking stage set by staff.
type Payment struct {
	method        string
	transactionID string
	totalCost     decimal.Decimal
	voucher       string
	guard         guard.ConstructorGuard
}

// NewPayment validates checkout metadata. Voucher is optional.
func NewPayment(method, transactionID string, totalCost decimal.Decimal, voucher string) (Payment, error) {
	p := Payment{
		method:        strings.TrimSpace(method),
		transactionID: strings.TrimSpace(transactionID),
		totalCost:     totalCost,
		voucher:       strings.TrimSpace(voucher),
	}
	var costErr error
	if totalCost.IsNegative() {
		costErr = errs.NewValueIsInvalidErrorWithCause("total cost", fmt.Errorf("%s is negative", totalCost))
	}
	if err := errors.Join(
		requireText("payment method", p.method),
		requireText("transaction id", p.transactionID),
		costErr,
	); err != nil {
		return Payment{}, err
	}
	p.guard = guard.NewConstructorGuard()
	return p, nil
}

func (p Payment) Method() string             { return p.method }
func (p Payment) TransactionID() string      { return p.transactionID }
func (p Payment) TotalCost() decimal.Decimal { return p.totalCost }
func (p Payment) Voucher() string            { return p.voucher }

func (p Payment) Validate() error {
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}
