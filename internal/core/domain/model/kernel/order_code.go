package kernel

import (
	"fmt"
	"strings"

	"printflow/internal/pkg/errs"
	"printflow/internal/pkg/guard"
)

// OrderCodeMaxLength bounds the customer-facing order code.
const OrderCodeMaxLength = 64

var ErrOrderCodeIsNotConstructed = errs.NewValueIsRequiredError("order code must be created via NewOrderCode")

// OrderCode is the customer-facing order identifier. It is unique per order,
// never changes, and links an Order to its Tracking record.
type OrderCode struct {
	value string
	guard guard.ConstructorGuard
}

// NewOrderCode trims the input and accepts letters, digits, '-' and '_' only.
func NewOrderCode(raw string) (OrderCode, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return OrderCode{}, errs.NewValueIsRequiredError("order code")
	}
	if len(value) > OrderCodeMaxLength {
		return OrderCode{}, errs.NewValueIsOutOfRangeError("order code length", len(value), 1, OrderCodeMaxLength)
	}
	for _, r := range value {
		if !isOrderCodeRune(r) {
			return OrderCode{}, errs.NewValueIsInvalidErrorWithCause(
				"order code",
				fmt.Errorf("%q is not allowed", r),
			)
		}
	}
	return OrderCode{value: value, guard: guard.NewConstructorGuard()}, nil
}

// MustOrderCode is NewOrderCode for literals known to be valid.
func MustOrderCode(raw string) OrderCode {
	code, err := NewOrderCode(raw)
	if err != nil {
		panic(err)
	}
	return code
}

func isOrderCodeRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_':
		return true
	default:
		return false
	}
}

func (c OrderCode) String() string {
	return c.value
}

func (c OrderCode) IsEqual(other OrderCode) bool {
	return c.value == other.value
}

func (c OrderCode) Validate() error {
	return c.guard.Validate(ErrOrderCodeIsNotConstructed)
}
