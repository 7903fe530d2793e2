package order

import (
	"fmt"

	"printflow/internal/pkg/errs"
)

// Preferences are the print options chosen by the customer. The struct is
// stored as a JSON document, so field tags are part of the persisted shape.
type Preferences struct {
	Binding        string `json:"binding"`
	BookName       string `json:"bookName"`
	Location       string `json:"location"`
	PageType       string `json:"pageType"`
	PrintType      string `json:"printType"`
	Quantity       int    `json:"quantity"`
	SelectedOption string `json:"selectedOption"`
}

func (p Preferences) Validate() error {
	if p.Quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", p.Quantity))
	}
	return nil
}
