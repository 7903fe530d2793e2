package queries

import (
	"errors"

	"printflow/internal/core/domain/model/order"
	"printflow/internal/pkg/errs"
	"printflow/internal/pkg/guard"
)

var ErrVerifyOrderAccessQueryIsNotConstructed = errors.New(
	"VerifyOrderAccessQuery must be created via NewVerifyOrderAccessQuery constructor",
)

// VerifyOrderAccessQuery is a customer self-service lookup by delivery phone
// and the credential chosen when the order was placed.
type VerifyOrderAccessQuery struct {
	phone      string
	credential string
	guard      guard.ConstructorGuard
}

func NewVerifyOrderAccessQuery(phone, credential string) (VerifyOrderAccessQuery, error) {
	normalized, err := order.NormalizePhone(phone)
	if err != nil {
		return VerifyOrderAccessQuery{}, err
	}
	if credential == "" {
		return VerifyOrderAccessQuery{}, errs.NewValueIsRequiredError("credential")
	}
	return VerifyOrderAccessQuery{
		phone:      normalized,
		credential: credential,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q VerifyOrderAccessQuery) Validate() error {
	return q.guard.Validate(ErrVerifyOrderAccessQueryIsNotConstructed)
}

// Phone is the normalized delivery phone.
func (q VerifyOrderAccessQuery) Phone() string {
	return q.phone
}

func (q VerifyOrderAccessQuery) Credential() string {
	return q.credential
}

type VerifyOrderAccessQueryResponse struct {
	Code string
}
