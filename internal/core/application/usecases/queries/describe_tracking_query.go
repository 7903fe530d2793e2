package queries

import (
	"errors"
	"time"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"
	"printflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrDescribeTrackingQueryIsNotConstructed = errors.New(
	"DescribeTrackingQuery must be created via NewDescribeTrackingQuery constructor",
)

// DescribeTrackingQuery asks for the full tracking view of one order.
type DescribeTrackingQuery struct {
	code  kernel.OrderCode
	guard guard.ConstructorGuard
}

func NewDescribeTrackingQuery(code kernel.OrderCode) (DescribeTrackingQuery, error) {
	if err := code.Validate(); err != nil {
		return DescribeTrackingQuery{}, err
	}
	return DescribeTrackingQuery{code: code, guard: guard.NewConstructorGuard()}, nil
}

func (q DescribeTrackingQuery) Validate() error {
	return q.guard.Validate(ErrDescribeTrackingQueryIsNotConstructed)
}

func (q DescribeTrackingQuery) Code() kernel.OrderCode {
	return q.code
}

// FileView is a stored file still attached to the order.
type FileView struct {
	Role string
	URL  string
}

// PaymentSummary omits the transaction id.
type PaymentSummary struct {
	Method    string
	TotalCost decimal.Decimal
	Voucher   string
}

// DescribeTrackingQueryResponse is the tracking record joined with the order
// projection a customer may see. Files is empty once cleanup has run.
type DescribeTrackingQueryResponse struct {
	Code         string
	CurrentStage string
	Stages       []StageView
	Files        []FileView
	Preferences  order.Preferences
	Payment      PaymentSummary
	CreatedAt    time.Time
}
