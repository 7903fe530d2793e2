package queries

import (
	"errors"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/guard"
)

var ErrGetCurrentStageQueryIsNotConstructed = errors.New(
	"GetCurrentStageQuery must be created via NewGetCurrentStageQuery constructor",
)

// GetCurrentStageQuery asks for the furthest completed stage of one order.
//
// Example:
//
//	query, err := NewGetCurrentStageQuery(kernel.MustOrderCode("PF-1001"))
//	resp, err := handler.Handle(ctx, query)
//	fmt.Println(resp.Stage) // "PrintingStarted" or "Pending"
type GetCurrentStageQuery struct {
	code  kernel.OrderCode
	guard guard.ConstructorGuard
}

func NewGetCurrentStageQuery(code kernel.OrderCode) (GetCurrentStageQuery, error) {
	if err := code.Validate(); err != nil {
		return GetCurrentStageQuery{}, err
	}
	return GetCurrentStageQuery{code: code, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCurrentStageQuery) Validate() error {
	return q.guard.Validate(ErrGetCurrentStageQueryIsNotConstructed)
}

func (q GetCurrentStageQuery) Code() kernel.OrderCode {
	return q.code
}

// GetCurrentStageQueryResponse carries the stage name, or "Pending" when no
// stage is completed.
type GetCurrentStageQueryResponse struct {
	Code  string
	Stage string
}
