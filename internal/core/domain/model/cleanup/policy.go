package cleanup

import (
	"errors"
	"fmt"
	"time"

	"printflow/internal/core/domain/model/order"
	"printflow/internal/core/domain/model/tracking"
	"printflow/internal/pkg/errs"
	"printflow/internal/pkg/guard"
)

// DefaultAbandonedRetention is how long an unpaid order keeps its files.
const DefaultAbandonedRetention = 48 * time.Hour

var ErrPolicyIsNotConstructed = errors.New("Policy must be created via NewFulfilledPolicy or NewAbandonedPolicy")

// Action is the terminal persistence step applied after all files are deleted.
type Action int

const (
	UnknownAction Action = iota
	// ClearFiles empties the order's file set and keeps both records.
	ClearFiles
	// DeleteRecords removes the order and its tracking record.
	DeleteRecords
)

func (a Action) String() string {
	switch a {
	case ClearFiles:
		return "clear_files"
	case DeleteRecords:
		return "delete_records"
	default:
		return "unknown"
	}
}

// Policy parameterises a cleanup run.
type Policy struct {
	kind      tracking.CandidateKind
	action    Action
	retention time.Duration
	guard     guard.ConstructorGuard
}

// NewFulfilledPolicy reclaims the files of delivered orders.
func NewFulfilledPolicy() Policy {
	return Policy{
		kind:   tracking.FulfilledCandidates,
		action: ClearFiles,
		guard:  guard.NewConstructorGuard(),
	}
}

// NewAbandonedPolicy purges orders that never got past OrderPlaced within
// retention.
func NewAbandonedPolicy(retention time.Duration) (Policy, error) {
	if retention <= 0 {
		return Policy{}, errs.NewValueIsInvalidErrorWithCause(
			"retention",
			fmt.Errorf("%s is not greater than 0", retention),
		)
	}
	return Policy{
		kind:      tracking.AbandonedCandidates,
		action:    DeleteRecords,
		retention: retention,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (p Policy) Validate() error {
	return p.guard.Validate(ErrPolicyIsNotConstructed)
}

// Name is used in logs, metrics and job names.
func (p Policy) Name() string {
	return p.kind.String()
}

func (p Policy) Action() Action {
	return p.action
}

func (p Policy) Retention() time.Duration {
	return p.retention
}

// Filter returns the candidate filter for a run starting at now. The cutoff is
// derived from now on every call.
func (p Policy) Filter(now time.Time) tracking.CandidateFilter {
	if p.kind == tracking.AbandonedCandidates {
		return tracking.NewAbandonedFilter(now.Add(-p.retention))
	}
	return tracking.NewFulfilledFilter()
}

// IsAlreadyApplied reports whether o needs no work under this policy. An order
// without files is already clean for ClearFiles; DeleteRecords still removes it.
func (p Policy) IsAlreadyApplied(o *order.Order) bool {
	return p.action == ClearFiles && !o.HasFiles()
}
