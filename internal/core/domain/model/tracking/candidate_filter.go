package tracking

import "time"

// CandidateKind selects which cleanup population a filter describes.
type CandidateKind int

const (
	// FulfilledCandidates are records with every stage completed.
	FulfilledCandidates CandidateKind = iota + 1

	// AbandonedCandidates are records stuck at OrderPlaced whose order was
	// created before a cutoff.
	AbandonedCandidates
)

func (k CandidateKind) String() string {
	switch k {
	case FulfilledCandidates:
		return "fulfilled"
	case AbandonedCandidates:
		return "abandoned"
	default:
		return "unknown"
	}
}

// CandidateFilter is the selection rule a repository applies when listing
// cleanup candidates.
type CandidateFilter struct {
	kind          CandidateKind
	createdBefore time.Time
}

// NewFulfilledFilter selects fully delivered orders.
func NewFulfilledFilter() CandidateFilter {
	return CandidateFilter{kind: FulfilledCandidates}
}

// NewAbandonedFilter selects orders that never got past OrderPlaced and were
// created strictly before createdBefore.
func NewAbandonedFilter(createdBefore time.Time) CandidateFilter {
	return CandidateFilter{kind: AbandonedCandidates, createdBefore: createdBefore.UTC()}
}

func (f CandidateFilter) Kind() CandidateKind {
	return f.kind
}

// CreatedBefore is the order creation cutoff; zero for fulfilled filters.
func (f CandidateFilter) CreatedBefore() time.Time {
	return f.createdBefore
}

// Matches evaluates the filter against a loaded record and its order's
// creation time.
func (f CandidateFilter) Matches(t *Tracking, orderCreatedAt time.Time) bool {
	if t == nil {
		return false
	}
	switch f.kind {
	case FulfilledCandidates:
		return t.IsFulfilled()
	case AbandonedCandidates:
		return t.IsOnlyPlaced() && orderCreatedAt.Before(f.createdBefore)
	default:
		return false
	}
}
