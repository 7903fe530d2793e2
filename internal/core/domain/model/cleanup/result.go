package cleanup

import (
	"time"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"
)

// Outcome is the terminal state of one candidate in one run.
type Outcome int

const (
	// Finalized: every file deleted and the policy action committed.
	Finalized Outcome = iota + 1
	// AlreadyClean: nothing left to do for this candidate.
	AlreadyClean
	// Skipped: at least one file deletion failed; records untouched.
	Skipped
	// Errored: persistence failed. When files were deleted first, the
	// records now point at files that no longer exist.
	Errored
	// Superseded: the record moved on after selection and no longer matches
	// the policy; nothing was touched.
	Superseded
)

func (o Outcome) String() string {
	switch o {
	case Finalized:
		return "finalized"
	case AlreadyClean:
		return "already_clean"
	case Skipped:
		return "skipped"
	case Errored:
		return "errored"
	case Superseded:
		return "superseded"
	default:
		return "unknown"
	}
}

// CandidateResult is what happened to one candidate.
type CandidateResult struct {
	OrderCode kernel.OrderCode
	Outcome   Outcome

	// FailedRoles lists the file deletions that failed; set for Skipped.
	FailedRoles []order.FileRole

	// FilesDeleted is true when every file of the candidate is gone from
	// storage, whether or not the records were finalized afterwards.
	FilesDeleted bool

	Err error
}

// Summary aggregates a run.
type Summary struct {
	Policy     string
	StartedAt  time.Time
	FinishedAt time.Time

	Finalized    int
	AlreadyClean int
	Skipped      int
	Errored      int
	Superseded   int

	Results []CandidateResult
}

// NewSummary collects results in the order given.
func NewSummary(policy Policy, startedAt, finishedAt time.Time, results []CandidateResult) Summary {
	s := Summary{
		Policy:     policy.Name(),
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		Results:    results,
	}
	for _, r := range results {
		switch r.Outcome {
		case Finalized:
			s.Finalized++
		case AlreadyClean:
			s.AlreadyClean++
		case Skipped:
			s.Skipped++
		case Errored:
			s.Errored++
		case Superseded:
			s.Superseded++
		}
	}
	return s
}

func (s Summary) Candidates() int {
	return len(s.Results)
}

// HasFailures reports whether any candidate was skipped or errored.
func (s Summary) HasFailures() bool {
	return s.Skipped > 0 || s.Errored > 0
}
