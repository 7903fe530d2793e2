package tracking

import (
	"errors"
	"sort"
	"time"

	"printflow/internal/pkg/errs"
	"printflow/internal/pkg/guard"
)

var ErrProgressIsNotConstructed = errors.New("Progress must be created via NewProgress or ParseProgress")

// StageProposal is the requested state of one stage. CompletedAt is accepted
// for wire compatibility but never trusted: completion times are stamped by
// the server when a stage transitions to completed.
type StageProposal struct {
	Completed   bool
	CompletedAt *time.Time
}

// Progress is a validated request to change one or more stages.
type Progress struct {
	proposals map[Stage]StageProposal
	guard     guard.ConstructorGuard
}

// NewProgress builds a Progress from already-typed stages.
func NewProgress(proposals map[Stage]StageProposal) (Progress, error) {
	if len(proposals) == 0 {
		return Progress{}, errs.NewValueIsRequiredError("stage")
	}
	copied := make(map[Stage]StageProposal, len(proposals))
	for stage, proposal := range proposals {
		if err := stage.Validate(); err != nil {
			return Progress{}, err
		}
		copied[stage] = proposal
	}
	return Progress{proposals: copied, guard: guard.NewConstructorGuard()}, nil
}

// ParseProgress builds a Progress from a name-keyed payload. Names outside the
// stage whitelist are dropped silently; a payload with no known stage left is
// rejected.
func ParseProgress(raw map[string]StageProposal) (Progress, error) {
	proposals := make(map[Stage]StageProposal, len(raw))
	for name, proposal := range raw {
		stage, err := ParseStage(name)
		if err != nil {
			continue
		}
		proposals[stage] = proposal
	}
	return NewProgress(proposals)
}

// Stages returns the requested stages in canonical order.
func (p Progress) Stages() []Stage {
	stages := make([]Stage, 0, len(p.proposals))
	for stage := range p.proposals {
		stages = append(stages, stage)
	}
	sort.Slice(stages, func(i, j int) bool { return stages[i] < stages[j] })
	return stages
}

// Proposal returns the requested state for stage.
func (p Progress) Proposal(stage Stage) (StageProposal, bool) {
	proposal, ok := p.proposals[stage]
	return proposal, ok
}

func (p Progress) Validate() error {
	return p.guard.Validate(ErrProgressIsNotConstructed)
}
