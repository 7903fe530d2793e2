package tracking

import (
	"fmt"
	"time"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/errs"
)

// StageRecord is the persisted shape of one stage: a completion flag and the
// time it was completed. CompletedAt is nil exactly when Completed is false.
type StageRecord struct {
	Stage       Stage
	Completed   bool
	CompletedAt *time.Time
}

// Tracking is the fulfillment record of one order, keyed by its order code.
// It trails the order: it never owns the order and is removed only together
// with it.
//
// Completion times are kept as a prefix of the canonical stage order:
// completedAt[i] belongs to the stage at position i. Completing a stage
// appends to the prefix, which is the only mutation Tracking allows.
type Tracking struct {
	code        kernel.OrderCode
	orderID     kernel.UUID
	completedAt []time.Time

	// version is the optimistic concurrency token loaded from storage.
	version int

	isConstructed bool
}

// NewTracking creates the initial record of an order with OrderPlaced
// completed at placedAt.
func NewTracking(code kernel.OrderCode, orderID kernel.UUID, placedAt time.Time) (*Tracking, error) {
	t := &Tracking{isConstructed: true}
	if err := t.setIdentity(code, orderID); err != nil {
		return nil, err
	}
	if placedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("order placed time")
	}
	t.completedAt = []time.Time{placedAt.UTC()}
	return t, nil
}

// RestoreTracking rebuilds a Tracking from persisted stage records. Records
// that break canonical order, or completed stages without a timestamp, are
// rejected rather than repaired.
func RestoreTracking(
	code kernel.OrderCode,
	orderID kernel.UUID,
	records []StageRecord,
	version int,
) (*Tracking, error) {
	t := &Tracking{isConstructed: true, version: version}
	if err := t.setIdentity(code, orderID); err != nil {
		return nil, err
	}

	byStage := make(map[Stage]StageRecord, len(records))
	for _, record := range records {
		if err := record.Stage.Validate(); err != nil {
			return nil, err
		}
		byStage[record.Stage] = record
	}

	prefixEnded := false
	for _, stage := range Stages() {
		record := byStage[stage]
		if !record.Completed {
			prefixEnded = true
			continue
		}
		if prefixEnded {
			predecessor, _ := stage.Predecessor()
			return nil, newOutOfOrderError(stage, predecessor)
		}
		if record.CompletedAt == nil || record.CompletedAt.IsZero() {
			return nil, errs.NewValueIsRequiredErrorWithCause(
				"stage completion time",
				fmt.Errorf("%s is completed without a timestamp", stage),
			)
		}
		t.completedAt = append(t.completedAt, record.CompletedAt.UTC())
	}
	return t, nil
}

func (t *Tracking) setIdentity(code kernel.OrderCode, orderID kernel.UUID) error {
	if err := code.Validate(); err != nil {
		return err
	}
	if err := orderID.Validate(); err != nil {
		return err
	}
	t.code = code
	t.orderID = orderID
	return nil
}

// Validate ensures the Tracking was built by NewTracking or RestoreTracking.
func (t *Tracking) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTrackingIsNotConstructed
	}
	return nil
}

// Code returns the customer-facing order code.
func (t *Tracking) Code() kernel.OrderCode {
	return t.code
}

// OrderID returns the internal identifier of the tracked order.
func (t *Tracking) OrderID() kernel.UUID {
	return t.orderID
}

// Version returns the optimistic concurrency token.
func (t *Tracking) Version() int {
	return t.version
}

// IsCompleted reports whether stage has been completed.
func (t *Tracking) IsCompleted(stage Stage) bool {
	return stage.Validate() == nil && stage.index() < len(t.completedAt)
}

// CompletedAt returns when stage was completed.
func (t *Tracking) CompletedAt(stage Stage) (time.Time, bool) {
	if !t.IsCompleted(stage) {
		return time.Time{}, false
	}
	return t.completedAt[stage.index()], true
}

// Records returns all eight stages in canonical order in their persisted shape.
func (t *Tracking) Records() []StageRecord {
	records := make([]StageRecord, 0, StageCount)
	for _, stage := range Stages() {
		record := StageRecord{Stage: stage}
		if at, ok := t.CompletedAt(stage); ok {
			completedAt := at
			record.Completed = true
			record.CompletedAt = &completedAt
		}
		records = append(records, record)
	}
	return records
}

// CurrentStage returns the furthest completed stage; ok is false when no stage
// is completed.
func (t *Tracking) CurrentStage() (Stage, bool) {
	if len(t.completedAt) == 0 {
		return Unknown, false
	}
	return Stage(len(t.completedAt)), true
}

// CurrentStageName returns the name of CurrentStage, or PendingStageName.
func (t *Tracking) CurrentStageName() string {
	stage, ok := t.CurrentStage()
	if !ok {
		return PendingStageName
	}
	return stage.String()
}

// IsFulfilled reports whether every stage is completed.
func (t *Tracking) IsFulfilled() bool {
	return len(t.completedAt) == StageCount
}

// IsOnlyPlaced reports whether OrderPlaced is the only completed stage.
func (t *Tracking) IsOnlyPlaced() bool {
	return len(t.completedAt) == 1
}

// Advance applies progress at time now and returns the stages that moved from
// incomplete to completed, in canonical order.
//
// Every requested stage is checked against the state loaded before the call:
// completing a stage needs its predecessor to be completed already, and
// un-completing a completed stage is a regression. Any violation rejects the
// whole request and leaves t unchanged. Re-completing a completed stage or
// leaving an incomplete stage incomplete is a no-op.
func (t *Tracking) Advance(progress Progress, now time.Time) ([]Stage, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := progress.Validate(); err != nil {
		return nil, err
	}

	var transitions []Stage
	for _, stage := range progress.Stages() {
		proposal, _ := progress.Proposal(stage)
		completed := t.IsCompleted(stage)

		switch {
		case !proposal.Completed && completed:
			return nil, newRegressionError(stage)
		case !proposal.Completed, completed:
			continue
		}

		if predecessor, ok := stage.Predecessor(); ok && !t.IsCompleted(predecessor) {
			return nil, newOutOfOrderError(stage, predecessor)
		}
		transitions = append(transitions, stage)
	}

	// Validation above guarantees transitions extend the prefix one stage at a time.
	for _, stage := range transitions {
		if stage.index() != len(t.completedAt) {
			predecessor, _ := stage.Predecessor()
			return nil, newOutOfOrderError(stage, predecessor)
		}
		t.completedAt = append(t.completedAt, now.UTC())
	}
	return transitions, nil
}
