package tracking

import (
	"errors"
	"fmt"

	"printflow/internal/pkg/errs"
)

var (
	// ErrStageOutOfOrder is matched when a stage is completed before its predecessor.
	ErrStageOutOfOrder = errors.New("stage completed out of order")

	// ErrStageRegression is matched when a completed stage is set back to incomplete.
	ErrStageRegression = errors.New("completed stage cannot be reverted")

	// ErrTrackingIsNotConstructed is returned when a Tracking instance bypassed its constructors.
	ErrTrackingIsNotConstructed = errors.New("Tracking must be created via NewTracking or RestoreTracking")
)

// StageTransitionError rejects a whole Progress request. Stage is the offending
// stage; Required is its missing predecessor (Unknown for regressions).
//
// It matches both its specific sentinel and errs.ErrValueIsInvalid:
//
//	var transitionErr *tracking.StageTransitionError
//	if errors.As(err, &transitionErr) {
//	    log.Printf("%s needs %s", transitionErr.Stage, transitionErr.Required)
//	}
type StageTransitionError struct {
	Stage    Stage
	Required Stage
	reason   error
}

func newOutOfOrderError(stage, required Stage) *StageTransitionError {
	return &StageTransitionError{Stage: stage, Required: required, reason: ErrStageOutOfOrder}
}

func newRegressionError(stage Stage) *StageTransitionError {
	return &StageTransitionError{Stage: stage, Required: Unknown, reason: ErrStageRegression}
}

func (e *StageTransitionError) Error() string {
	if errors.Is(e.reason, ErrStageRegression) {
		return fmt.Sprintf("%s: stage %s is already completed and cannot be reverted", errs.ErrValueIsInvalid, e.Stage)
	}
	return fmt.Sprintf("%s: stage %s requires %s to be completed first", errs.ErrValueIsInvalid, e.Stage, e.Required)
}

func (e *StageTransitionError) Unwrap() []error {
	return []error{e.reason, errs.ErrValueIsInvalid}
}
