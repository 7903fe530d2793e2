package tracking

import (
	"fmt"

	"printflow/internal/pkg/errs"
)

// Stage is one step of the fulfillment workflow. The numeric value is the
// position in canonical order, so comparing two stages compares their order.
//
//	OrderPlaced -> PaymentVerified -> PrintingStarted -> PrintingCompleted ->
//	ReadyForDelivery -> ReachedDestinationCity -> OutForDelivery -> Delivered
type Stage int

const (
	// Unknown is the zero value and never a valid stage.
	Unknown Stage = iota
	OrderPlaced
	PaymentVerified
	PrintingStarted
	PrintingCompleted
	ReadyForDelivery
	ReachedDestinationCity
	OutForDelivery
	Delivered
)

// PendingStageName is reported as the current stage when nothing is completed.
const PendingStageName = "Pending"

// StageCount is the number of valid stages.
const StageCount = int(Delivered)

// getStageStrings returns the persisted and wire name of every valid stage.
func getStageStrings() map[Stage]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Stage]string{
		OrderPlaced:            "OrderPlaced",
		PaymentVerified:        "PaymentVerified",
		PrintingStarted:        "PrintingStarted",
		PrintingCompleted:      "PrintingCompleted",
		ReadyForDelivery:       "ReadyForDelivery",
		ReachedDestinationCity: "ReachedDestinationCity",
		OutForDelivery:         "OutForDelivery",
		Delivered:              "Delivered",
	}
}

// Stages returns every valid stage in canonical order.
func Stages() []Stage {
	stages := make([]Stage, 0, StageCount)
	for s := OrderPlaced; s <= Delivered; s++ {
		stages = append(stages, s)
	}
	return stages
}

// ParseStage maps a stage name back to its Stage. Names are case-sensitive.
func ParseStage(name string) (Stage, error) {
	for stage, str := range getStageStrings() {
		if str == name {
			return stage, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%q is not a known stage", name))
}

// Validate checks that s is one of the eight canonical stages.
func (s Stage) Validate() error {
	if _, ok := getStageStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%d is not a valid stage", s))
	}
	return nil
}

// String returns the stage name, or "Unknown" for invalid values.
func (s Stage) String() string {
	if str, ok := getStageStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Predecessor returns the stage that must be completed before s.
// OrderPlaced has none.
func (s Stage) Predecessor() (Stage, bool) {
	if s <= OrderPlaced || s > Delivered {
		return Unknown, false
	}
	return s - 1, true
}

// index is the position of s in the completion prefix.
func (s Stage) index() int {
	return int(s) - 1
}
