package intake

import (
	"fmt"

	dErrors "policygate/pkg/domain-errors"
)

// State is the correction-loop position of an intake. The draft itself is
// immutable between stages; transitions are pure functions of (state, event).
type State string

const (
	// StateInput is the initial capture, before anything has been extracted
	// or entered.
	StateInput State = "input"
	// StateExtracted holds a draft that exists but has not been validated.
	// Identifier-search entries start here too.
	StateExtracted State = "extracted"
	// StateNeedsCorrection holds a draft whose validation map is non-empty.
	// It never auto-advances: only a resubmission leaves it.
	StateNeedsCorrection State = "needs_correction"
	// StateCorrected marks a draft the user has edited since the last
	// validation pass.
	StateCorrected State = "corrected"
	// StateValid means validation passed; the flow may run analysis or skip
	// straight to commit.
	StateValid State = "valid"
)

// Event drives wizard transitions.
type Event string

const (
	EventExtracted        Event = "extracted"
	EventFieldEdited      Event = "field_edited"
	EventValidationPassed Event = "validation_passed"
	EventValidationFailed Event = "validation_failed"
)

// Next returns the state after applying event, or an error for transitions
// the wizard does not permit.
func Next(s State, e Event) (State, error) {
	switch s {
	case StateInput:
		if e == EventExtracted {
			return StateExtracted, nil
		}
	case StateExtracted:
		switch e {
		case EventValidationPassed:
			return StateValid, nil
		case EventValidationFailed:
			return StateNeedsCorrection, nil
		}
	case StateNeedsCorrection:
		if e == EventFieldEdited {
			return StateCorrected, nil
		}
	case StateCorrected:
		switch e {
		case EventFieldEdited:
			return StateCorrected, nil
		case EventValidationPassed:
			return StateValid, nil
		case EventValidationFailed:
			return StateNeedsCorrection, nil
		}
	}
	return s, dErrors.New(dErrors.CodeConflict,
		fmt.Sprintf("event %q is not valid in state %q", e, s))
}

// validationEvent maps a validation outcome to its wizard event.
func validationEvent(errs ValidationErrors) Event {
	if errs.Valid() {
		return EventValidationPassed
	}
	return EventValidationFailed
}
