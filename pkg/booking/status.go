package booking

import (
	"fmt"

	"innkeep/pkg/model"
)

// TransitionError reports an illegal lifecycle move.
type TransitionError struct {
	From model.BookingStatus
	To   model.BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition booking from %q to %q", e.From, e.To)
}

// Transition validates a requested lifecycle move and returns the new
// status. Anything outside the transition table fails closed.
func Transition(current, requested model.BookingStatus) (model.BookingStatus, error) {
	if !current.CanTransitionTo(requested) {
		return "", &TransitionError{From: current, To: requested}
	}
	return requested, nil
}
