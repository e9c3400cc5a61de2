package booking

import (
	"fmt"
	"time"

	"innkeep/pkg/model"
)

// Overlaps reports whether two half-open ranges [startA, endA) and
// [startB, endB) share at least one instant. Touching endpoints do not
// overlap, so a checkout and a same-day check-in can coexist.
func Overlaps(startA, endA, startB, endB time.Time) bool {
	return startA.Before(endB) && endA.After(startB)
}

// ActiveForOverlap is the single predicate deciding whether a stored
// booking still blocks its room. Soft-deleted and cancelled bookings
// release the room immediately.
func ActiveForOverlap(b *model.Booking) bool {
	return !b.IsDeleted && b.Status != model.StatusCancelled
}

// OverlapError names the booking and range the candidate collides with.
type OverlapError struct {
	BookingID string
	Start     time.Time
	End       time.Time
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("dates overlap with an existing booking (%s - %s)",
		e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

// ValidateNoOverlap checks a candidate range against the bookings already
// held for a room. excludeID skips the booking being moved so it does not
// conflict with itself; pass "" on creation. The slice is not modified and
// no I/O happens here: callers fetch the room's bookings first.
func ValidateNoOverlap(existing []*model.Booking, checkIn, checkOut time.Time, excludeID string) error {
	for _, b := range existing {
		if b.ID == excludeID && excludeID != "" {
			continue
		}
		if !ActiveForOverlap(b) {
			continue
		}
		if Overlaps(b.CheckIn, b.CheckOut, checkIn, checkOut) {
			return &OverlapError{
				BookingID: b.ID,
				Start:     b.CheckIn,
				End:       b.CheckOut,
			}
		}
	}
	return nil
}
