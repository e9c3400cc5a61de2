package booking

import (
	"errors"
	"time"
)

// DefaultMaxStayDays bounds the length of a single reservation.
const DefaultMaxStayDays = 30

var (
	ErrCheckoutBeforeCheckin = errors.New("check-out must be after check-in")
	ErrCheckinInPast         = errors.New("check-in cannot be in the past")
	ErrStayTooLong           = errors.New("stay exceeds the maximum length")
)

// ValidateDates applies the date rules in order, stopping at the first
// failure: ordering, no past check-in, maximum stay. A stay of exactly
// maxStayDays is valid. maxStayDays <= 0 falls back to the default.
func ValidateDates(clock Clock, checkIn, checkOut time.Time, maxStayDays int) error {
	if maxStayDays <= 0 {
		maxStayDays = DefaultMaxStayDays
	}

	if !checkOut.After(checkIn) {
		return ErrCheckoutBeforeCheckin
	}
	if checkIn.Before(clock.Now()) {
		return ErrCheckinInPast
	}
	if checkOut.Sub(checkIn) > time.Duration(maxStayDays)*24*time.Hour {
		return ErrStayTooLong
	}
	return nil
}
