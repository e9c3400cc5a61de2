package booking

import (
	"fmt"
	"math"
	"time"
)

// Nights converts a stay into billable nights: the ceiling of the day
// difference, never less than one. A same-day stay bills a single night.
func Nights(checkIn, checkOut time.Time) int {
	nights := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	if nights < 1 {
		nights = 1
	}
	return nights
}

// Price derives the total from the room's nightly rate. The rate must have
// been validated positive upstream; a non-positive rate is a programming
// error, not user input, so it panics.
func Price(nightlyRate float64, checkIn, checkOut time.Time) float64 {
	if nightlyRate <= 0 {
		panic(fmt.Sprintf("booking: non-positive nightly rate %v reached price calculation", nightlyRate))
	}
	return nightlyRate * float64(Nights(checkIn, checkOut))
}
