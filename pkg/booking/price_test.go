package booking

import (
	"testing"
	"time"
)

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{
			name:    "three full days",
			checkIn: day(1), checkOut: day(4),
			want: 3,
		},
		{
			name:    "same instant bills one night",
			checkIn: day(1), checkOut: day(1),
			want: 1,
		},
		{
			name:    "single day",
			checkIn: day(1), checkOut: day(2),
			want: 1,
		},
		{
			name:    "partial day rounds up",
			checkIn: time.Date(2026, time.January, 1, 14, 0, 0, 0, time.UTC),
			checkOut: time.Date(2026, time.January, 3, 10, 0, 0, 0, time.UTC),
			want: 2,
		},
		{
			name:    "thirty days",
			checkIn: day(1), checkOut: day(31),
			want: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Nights(tt.checkIn, tt.checkOut); got != tt.want {
				t.Errorf("Nights() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPrice(t *testing.T) {
	if got := Price(100, day(1), day(4)); got != 300 {
		t.Errorf("Price(100, Jan 1, Jan 4) = %v, want 300", got)
	}
	if got := Price(100, day(1), day(1)); got != 100 {
		t.Errorf("Price(100, Jan 1, Jan 1) = %v, want 100 (one-night minimum)", got)
	}
	if got := Price(79.5, day(10), day(12)); got != 159 {
		t.Errorf("Price(79.5, Jan 10, Jan 12) = %v, want 159", got)
	}
}

func TestPricePanicsOnNonPositiveRate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non-positive nightly rate")
		}
	}()
	Price(0, day(1), day(2))
}
