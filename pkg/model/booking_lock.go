package model

import "time"

// BookingLock is an advisory lock taken before the read-check-write sequence
// of a reservation. One lock per room serializes concurrent writers; a TTL
// index on expires_at clears locks orphaned by a crashed process.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
