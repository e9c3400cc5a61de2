package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrRoomNotFound = errors.New("room not found")

	// ErrLockHeld means another request is inside the read-check-write
	// sequence for the same room.
	ErrLockHeld = errors.New("room is locked by a concurrent reservation attempt")

	// ErrStaleStatus means a status write lost an optimistic-concurrency
	// race: the booking moved to another status first.
	ErrStaleStatus = errors.New("booking status changed concurrently")
)
