// Package events publishes reservation lifecycle events to Kafka. Emission
// is best-effort: a failed publish is logged by the caller and never fails
// the booking write it follows.
package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	TypeReservationCreated   = "reservation.created"
	TypeReservationUpdated   = "reservation.updated"
	TypeReservationConfirmed = "reservation.confirmed"
	TypeReservationCancelled = "reservation.cancelled"
	TypeReservationCompleted = "reservation.completed"
)

const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"
	HeaderTimestamp = "timestamp"
)

// Event is a single lifecycle notification, keyed by room so all events of
// one room land on one partition in order.
type Event struct {
	Key     string
	Type    string
	Payload []byte
	Headers map[string]string
}

// NewEvent builds an event with a fresh id, JSON-encoding the payload.
func NewEvent(eventType, key, source string, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{
		Key:     key,
		Type:    eventType,
		Payload: data,
		Headers: map[string]string{
			HeaderEventID:   uuid.New().String(),
			HeaderEventType: eventType,
			HeaderSource:    source,
			HeaderTimestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}
