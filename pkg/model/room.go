package model

import "time"

// Room is owned by the catalog service; the reservation engine only reads
// existence, nightly rate and capacity.
type Room struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name        string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	NightlyRate float64   `json:"nightly_rate" bson:"nightly_rate" validate:"required,gt=0"`
	Capacity    int       `json:"capacity" bson:"capacity" validate:"required,min=1,max=20"`
	IsDeleted   bool      `json:"is_deleted,omitempty" bson:"is_deleted"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}
