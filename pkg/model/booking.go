package model

import (
	"time"
)

type Booking struct {
	ID              string        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	RoomID          string        `json:"room_id" bson:"room_id" validate:"required,mongodb"`
	UserID          string        `json:"user_id" bson:"user_id" validate:"required,mongodb"`
	CheckIn         time.Time     `json:"check_in" bson:"check_in" validate:"required"`
	CheckOut        time.Time     `json:"check_out" bson:"check_out" validate:"required"`
	TotalPrice      float64       `json:"total_price" bson:"total_price" validate:"gte=0"`
	Status          BookingStatus `json:"status" bson:"status" validate:"required,oneof=pending confirmed cancelled completed"`
	GuestName       string        `json:"guest_name" bson:"guest_name" validate:"required,min=2,max=100,safe_text"`
	GuestEmail      string        `json:"guest_email" bson:"guest_email" validate:"required,email,max=254"`
	GuestPhone      string        `json:"guest_phone" bson:"guest_phone" validate:"required,e164"`
	SpecialRequests string        `json:"special_requests,omitempty" bson:"special_requests,omitempty" validate:"omitempty,max=500,safe_text"`
	IsDeleted       bool          `json:"is_deleted,omitempty" bson:"is_deleted"`
	CreatedAt       time.Time     `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt       time.Time     `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

type BookingUpdate struct {
	RoomID          string     `json:"room_id,omitempty" validate:"omitempty,mongodb"`
	CheckIn         *time.Time `json:"check_in,omitempty" validate:"omitempty"`
	CheckOut        *time.Time `json:"check_out,omitempty" validate:"omitempty"`
	GuestName       string     `json:"guest_name,omitempty" validate:"omitempty,min=2,max=100,safe_text"`
	GuestEmail      string     `json:"guest_email,omitempty" validate:"omitempty,email,max=254"`
	GuestPhone      string     `json:"guest_phone,omitempty" validate:"omitempty,e164"`
	SpecialRequests *string    `json:"special_requests,omitempty" validate:"omitempty,max=500,safe_text"`
	Status          string     `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled completed"`
}

// ChangesDates reports whether the update moves the booking in time or to
// another room, which forces the overlap check and the price to be redone.
func (u *BookingUpdate) ChangesDates() bool {
	return u.CheckIn != nil || u.CheckOut != nil || u.RoomID != ""
}
