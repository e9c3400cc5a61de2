package validator

import (
	"errors"
	"strings"
	"testing"
	"time"

	"innkeep/pkg/logger"
	"innkeep/pkg/model"
)

func newTestValidator(t *testing.T) *BookingValidator {
	t.Helper()
	return NewBookingValidator(logger.New(logger.Config{Level: "error", Format: logger.FormatText}))
}

func validBooking() *model.Booking {
	return &model.Booking{
		RoomID:     "507f1f77bcf86cd799439011",
		UserID:     "507f1f77bcf86cd799439012",
		CheckIn:    time.Date(2026, 9, 10, 15, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2026, 9, 12, 11, 0, 0, 0, time.UTC),
		Status:     model.StatusPending,
		GuestName:  "Dana Levi",
		GuestEmail: "dana@example.com",
		GuestPhone: "+14155550123",
	}
}

func TestValidate_ValidBooking(t *testing.T) {
	v := newTestValidator(t)

	if err := v.Validate(validBooking()); err != nil {
		t.Fatalf("expected valid booking to pass, got: %v", err)
	}
}

func TestValidate_FieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(b *model.Booking)
		wantField string
	}{
		{
			name:      "missing guest name",
			modify:    func(b *model.Booking) { b.GuestName = "" },
			wantField: "GuestName",
		},
		{
			name:      "guest name too short",
			modify:    func(b *model.Booking) { b.GuestName = "D" },
			wantField: "GuestName",
		},
		{
			name:      "invalid email",
			modify:    func(b *model.Booking) { b.GuestEmail = "not-an-email" },
			wantField: "GuestEmail",
		},
		{
			name:      "phone not E.164",
			modify:    func(b *model.Booking) { b.GuestPhone = "555-0123" },
			wantField: "GuestPhone",
		},
		{
			name:      "invalid room id",
			modify:    func(b *model.Booking) { b.RoomID = "not-hex" },
			wantField: "RoomID",
		},
		{
			name:      "unknown status",
			modify:    func(b *model.Booking) { b.Status = "archived" },
			wantField: "Status",
		},
		{
			name:      "negative price",
			modify:    func(b *model.Booking) { b.TotalPrice = -10 },
			wantField: "TotalPrice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestValidator(t)
			b := validBooking()
			tt.modify(b)

			err := v.Validate(b)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %T: %v", err, err)
			}

			found := false
			for _, ve := range verrs {
				if ve.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on field %q, got: %v", tt.wantField, verrs)
			}
		})
	}
}

func TestValidate_RejectsMarkup(t *testing.T) {
	tests := []struct {
		name   string
		modify func(b *model.Booking)
		field  string
	}{
		{
			name:   "script tag in guest name",
			modify: func(b *model.Booking) { b.GuestName = "<script>alert(1)</script>" },
			field:  "GuestName",
		},
		{
			name:   "event handler in special requests",
			modify: func(b *model.Booking) { b.SpecialRequests = `<div onmouseover="steal()">late checkout</div>` },
			field:  "SpecialRequests",
		},
		{
			name:   "javascript scheme in special requests",
			modify: func(b *model.Booking) { b.SpecialRequests = "javascript:alert(document.cookie)" },
			field:  "SpecialRequests",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestValidator(t)
			b := validBooking()
			tt.modify(b)

			err := v.Validate(b)
			if err == nil {
				t.Fatal("expected markup to be rejected, got nil")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("expected error to name field %q, got: %v", tt.field, err)
			}
		})
	}
}

func TestValidate_ProseWithAnglesPasses(t *testing.T) {
	v := newTestValidator(t)
	b := validBooking()
	b.SpecialRequests = "Two beds please, arrival < 22:00 and > 18:00"

	if err := v.Validate(b); err != nil {
		t.Fatalf("expected plain prose to pass, got: %v", err)
	}
}

func TestValidateUpdate(t *testing.T) {
	checkIn := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	checkOutOK := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		update  *model.BookingUpdate
		wantErr bool
	}{
		{
			name:    "empty update is valid",
			update:  &model.BookingUpdate{},
			wantErr: false,
		},
		{
			name:    "valid date pair",
			update:  &model.BookingUpdate{CheckIn: &checkIn, CheckOut: &checkOutOK},
			wantErr: false,
		},
		{
			name:    "invalid status",
			update:  &model.BookingUpdate{Status: "frozen"},
			wantErr: true,
		},
		{
			name:    "invalid email",
			update:  &model.BookingUpdate{GuestEmail: "nope"},
			wantErr: true,
		},
		{
			name:    "markup in guest name",
			update:  &model.BookingUpdate{GuestName: "<img src=x onerror=alert(1)>"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestValidator(t)
			err := v.ValidateUpdate(tt.update)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUpdate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
