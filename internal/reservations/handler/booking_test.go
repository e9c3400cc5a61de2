package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"innkeep/pkg/config"
	apperrors "innkeep/pkg/errors"
	"innkeep/pkg/logger"
	"innkeep/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockReservationService struct {
	CreateFunc     func(ctx context.Context, b *model.Booking) error
	GetByIDFunc    func(ctx context.Context, id string) (*model.Booking, error)
	ListByUserFunc func(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, int64, error)
	ListByRoomFunc func(ctx context.Context, roomID string, limit int, offset int64) ([]*model.Booking, error)
	UpdateFunc     func(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error)
	CancelFunc     func(ctx context.Context, id, actingUserID string) error
	ConfirmFunc    func(ctx context.Context, id string) error
	CompleteFunc   func(ctx context.Context, id string) error
	DeleteFunc     func(ctx context.Context, id string) error
}

func (m *mockReservationService) Create(ctx context.Context, b *model.Booking) error {
	return m.CreateFunc(ctx, b)
}

func (m *mockReservationService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockReservationService) ListByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, int64, error) {
	return m.ListByUserFunc(ctx, userID, limit, offset)
}

func (m *mockReservationService) ListByRoom(ctx context.Context, roomID string, limit int, offset int64) ([]*model.Booking, error) {
	return m.ListByRoomFunc(ctx, roomID, limit, offset)
}

func (m *mockReservationService) Update(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error) {
	return m.UpdateFunc(ctx, id, updates)
}

func (m *mockReservationService) Cancel(ctx context.Context, id, actingUserID string) error {
	return m.CancelFunc(ctx, id, actingUserID)
}

func (m *mockReservationService) Confirm(ctx context.Context, id string) error {
	return m.ConfirmFunc(ctx, id)
}

func (m *mockReservationService) Complete(ctx context.Context, id string) error {
	return m.CompleteFunc(ctx, id)
}

func (m *mockReservationService) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

func newTestRouter(svc *mockReservationService) *httprouter.Router {
	cfg := &config.Config{
		Log: logger.New(logger.Config{Level: "error", Format: logger.FormatText}),
	}
	router := httprouter.New()
	NewBookingHandler(svc, cfg).RegisterRoutes(router)
	return router
}

func sampleBooking() *model.Booking {
	return &model.Booking{
		ID:         "507f1f77bcf86cd799439013",
		RoomID:     "507f1f77bcf86cd799439011",
		UserID:     "507f1f77bcf86cd799439012",
		CheckIn:    time.Date(2026, 9, 10, 15, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2026, 9, 12, 11, 0, 0, 0, time.UTC),
		TotalPrice: 240,
		Status:     model.StatusPending,
		GuestName:  "Dana Levi",
		GuestEmail: "dana@example.com",
		GuestPhone: "+14155550123",
	}
}

func TestCreateBooking(t *testing.T) {
	svc := &mockReservationService{
		CreateFunc: func(ctx context.Context, b *model.Booking) error {
			b.ID = "507f1f77bcf86cd799439013"
			b.Status = model.StatusPending
			return nil
		},
	}
	router := newTestRouter(svc)

	body := `{
		"room_id": "507f1f77bcf86cd799439011",
		"check_in": "2026-09-10T15:00:00Z",
		"check_out": "2026-09-12T11:00:00Z",
		"guest_name": "Dana Levi",
		"guest_email": "dana@example.com",
		"guest_phone": "+14155550123"
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	req.Header.Set("X-User-ID", "507f1f77bcf86cd799439012")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data model.Booking `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.ID == "" {
		t.Error("expected booking id in response")
	}
	if resp.Data.UserID != "507f1f77bcf86cd799439012" {
		t.Errorf("expected user id from header, got %q", resp.Data.UserID)
	}
}

func TestCreateBooking_BadPayloads(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"malformed json", `{"room_id": `},
		{"unknown field", `{"room_id": "507f1f77bcf86cd799439011", "sneaky": true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockReservationService{
				CreateFunc: func(ctx context.Context, b *model.Booking) error {
					t.Fatal("service must not be called for a bad payload")
					return nil
				},
			}
			router := newTestRouter(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestCreateBooking_Conflict(t *testing.T) {
	svc := &mockReservationService{
		CreateFunc: func(ctx context.Context, b *model.Booking) error {
			return apperrors.Conflict("Room already booked Sep 10 - Sep 12").
				WithReason(apperrors.ReasonOverlapConflict)
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	var resp struct {
		Code    string         `json:"code"`
		Details map[string]any `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != apperrors.CodeConflict {
		t.Errorf("expected CONFLICT code, got %s", resp.Code)
	}
	if resp.Details["reason"] != apperrors.ReasonOverlapConflict {
		t.Errorf("expected overlap reason, got %v", resp.Details["reason"])
	}
}

func TestGetBooking(t *testing.T) {
	svc := &mockReservationService{
		GetByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			if id != "507f1f77bcf86cd799439013" {
				t.Errorf("unexpected id: %s", id)
			}
			return sampleBooking(), nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations/id/507f1f77bcf86cd799439013", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGetBooking_NotFound(t *testing.T) {
	svc := &mockReservationService{
		GetByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations/id/507f1f77bcf86cd799439099", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestListBookings(t *testing.T) {
	t.Run("by user", func(t *testing.T) {
		svc := &mockReservationService{
			ListByUserFunc: func(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, int64, error) {
				if userID != "507f1f77bcf86cd799439012" {
					t.Errorf("unexpected user id: %s", userID)
				}
				if limit != 5 || offset != 10 {
					t.Errorf("expected limit 5 offset 10, got %d %d", limit, offset)
				}
				return []*model.Booking{sampleBooking()}, 42, nil
			},
		}
		router := newTestRouter(svc)

		req := httptest.NewRequest(http.MethodGet,
			"/api/v1/reservations?user_id=507f1f77bcf86cd799439012&limit=5&offset=10", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var resp struct {
			TotalCount int64 `json:"total_count"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.TotalCount != 42 {
			t.Errorf("expected total 42, got %d", resp.TotalCount)
		}
	})

	t.Run("by room", func(t *testing.T) {
		svc := &mockReservationService{
			ListByRoomFunc: func(ctx context.Context, roomID string, limit int, offset int64) ([]*model.Booking, error) {
				return []*model.Booking{sampleBooking()}, nil
			},
		}
		router := newTestRouter(svc)

		req := httptest.NewRequest(http.MethodGet,
			"/api/v1/reservations?room_id=507f1f77bcf86cd799439011", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("missing filter", func(t *testing.T) {
		router := newTestRouter(&mockReservationService{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("both filters", func(t *testing.T) {
		router := newTestRouter(&mockReservationService{})

		req := httptest.NewRequest(http.MethodGet,
			"/api/v1/reservations?user_id=a&room_id=b", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestCancelBooking(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &mockReservationService{
			CancelFunc: func(ctx context.Context, id, actingUserID string) error {
				if actingUserID != "507f1f77bcf86cd799439012" {
					t.Errorf("unexpected acting user: %s", actingUserID)
				}
				return nil
			},
		}
		router := newTestRouter(svc)

		req := httptest.NewRequest(http.MethodPost,
			"/api/v1/reservations/id/507f1f77bcf86cd799439013/cancel", nil)
		req.Header.Set("X-User-ID", "507f1f77bcf86cd799439012")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	})

	t.Run("missing user header", func(t *testing.T) {
		svc := &mockReservationService{
			CancelFunc: func(ctx context.Context, id, actingUserID string) error {
				t.Fatal("service must not be called without a user header")
				return nil
			},
		}
		router := newTestRouter(svc)

		req := httptest.NewRequest(http.MethodPost,
			"/api/v1/reservations/id/507f1f77bcf86cd799439013/cancel", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("not the owner", func(t *testing.T) {
		svc := &mockReservationService{
			CancelFunc: func(ctx context.Context, id, actingUserID string) error {
				return apperrors.Forbidden("Only the booking owner may cancel it")
			},
		}
		router := newTestRouter(svc)

		req := httptest.NewRequest(http.MethodPost,
			"/api/v1/reservations/id/507f1f77bcf86cd799439013/cancel", nil)
		req.Header.Set("X-User-ID", "507f1f77bcf86cd799439099")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", rec.Code)
		}
	})
}

func TestUpdateBooking(t *testing.T) {
	svc := &mockReservationService{
		UpdateFunc: func(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error) {
			if updates.GuestName != "Noa Katz" {
				t.Errorf("expected guest name in update, got %q", updates.GuestName)
			}
			b := sampleBooking()
			b.GuestName = updates.GuestName
			return b, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPatch,
		"/api/v1/reservations/id/507f1f77bcf86cd799439013",
		strings.NewReader(`{"guest_name": "Noa Katz"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestDeleteBooking(t *testing.T) {
	svc := &mockReservationService{
		DeleteFunc: func(ctx context.Context, id string) error { return nil },
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete,
		"/api/v1/reservations/id/507f1f77bcf86cd799439013", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestStatusEndpoints(t *testing.T) {
	t.Run("confirm", func(t *testing.T) {
		svc := &mockReservationService{
			ConfirmFunc: func(ctx context.Context, id string) error { return nil },
		}
		router := newTestRouter(svc)

		req := httptest.NewRequest(http.MethodPost,
			"/api/v1/reservations/id/507f1f77bcf86cd799439013/confirm", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	})

	t.Run("complete illegal transition", func(t *testing.T) {
		svc := &mockReservationService{
			CompleteFunc: func(ctx context.Context, id string) error {
				return apperrors.Conflict("cannot transition booking from pending to completed").
					WithReason(apperrors.ReasonInvalidTransition)
			},
		}
		router := newTestRouter(svc)

		req := httptest.NewRequest(http.MethodPost,
			"/api/v1/reservations/id/507f1f77bcf86cd799439013/complete", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})
}
