package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"innkeep/internal/reservations/service"
	"innkeep/pkg/config"
	apperrors "innkeep/pkg/errors"
	pkghttp "innkeep/pkg/http"
	"innkeep/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// HeaderUserID carries the acting user's identity, set by the gateway after
// authentication.
const HeaderUserID = "X-User-ID"

type BookingHandler struct {
	service service.ReservationService
	cfg     *config.Config
}

func NewBookingHandler(svc service.ReservationService, cfg *config.Config) *BookingHandler {
	return &BookingHandler{
		service: svc,
		cfg:     cfg,
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/reservations", h.Create)
	router.GET("/api/v1/reservations", h.List)
	router.GET("/api/v1/reservations/id/:id", h.GetByID)
	router.PATCH("/api/v1/reservations/id/:id", h.Update)
	router.DELETE("/api/v1/reservations/id/:id", h.Delete)
	router.POST("/api/v1/reservations/id/:id/cancel", h.Cancel)
	router.POST("/api/v1/reservations/id/:id/confirm", h.Confirm)
	router.POST("/api/v1/reservations/id/:id/complete", h.Complete)
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var booking model.Booking
	if err := h.decode(r, &booking); err != nil {
		h.writeError(w, err)
		return
	}

	if booking.UserID == "" {
		booking.UserID = r.Header.Get(HeaderUserID)
	}

	if err := h.service.Create(r.Context(), &booking); err != nil {
		h.writeError(w, err)
		return
	}
	h.write(pkghttp.WriteCreated(w, booking))
}

// List serves both booking views: by user (paginated with a total count)
// and by room (the availability view).
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := pkghttp.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	query := r.URL.Query()
	userID := query.Get("user_id")
	roomID := query.Get("room_id")

	switch {
	case userID != "" && roomID != "":
		h.writeError(w, apperrors.InvalidInput("Provide either user_id or room_id, not both"))
		return
	case userID != "":
		bookings, total, err := h.service.ListByUser(r.Context(), userID, limit, offset)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.write(pkghttp.WritePaginated(w, bookings, total, limit, offset))
	case roomID != "":
		bookings, err := h.service.ListByRoom(r.Context(), roomID, limit, offset)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.write(pkghttp.WriteSuccess(w, bookings))
	default:
		h.writeError(w, apperrors.InvalidInput("Either user_id or room_id query parameter is required"))
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.write(pkghttp.WriteSuccess(w, booking))
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.BookingUpdate
	if err := h.decode(r, &updates); err != nil {
		h.writeError(w, err)
		return
	}

	booking, err := h.service.Update(r.Context(), ps.ByName("id"), &updates)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.write(pkghttp.WriteSuccess(w, booking))
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, err)
		return
	}
	pkghttp.WriteNoContent(w)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actingUserID := r.Header.Get(HeaderUserID)
	if actingUserID == "" {
		h.writeError(w, apperrors.InvalidInput("X-User-ID header is required"))
		return
	}

	if err := h.service.Cancel(r.Context(), ps.ByName("id"), actingUserID); err != nil {
		h.writeError(w, err)
		return
	}
	pkghttp.WriteNoContent(w)
}

func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Confirm(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, err)
		return
	}
	pkghttp.WriteNoContent(w)
}

func (h *BookingHandler) Complete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Complete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, err)
		return
	}
	pkghttp.WriteNoContent(w)
}

func (h *BookingHandler) decode(r *http.Request, v any) error {
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.InvalidInput("Request body cannot be empty")
		}
		return apperrors.InvalidInput("Invalid JSON payload: " + err.Error())
	}
	return nil
}

func (h *BookingHandler) writeError(w http.ResponseWriter, err error) {
	h.write(pkghttp.WriteError(w, err))
}

func (h *BookingHandler) write(err error) {
	if err != nil {
		h.cfg.Log.Error("Failed to write response", "error", err)
	}
}
