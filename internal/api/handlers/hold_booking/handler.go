package hold_booking

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgBookingCancelled = "бронирование отменено"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleHold PATCH /api/v1/bookings/{bookingId}/hold
func (h *Handler) HandleHold(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "hold", h.service.Hold)
}

// HandleRelease PATCH /api/v1/bookings/{bookingId}/release
func (h *Handler) HandleRelease(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "release", h.service.Release)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, op string, call func(context.Context, int64) (*models.BookingResponse, error)) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/%s - Invalid booking ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := call(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/%s - Booking not found: booking_id=%d", op, bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrBookingCancelled):
			h.logger.Warn("PATCH /bookings/{id}/%s - Booking cancelled: booking_id=%d", op, bookingID)
			handlers.RespondError(w, http.StatusConflict, msgBookingCancelled)

		default:
			h.logger.Error("PATCH /bookings/{id}/%s - Failed to update hold: booking_id=%d, error=%v",
				op, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/%s - Hold updated: booking_id=%d, held=%t", op, bookingID, booking.HeldInCart)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
