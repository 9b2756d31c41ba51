package record_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidAmount      = "некорректная сумма оплаты"
	msgNotFound           = "бронирование не найдено"
	msgBookingCancelled   = "бронирование отменено"
	msgPaymentExceeds     = "сумма оплаты превышает стоимость бронирования"
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

// Handle POST /api/v1/bookings/{bookingId}/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/payments - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req models.RecordPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/payments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.service.RecordPayment(r.Context(), bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/payments - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrBookingCancelled):
			h.logger.Warn("POST /bookings/{id}/payments - Booking cancelled: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgBookingCancelled)

		case errors.Is(err, bookings.ErrPaymentExceedsPrice):
			h.logger.Warn("POST /bookings/{id}/payments - Payment exceeds price: booking_id=%d, amount=%.2f",
				bookingID, req.Amount)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgPaymentExceeds)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/payments - Invalid amount: booking_id=%d, amount=%.2f",
				bookingID, req.Amount)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		default:
			h.logger.Error("POST /bookings/{id}/payments - Failed to record payment: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/payments - Payment recorded: booking_id=%d, amount=%.2f, status=%s",
		bookingID, req.Amount, booking.Status)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
