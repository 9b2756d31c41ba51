package create_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDateOrTime     = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidIdempotencyKey = "некорректный заголовок Idempotency-Key, ожидается UUID"
	msgSlotConflict          = "выбранный интервал пересекается с существующим бронированием"
	msgVenueNotFound         = "площадка не найдена"
	msgCourtNotFound         = "корт не найден"
	msgCourtNotInVenue       = "корт не принадлежит этой площадке"
	msgOutsideHours          = "интервал выходит за рабочие часы площадки"
	msgInvalidInput          = "некорректные данные бронирования"
)

// headerIdempotencyKey опциональный ключ идемпотентности запроса
const headerIdempotencyKey = "Idempotency-Key"

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Извлекаем опциональный ключ идемпотентности
	var idempotencyKey *uuid.UUID
	if keyStr := r.Header.Get(headerIdempotencyKey); keyStr != "" {
		key, err := uuid.Parse(keyStr)
		if err != nil {
			h.logger.Warn("POST /bookings - Invalid idempotency key: %v", err)
			handlers.RespondBadRequest(w, msgInvalidIdempotencyKey)
			return
		}
		idempotencyKey = &key
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(idempotencyKey)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: venue_id=%d, court_id=%d, date=%s, start=%s",
				req.VenueID, req.CourtID, req.BookingDate, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createBooking.ErrVenueNotFound):
			h.logger.Warn("POST /bookings - Venue not found: venue_id=%d", req.VenueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, createBooking.ErrCourtNotFound):
			h.logger.Warn("POST /bookings - Court not found: court_id=%d", req.CourtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, createBooking.ErrCourtNotInVenue):
			h.logger.Warn("POST /bookings - Court not in venue: venue_id=%d, court_id=%d", req.VenueID, req.CourtID)
			handlers.RespondBadRequest(w, msgCourtNotInVenue)

		case errors.Is(err, createBooking.ErrOutsideOperatingHours):
			h.logger.Warn("POST /bookings - Outside operating hours: venue_id=%d, start=%s, duration=%d",
				req.VenueID, req.StartTime, req.DurationHours)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: venue_id=%d, court_id=%d, error=%v",
				req.VenueID, req.CourtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, court_id=%d, date=%s, start=%s",
		result.ID, result.CourtID, req.BookingDate, req.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
