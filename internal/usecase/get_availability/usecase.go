package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	venueRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/venue"
)

// UseCase use case построения сетки доступности площадки на дату.
// Read-only композиция часовой сетки и текущих бронирований;
// используется и внутренним календарем, и партнерским API.
type UseCase struct {
	bookingRepo BookingRepository
	venueRepo   VenueRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	venueRepo VenueRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		venueRepo:   venueRepo,
		logger:      logger,
	}
}

// Execute выполняет use case получения сетки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: venue=%d, date=%s", req.VenueID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем площадку
	venue, err := uc.venueRepo.GetByID(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("GetAvailability: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("GetAvailability: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}
	if !venue.IsActive {
		uc.logger.Warn("GetAvailability: venue id=%d is inactive", req.VenueID)
		return nil, ErrVenueNotFound
	}

	// 3. Активные корты в стабильном порядке (по номеру корта)
	courts, err := uc.venueRepo.ListActiveCourts(ctx, req.VenueID)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list courts for venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to list courts: %v", ErrInternal, err)
	}

	// 4. Для каждого корта: бронирования на дату + часовая сетка
	result := make([]CourtAvailability, 0, len(courts))
	for _, court := range courts {
		bookings, err := uc.bookingRepo.GetByCourtAndDate(ctx, court.ID, req.Date)
		if err != nil {
			uc.logger.Error("GetAvailability: failed to get bookings for court id=%d: %v", court.ID, err)
			return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		result = append(result, CourtAvailability{
			CourtID:     court.ID,
			CourtNumber: court.CourtNumber,
			CourtName:   court.Name,
			HourlyRate:  court.HourlyRate,
			Slots:       buildCourtSlots(venue, court, bookings),
		})
	}

	uc.logger.Info("GetAvailability: built grid for venue=%d, date=%s: %d courts x %d slots",
		req.VenueID, req.Date.Format(domain.DateFormat), len(result), venue.SlotCount())

	return &Response{
		VenueID:   req.VenueID,
		Date:      req.Date,
		OpenHour:  venue.OpenHour,
		CloseHour: venue.CloseHour,
		Courts:    result,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
