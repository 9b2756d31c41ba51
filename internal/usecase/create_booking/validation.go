package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса до обращения к репозиторию
func validateRequest(req *Request) error {
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if req.CourtID <= 0 {
		return fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.DurationHours < domain.MinDurationHours {
		return fmt.Errorf("%w: durationHours must be at least %d", ErrInvalidInput, domain.MinDurationHours)
	}

	if req.DurationHours > domain.MaxDurationHours {
		return fmt.Errorf("%w: durationHours must not exceed %d", ErrInvalidInput, domain.MaxDurationHours)
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName is too long", ErrInvalidInput)
	}

	if len(req.CustomerPhone) > domain.MaxCustomerPhoneLength {
		return fmt.Errorf("%w: customerPhone is too long", ErrInvalidInput)
	}

	return nil
}

// validateWithinOperatingHours проверяет, что интервал бронирования целиком
// лежит в рабочих часах площадки [OpenHour, CloseHour).
// Сетка слотов часовая, поэтому начало должно быть целым часом.
func validateWithinOperatingHours(venue *domain.Venue, req *Request) error {
	hour, minute, err := req.StartTime.Clock()
	if err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	if minute != 0 {
		return fmt.Errorf("%w: startTime must be a whole hour", ErrInvalidInput)
	}

	if hour < venue.OpenHour || hour+req.DurationHours > venue.CloseHour {
		return fmt.Errorf("%w: slot %02d:00 + %dh is outside operating hours [%d, %d)",
			ErrOutsideOperatingHours, hour, req.DurationHours, venue.OpenHour, venue.CloseHour)
	}

	return nil
}
