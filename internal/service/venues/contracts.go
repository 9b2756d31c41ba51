package venues

import (
	"context"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
	UpdateConfig(ctx context.Context, venueID int64, openHour, closeHour, toleranceMinutes int, minDepositPercent float64) error
	ListActiveCourts(ctx context.Context, venueID int64) ([]*domain.Court, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
