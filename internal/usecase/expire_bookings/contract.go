package expire_bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// DeleteExpired удаляет недоплаченные, не удерживаемые в корзине
	// бронирования площадки, созданные до cutoff
	DeleteExpired(ctx context.Context, venueID int64, cutoff time.Time, minDepositPercent float64) (int64, error)
}

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	ListActive(ctx context.Context) ([]*domain.Venue, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
