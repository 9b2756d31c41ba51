package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	VenueID       int64            // ID площадки
	CourtID       int64            // ID корта
	Date          time.Time        // Дата бронирования (без времени)
	StartTime     types.TimeString // Время начала ("19:00")
	DurationHours int              // Длительность в целых часах, >= 1
	CustomerName  string           // Имя клиента
	CustomerPhone string           // Телефон клиента
	HoldInCart    bool             // Создать как корзинную резервацию (exempt от sweep)

	// IdempotencyKey опциональный ключ идемпотентности: повтор запроса
	// с тем же ключом возвращает исходно созданное бронирование
	IdempotencyKey *uuid.UUID
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64
	VenueID       int64
	CourtID       int64
	BookingDate   time.Time
	StartTime     types.TimeString
	DurationHours int
	Status        string
	Price         float64
	PaidAmount    float64
	CustomerName  string
	CustomerPhone string
	HeldInCart    bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
