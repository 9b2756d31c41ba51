package get_availability

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// Request модель запроса сетки доступности
type Request struct {
	VenueID int64     // ID площадки
	Date    time.Time // Дата (без времени)
}

// Response сетка доступности площадки на дату: по корту на каждый
// часовой слот рабочего интервала - свободен/занят и цена
type Response struct {
	VenueID   int64
	Date      time.Time
	OpenHour  int
	CloseHour int
	Courts    []CourtAvailability
}

// CourtAvailability слоты одного корта, в хронологическом порядке
type CourtAvailability struct {
	CourtID     int64
	CourtNumber int
	CourtName   string
	HourlyRate  float64
	Slots       []domain.Slot
}
