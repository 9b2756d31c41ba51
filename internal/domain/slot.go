package domain

import "github.com/m04kA/SMC-CourtBookingService/pkg/types"

// Slot represents one hourly grid point of a court's availability for a date
type Slot struct {
	StartTime types.TimeString
	Available bool
	Price     float64 // почасовая ставка корта

	// Заполняются только для занятого слота
	BookingID     *int64
	BookingStatus *BookingStatus
}

// IsFree returns true if the slot can be booked
func (s *Slot) IsFree() bool {
	return s.Available
}

// TimeGrid генерирует упорядоченную сетку часовых точек для рабочего
// интервала [openHour, closeHour). Вырожденный интервал (open >= close)
// дает пустую сетку, а не ошибку.
//
// Для часов [8, 22) сетка содержит 14 точек: 08:00 ... 21:00.
// Шаг сетки - один час; более мелкая гранулярность - задокументированная
// точка расширения, текущее поведение всегда целые часы.
func TimeGrid(openHour, closeHour int) []types.TimeString {
	if openHour >= closeHour {
		return []types.TimeString{}
	}

	grid := make([]types.TimeString, 0, closeHour-openHour)
	for hour := openHour; hour < closeHour; hour++ {
		grid = append(grid, types.NewTimeStringFromHour(hour))
	}
	return grid
}
