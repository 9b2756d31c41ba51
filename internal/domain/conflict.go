package domain

import "github.com/m04kA/SMC-CourtBookingService/pkg/types"

// Interval полуоткрытый временной интервал [Start, End) в десятичных часах
type Interval struct {
	Start float64
	End   float64
}

// NewInterval строит интервал из времени начала и длительности в часах
func NewInterval(start types.TimeString, durationHours int) (Interval, error) {
	startHours, err := start.DecimalHours()
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: startHours, End: startHours + float64(durationHours)}, nil
}

// BookingInterval возвращает занимаемый бронированием интервал
func BookingInterval(b *Booking) (Interval, error) {
	return NewInterval(b.StartTime, b.DurationHours)
}

// Overlaps проверяет пересечение полуоткрытых интервалов.
// Интервалы пересекаются тогда и только тогда, когда
// i.Start < o.End && o.Start < i.End - граничащие интервалы
// (конец одного равен началу другого) НЕ пересекаются.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}

// Contains проверяет, что точка времени попадает в интервал:
// point >= Start && point < End
func (i Interval) Contains(point float64) bool {
	return point >= i.Start && point < i.End
}

// FindConflict возвращает первое активное бронирование, чей интервал
// пересекается с кандидатом [start, start+durationHours), или nil.
// Отмененные бронирования освобождают слот и не учитываются.
// Бронирования с невалидным временем пропускаются - они не могут
// корректно занимать интервал.
//
// Список bookings должен быть уже отфильтрован по корту и дате.
func FindConflict(start types.TimeString, durationHours int, bookings []*Booking) (*Booking, error) {
	candidate, err := NewInterval(start, durationHours)
	if err != nil {
		return nil, err
	}

	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}

		occupied, err := BookingInterval(booking)
		if err != nil {
			continue
		}

		if candidate.Overlaps(occupied) {
			return booking, nil
		}
	}

	return nil, nil
}

// FindOccupying возвращает активное бронирование, чей интервал содержит
// точку времени point (в десятичных часах), или nil.
// Используется при построении сетки доступности.
func FindOccupying(point float64, bookings []*Booking) *Booking {
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}

		occupied, err := BookingInterval(booking)
		if err != nil {
			continue
		}

		if occupied.Contains(point) {
			return booking
		}
	}

	return nil
}
