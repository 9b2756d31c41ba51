package get_availability

import (
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// buildCourtSlots строит слоты корта: для каждой точки часовой сетки
// ищет активное бронирование, чей интервал содержит точку
// (t >= start && t < end). Найденное бронирование помечает слот занятым.
//
// Линейный проход по бронированиям на каждую точку сетки дает
// O(slots * bookings) на корт - при <= 24 слотах и десятках бронирований
// в день индексная структура не нужна.
func buildCourtSlots(venue *domain.Venue, court *domain.Court, bookings []*domain.Booking) []domain.Slot {
	grid := domain.TimeGrid(venue.OpenHour, venue.CloseHour)
	slots := make([]domain.Slot, 0, len(grid))

	for _, point := range grid {
		slot := domain.Slot{
			StartTime: point,
			Available: true,
			Price:     court.HourlyRate,
		}

		pointHours, err := point.DecimalHours()
		if err != nil {
			// Точки сетки генерируются из целых часов и всегда валидны;
			// невалидная точка не может быть занята
			slots = append(slots, slot)
			continue
		}

		if occupying := domain.FindOccupying(pointHours, bookings); occupying != nil {
			slot.Available = false
			slot.BookingID = &occupying.ID
			status := occupying.Status
			slot.BookingStatus = &status
		}

		slots = append(slots, slot)
	}

	return slots
}
