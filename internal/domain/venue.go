package domain

import "time"

// Venue represents a sports venue (badminton hall) with its booking policy.
// Operating hours are a half-open interval of whole hours [OpenHour, CloseHour).
type Venue struct {
	ID                int64
	Name              string
	OpenHour          int // час открытия, 0-23
	CloseHour         int // час закрытия, 1-24, слоты генерируются до CloseHour не включительно
	ToleranceMinutes  int // грейс-период до автоудаления недоплаченных бронирований
	MinDepositPercent float64
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HasValidHours returns true if the operating interval is non-degenerate.
// OpenHour >= CloseHour дает пустую сетку слотов, это не ошибка времени выполнения.
func (v *Venue) HasValidHours() bool {
	return v.OpenHour < v.CloseHour
}

// SlotCount returns the number of hourly slots in the operating interval
func (v *Venue) SlotCount() int {
	if !v.HasValidHours() {
		return 0
	}
	return v.CloseHour - v.OpenHour
}

// Court represents a single bookable court of a venue.
// Inactive courts keep their booking history but are hidden from availability.
type Court struct {
	ID          int64
	VenueID     int64
	CourtNumber int
	Name        string
	HourlyRate  float64
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
