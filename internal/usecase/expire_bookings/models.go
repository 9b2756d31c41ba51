package expire_bookings

import "time"

// Report результат одного прохода уборщика
type Report struct {
	StartedAt       time.Time
	FinishedAt      time.Time
	VenuesProcessed int
	Deleted         int64
	Failures        []VenueFailure
}

// VenueFailure ошибка обработки одной площадки; остальные площадки
// при этом обрабатываются
type VenueFailure struct {
	VenueID int64
	Err     error
}

// HasFailures возвращает true, если хотя бы одна площадка не обработана
func (r *Report) HasFailures() bool {
	return len(r.Failures) > 0
}
