package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// BookingStatus represents the payment/lifecycle status of a booking.
// The set is closed: external boundaries that speak the legacy vocabulary
// (LUNAS, DP, BELUM_BAYAR) convert through an explicit mapping table,
// the domain never stores legacy values.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"   // создано, оплата еще не зафиксирована
	StatusPaid      BookingStatus = "paid"      // оплачено полностью (legacy: LUNAS)
	StatusDeposit   BookingStatus = "deposit"   // внесен депозит не ниже порога площадки (legacy: DP)
	StatusUnpaid    BookingStatus = "unpaid"    // оплата ниже порога депозита (legacy: BELUM_BAYAR)
	StatusCancelled BookingStatus = "cancelled" // отменено, слот освобожден
	StatusCompleted BookingStatus = "completed" // игра состоялась
)

// Booking represents a court booking for one calendar day.
// The occupied interval is [StartTime, StartTime + DurationHours) in
// decimal hours; bookings never cross midnight.
type Booking struct {
	ID            int64
	VenueID       int64
	CourtID       int64
	BookingDate   time.Time
	StartTime     types.TimeString
	DurationHours int
	Status        BookingStatus

	Price      float64
	PaidAmount float64

	CustomerName  string
	CustomerPhone string

	// HeldInCartSince non-nil means the booking is a work-in-progress
	// reservation (mid-checkout) and is exempt from the expiry sweep.
	HeldInCartSince *time.Time

	// IdempotencyKey защищает от дублей при повторе запроса после таймаута
	IdempotencyKey *uuid.UUID

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the booking occupies its slot.
// Cancelled is the only status that frees the interval.
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status != StatusCancelled && b.Status != StatusCompleted
}

// IsHeldInCart returns true if the booking is held as a cart reservation
func (b *Booking) IsHeldInCart() bool {
	return b.HeldInCartSince != nil
}

// IsFullyPaid returns true if the recorded payments cover the full price
func (b *Booking) IsFullyPaid() bool {
	return b.Price > 0 && b.PaidAmount >= b.Price
}

// PaidPercent returns paid/price as a percentage (0-100).
// Нулевая цена считается как 0% оплаты - такое бронирование
// всегда кандидат на удаление уборщиком после cutoff.
func (b *Booking) PaidPercent() float64 {
	if b.Price <= 0 {
		return 0
	}
	return b.PaidAmount / b.Price * 100
}

// VenueBookingsFilter фильтр для получения бронирований площадки
type VenueBookingsFilter struct {
	VenueID          int64          // Обязательный параметр
	CourtID          *int64         // Фильтр по корту (опционально)
	Date             *time.Time     // Фильтр по дате (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отмененные бронирования
}
