package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// legacyStatusAliases таблица соответствия legacy-словаря статусов
// каноническому набору. Единственное место, где legacy-строки существуют:
// домен хранит только канонические значения, набор закрыт и не растет
// по месту использования.
var legacyStatusAliases = map[string]domain.BookingStatus{
	"LUNAS":       domain.StatusPaid,
	"DP":          domain.StatusDeposit,
	"BELUM_BAYAR": domain.StatusUnpaid,
}

// legacyStatusNames обратное отображение для ответов партнерского API
var legacyStatusNames = map[domain.BookingStatus]string{
	domain.StatusPaid:    "LUNAS",
	domain.StatusDeposit: "DP",
	domain.StatusUnpaid:  "BELUM_BAYAR",
}

// ToDomainBookingStatus конвертирует строку статуса (каноническую или
// legacy) в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	if mapped, ok := legacyStatusAliases[status]; ok {
		return mapped, nil
	}

	s := domain.BookingStatus(status)
	for _, valid := range domain.AllStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}

// LegacyStatusName возвращает legacy-имя статуса для границ, обязанных
// говорить на старом словаре; для статусов без legacy-имени возвращает
// каноническое
func LegacyStatusName(status domain.BookingStatus) string {
	if name, ok := legacyStatusNames[status]; ok {
		return name
	}
	return string(status)
}

// Request модели

// RecordPaymentRequest запрос на фиксацию оплаты
type RecordPaymentRequest struct {
	Amount float64 `json:"amount"`
}

// GetVenueBookingsRequest запрос на получение бронирований площадки
type GetVenueBookingsRequest struct {
	VenueID          int64      `json:"venueId"`
	CourtID          *int64     `json:"courtId,omitempty"`          // Фильтр по корту (опционально)
	Date             *time.Time `json:"date,omitempty"`             // Фильтр по дате (опционально)
	Status           *string    `json:"status,omitempty"`           // Фильтр по статусу (опционально, принимает и legacy)
	IncludeCancelled bool       `json:"includeCancelled,omitempty"` // Включить отмененные бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetVenueBookingsRequest) ToDomainFilter() (domain.VenueBookingsFilter, error) {
	filter := domain.VenueBookingsFilter{
		VenueID:          r.VenueID,
		CourtID:          r.CourtID,
		Date:             r.Date,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64   `json:"id"`
	VenueID       int64   `json:"venueId"`
	CourtID       int64   `json:"courtId"`
	BookingDate   string  `json:"bookingDate"` // "2026-08-30"
	StartTime     string  `json:"startTime"`   // "19:00"
	DurationHours int     `json:"durationHours"`
	Status        string  `json:"status"`
	LegacyStatus  string  `json:"legacyStatus"`
	Price         float64 `json:"price"`
	PaidAmount    float64 `json:"paidAmount"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone,omitempty"`
	HeldInCart    bool    `json:"heldInCart"`

	HeldInCartSince *string `json:"heldInCartSince,omitempty"` // ISO 8601
	CancelledAt     *string `json:"cancelledAt,omitempty"`     // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:            b.ID,
		VenueID:       b.VenueID,
		CourtID:       b.CourtID,
		BookingDate:   b.BookingDate.Format(domain.DateFormat),
		StartTime:     b.StartTime.String(),
		DurationHours: b.DurationHours,
		Status:        string(b.Status),
		LegacyStatus:  LegacyStatusName(b.Status),
		Price:         b.Price,
		PaidAmount:    b.PaidAmount,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		HeldInCart:    b.IsHeldInCart(),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}

	if b.HeldInCartSince != nil {
		heldStr := b.HeldInCartSince.Format(time.RFC3339)
		resp.HeldInCartSince = &heldStr
	}
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}
