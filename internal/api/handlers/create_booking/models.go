package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	VenueID       int64  `json:"venueId"`
	CourtID       int64  `json:"courtId"`
	BookingDate   string `json:"bookingDate"` // "2026-08-30"
	StartTime     string `json:"startTime"`   // "19:00"
	DurationHours int    `json:"durationHours"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	HoldInCart    bool   `json:"holdInCart,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64   `json:"id"`
	VenueID       int64   `json:"venueId"`
	CourtID       int64   `json:"courtId"`
	BookingDate   string  `json:"bookingDate"`
	StartTime     string  `json:"startTime"`
	DurationHours int     `json:"durationHours"`
	Status        string  `json:"status"`
	Price         float64 `json:"price"`
	PaidAmount    float64 `json:"paidAmount"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone,omitempty"`
	HeldInCart    bool    `json:"heldInCart"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(idempotencyKey *uuid.UUID) (*createBooking.Request, error) {
	// Парсим дату
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		VenueID:        r.VenueID,
		CourtID:        r.CourtID,
		Date:           bookingDate,
		StartTime:      startTime,
		DurationHours:  r.DurationHours,
		CustomerName:   r.CustomerName,
		CustomerPhone:  r.CustomerPhone,
		HoldInCart:     r.HoldInCart,
		IdempotencyKey: idempotencyKey,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		VenueID:       resp.VenueID,
		CourtID:       resp.CourtID,
		BookingDate:   resp.BookingDate.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		DurationHours: resp.DurationHours,
		Status:        resp.Status,
		Price:         resp.Price,
		PaidAmount:    resp.PaidAmount,
		CustomerName:  resp.CustomerName,
		CustomerPhone: resp.CustomerPhone,
		HeldInCart:    resp.HeldInCart,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
