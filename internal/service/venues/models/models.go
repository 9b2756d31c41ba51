package models

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// VenueConfigResponse конфигурация бронирования площадки
type VenueConfigResponse struct {
	VenueID           int64   `json:"venueId"`
	Name              string  `json:"name"`
	OpenHour          int     `json:"openHour"`
	CloseHour         int     `json:"closeHour"`
	ToleranceMinutes  int     `json:"toleranceMinutes"`
	MinDepositPercent float64 `json:"minDepositPercent"`
	IsActive          bool    `json:"isActive"`

	Courts []CourtResponse `json:"courts"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// CourtResponse данные корта площадки
type CourtResponse struct {
	ID          int64   `json:"id"`
	CourtNumber int     `json:"courtNumber"`
	Name        string  `json:"name"`
	HourlyRate  float64 `json:"hourlyRate"`
	IsActive    bool    `json:"isActive"`
}

// UpdateVenueConfigRequest запрос на обновление конфигурации площадки.
// Поля-указатели позволяют частичное обновление: nil означает
// "оставить как есть".
type UpdateVenueConfigRequest struct {
	OpenHour          *int     `json:"openHour,omitempty"`
	CloseHour         *int     `json:"closeHour,omitempty"`
	ToleranceMinutes  *int     `json:"toleranceMinutes,omitempty"`
	MinDepositPercent *float64 `json:"minDepositPercent,omitempty"`
}

// FromDomainVenue конвертирует domain модель площадки в DTO
func FromDomainVenue(v *domain.Venue, courts []*domain.Court) *VenueConfigResponse {
	if v == nil {
		return nil
	}

	resp := &VenueConfigResponse{
		VenueID:           v.ID,
		Name:              v.Name,
		OpenHour:          v.OpenHour,
		CloseHour:         v.CloseHour,
		ToleranceMinutes:  v.ToleranceMinutes,
		MinDepositPercent: v.MinDepositPercent,
		IsActive:          v.IsActive,
		Courts:            make([]CourtResponse, 0, len(courts)),
		UpdatedAt:         v.UpdatedAt,
	}

	for _, court := range courts {
		resp.Courts = append(resp.Courts, CourtResponse{
			ID:          court.ID,
			CourtNumber: court.CourtNumber,
			Name:        court.Name,
			HourlyRate:  court.HourlyRate,
			IsActive:    court.IsActive,
		})
	}

	return resp
}
