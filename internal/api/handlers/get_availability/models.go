package get_availability

import (
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	getAvailability "github.com/m04kA/SMC-CourtBookingService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model: сетка доступности площадки на дату
type AvailabilityResponse struct {
	VenueID   int64               `json:"venueId"`
	Date      string              `json:"date"`
	OpenHour  int                 `json:"openHour"`
	CloseHour int                 `json:"closeHour"`
	Courts    []CourtAvailability `json:"courts"`
}

// CourtAvailability слоты одного корта
type CourtAvailability struct {
	CourtID     int64          `json:"courtId"`
	CourtNumber int            `json:"courtNumber"`
	CourtName   string         `json:"courtName"`
	HourlyRate  float64        `json:"hourlyRate"`
	Slots       []SlotResponse `json:"slots"`
}

// SlotResponse один часовой слот сетки
type SlotResponse struct {
	StartTime     string  `json:"startTime"` // "19:00"
	Available     bool    `json:"available"`
	Price         float64 `json:"price"`
	BookingID     *int64  `json:"bookingId,omitempty"`
	BookingStatus *string `json:"bookingStatus,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		VenueID:   resp.VenueID,
		Date:      resp.Date.Format(domain.DateFormat),
		OpenHour:  resp.OpenHour,
		CloseHour: resp.CloseHour,
		Courts:    make([]CourtAvailability, 0, len(resp.Courts)),
	}

	for _, court := range resp.Courts {
		courtResp := CourtAvailability{
			CourtID:     court.CourtID,
			CourtNumber: court.CourtNumber,
			CourtName:   court.CourtName,
			HourlyRate:  court.HourlyRate,
			Slots:       make([]SlotResponse, 0, len(court.Slots)),
		}

		for _, slot := range court.Slots {
			slotResp := SlotResponse{
				StartTime: slot.StartTime.String(),
				Available: slot.Available,
				Price:     slot.Price,
				BookingID: slot.BookingID,
			}
			if slot.BookingStatus != nil {
				status := string(*slot.BookingStatus)
				slotResp.BookingStatus = &status
			}
			courtResp.Slots = append(courtResp.Slots, slotResp)
		}

		out.Courts = append(out.Courts, courtResp)
	}

	return out
}
