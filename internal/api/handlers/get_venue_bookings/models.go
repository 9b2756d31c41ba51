package get_venue_bookings

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings/models"
)

// parseQuery собирает фильтр бронирований из query-параметров:
// courtId, date, status, includeCancelled - все опциональные
func parseQuery(venueID int64, query url.Values) (*models.GetVenueBookingsRequest, error) {
	req := &models.GetVenueBookingsRequest{
		VenueID: venueID,
	}

	if courtIDStr := query.Get("courtId"); courtIDStr != "" {
		courtID, err := strconv.ParseInt(courtIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.CourtID = &courtID
	}

	if dateStr := query.Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if includeStr := query.Get("includeCancelled"); includeStr != "" {
		include, err := strconv.ParseBool(includeStr)
		if err != nil {
			return nil, err
		}
		req.IncludeCancelled = include
	}

	return req, nil
}
