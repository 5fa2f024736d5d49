// File: services/booking/availability.go
//
// Date and availability rules per booking type. All comparisons happen at
// UTC-midnight granularity: a booking is for a calendar day, not an instant.
package booking

import (
	"fmt"
	"time"

	"tripmart/config"
	"tripmart/models"
	"tripmart/utils"

	"go.uber.org/zap"
)

// DateLayout is the wire format for booking dates.
const DateLayout = "2006-01-02"

// normalizeDay truncates a time to UTC midnight.
func normalizeDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// parseDay parses a wire-format date into its UTC-midnight instant.
func parseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// validateDate decides bookability of the item on the requested day.
func validateDate(item *models.BookableItem, bookingType models.BookingType, requested time.Time, now time.Time) error {
	if requested.Before(normalizeDay(now)) {
		return utils.NewError(utils.KindValidation, "booking date cannot be in the past")
	}

	switch bookingType {
	case models.BookingTypeActivity:
		// Activities are single-occurrence events, not ranges.
		if !requested.Equal(normalizeDay(item.Date)) {
			return utils.NewError(utils.KindValidation,
				fmt.Sprintf("this activity is only available on %s", item.Date.Format(DateLayout)))
		}
	case models.BookingTypeItinerary:
		if !config.AppConfig.EnforceItineraryDates {
			// Date-list enforcement is off; any future date passes.
			utils.GetLogger().Debug("itinerary date check skipped",
				zap.String("item", item.ID),
				zap.Time("requested", requested))
			return nil
		}
		for _, d := range item.AvailableDates {
			if requested.Equal(normalizeDay(d)) {
				return nil
			}
		}
		return utils.NewError(utils.KindValidation,
			"this itinerary is not available on the requested date")
	case models.BookingTypeHistoricalPlace:
		// No date restriction beyond "not in the past".
	default:
		return utils.NewError(utils.KindValidation, fmt.Sprintf("unknown booking type %q", bookingType))
	}
	return nil
}
