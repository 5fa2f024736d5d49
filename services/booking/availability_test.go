package booking

import (
	"testing"
	"time"

	"tripmart/config"
	"tripmart/models"
	"tripmart/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseDayNormalizesToUTCMidnight(t *testing.T) {
	parsed, err := parseDay("2026-09-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), parsed)

	_, err = parseDay("15/09/2026")
	require.Error(t, err)
}

func TestValidateDatePastDate(t *testing.T) {
	now := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	item := &models.BookableItem{ID: "p-1"}

	err := validateDate(item, models.BookingTypeHistoricalPlace,
		time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be in the past")

	// Same calendar day counts as bookable even later in the day.
	err = validateDate(item, models.BookingTypeHistoricalPlace,
		time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), now)
	assert.NoError(t, err)
}

func TestValidateDateActivityExactDayOnly(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	item := &models.BookableItem{
		ID:   "act-1",
		Date: time.Date(2026, 9, 10, 18, 30, 0, 0, time.UTC), // evening event
	}

	err := validateDate(item, models.BookingTypeActivity,
		time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), now)
	assert.NoError(t, err)

	err = validateDate(item, models.BookingTypeActivity,
		time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC), now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only available on 2026-09-10")
}

func TestValidateDateItineraryToggle(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	item := &models.BookableItem{
		ID: "it-1",
		AvailableDates: []time.Time{
			time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		},
	}
	offList := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)

	// Toggle off: any future date passes.
	err := validateDate(item, models.BookingTypeItinerary, offList, now)
	assert.NoError(t, err)

	config.AppConfig.EnforceItineraryDates = true
	defer func() { config.AppConfig.EnforceItineraryDates = false }()

	err = validateDate(item, models.BookingTypeItinerary, offList, now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available on the requested date")

	err = validateDate(item, models.BookingTypeItinerary,
		time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC), now)
	assert.NoError(t, err)
}

func TestValidateDateItineraryToggleOffLogsSkip(t *testing.T) {
	core, observed := observer.New(zap.DebugLevel)
	prev := utils.Logger
	utils.Logger = zap.New(core)
	defer func() { utils.Logger = prev }()

	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	item := &models.BookableItem{
		ID:             "it-1",
		AvailableDates: []time.Time{time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)},
	}

	err := validateDate(item, models.BookingTypeItinerary,
		time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC), now)
	require.NoError(t, err)

	entries := observed.FilterMessage("itinerary date check skipped").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "it-1", entries[0].ContextMap()["item"])
}

func TestValidateDateUnknownType(t *testing.T) {
	now := time.Now()
	err := validateDate(&models.BookableItem{}, models.BookingType("museum"),
		normalizeDay(now).AddDate(0, 0, 1), now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown booking type")
}
