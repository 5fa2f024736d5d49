package booking

import (
	"testing"
	"time"

	"tripmart/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		from, to models.BookingStatus
		allowed  bool
	}{
		{models.BookingStatusPending, models.BookingStatusConfirmed, true},
		{models.BookingStatusPending, models.BookingStatusCancelled, true},
		{models.BookingStatusPending, models.BookingStatusAttended, false},
		{models.BookingStatusConfirmed, models.BookingStatusCompleted, true},
		{models.BookingStatusConfirmed, models.BookingStatusCancelled, true},
		{models.BookingStatusConfirmed, models.BookingStatusAttended, true},
		{models.BookingStatusCompleted, models.BookingStatusConfirmed, false},
		{models.BookingStatusCancelled, models.BookingStatusConfirmed, false},
		{models.BookingStatusAttended, models.BookingStatusCancelled, false},
		{models.BookingStatusAccountDeleted, models.BookingStatusConfirmed, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, canTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestUpdateStatusRejectsIllegalTransition(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.bookings["b-1"] = &models.Booking{
		ID: "b-1", TouristID: "t-1", Status: models.BookingStatusCompleted,
	}

	_, err := svc.UpdateStatus("b-1", models.BookingStatusConfirmed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot move booking")
}

func TestUpdateStatusAppliesLegalTransition(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.bookings["b-1"] = &models.Booking{
		ID: "b-1", TouristID: "t-1", Status: models.BookingStatusConfirmed,
	}

	b, err := svc.UpdateStatus("b-1", models.BookingStatusAttended)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusAttended, b.Status)
	assert.Equal(t, models.BookingStatusAttended, repo.bookings["b-1"].Status)
}

func TestUpdateStatusRejectsUnknownTarget(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.bookings["b-1"] = &models.Booking{
		ID: "b-1", Status: models.BookingStatusConfirmed,
	}

	_, err := svc.UpdateStatus("b-1", models.BookingStatus("vanished"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid target status")
}

func TestCancelWithinWindowRefused(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.bookings["b-1"] = &models.Booking{
		ID:          "b-1",
		TouristID:   "t-1",
		Status:      models.BookingStatusConfirmed,
		BookingDate: time.Now().Add(6 * time.Hour),
	}

	_, err := svc.Cancel("t-1", "b-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "within 24 hours")
	assert.Equal(t, models.BookingStatusConfirmed, repo.bookings["b-1"].Status)
}

func TestCancelOutsideWindowSucceeds(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.bookings["b-1"] = &models.Booking{
		ID:          "b-1",
		TouristID:   "t-1",
		Status:      models.BookingStatusConfirmed,
		BookingDate: time.Now().Add(72 * time.Hour),
	}

	b, err := svc.Cancel("t-1", "b-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, b.Status)
}

func TestCancelTerminalBookingRefused(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.bookings["b-1"] = &models.Booking{
		ID:          "b-1",
		TouristID:   "t-1",
		Status:      models.BookingStatusAttended,
		BookingDate: time.Now().Add(72 * time.Hour),
	}

	_, err := svc.Cancel("t-1", "b-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no longer be cancelled")
}

func TestCancelOtherTouristsBooking(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.bookings["b-1"] = &models.Booking{
		ID:          "b-1",
		TouristID:   "t-1",
		Status:      models.BookingStatusConfirmed,
		BookingDate: time.Now().Add(72 * time.Hour),
	}

	_, err := svc.Cancel("t-2", "b-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
