// File: services/booking/lifecycle.go
package booking

import (
	"time"

	"tripmart/config"
	"tripmart/models"
	"tripmart/utils"

	"go.uber.org/zap"
)

// CancelWindow is how close to the booking date cancellation stays allowed.
const CancelWindow = 24 * time.Hour

// transitions is the lifecycle graph. Anything absent is illegal;
// account_deleted is reachable only through the account-deletion path.
var transitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingStatusPending:   {models.BookingStatusConfirmed, models.BookingStatusCancelled},
	models.BookingStatusConfirmed: {models.BookingStatusCompleted, models.BookingStatusCancelled, models.BookingStatusAttended},
}

func canTransition(from, to models.BookingStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// UpdateStatus applies a lifecycle transition after checking the table.
func (s *DefaultBookingService) UpdateStatus(bookingID string, to models.BookingStatus) (*models.Booking, error) {
	switch to {
	case models.BookingStatusConfirmed, models.BookingStatusCancelled,
		models.BookingStatusCompleted, models.BookingStatusAttended:
	default:
		return nil, utils.NewError(utils.KindValidation, "invalid target status")
	}

	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to fetch booking", err)
	}
	if b == nil {
		return nil, utils.NewError(utils.KindNotFound, "booking not found")
	}

	if !canTransition(b.Status, to) {
		return nil, utils.NewError(utils.KindConflict,
			"cannot move booking from "+string(b.Status)+" to "+string(to))
	}

	if err := s.Repo.UpdateStatus(bookingID, to); err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to update booking status", err)
	}

	if to == models.BookingStatusCancelled {
		s.releaseCapacity(b)
	}

	b.Status = to
	s.Logger.Info("booking status changed",
		zap.String("booking", b.ID), zap.String("status", string(to)))
	return b, nil
}

// Cancel is the tourist-facing cancellation; on top of the transition table
// it enforces the 24-hour window.
func (s *DefaultBookingService) Cancel(touristID, bookingID string) (*models.Booking, error) {
	b, err := s.GetByID(touristID, bookingID)
	if err != nil {
		return nil, err
	}

	if !canTransition(b.Status, models.BookingStatusCancelled) {
		return nil, utils.NewError(utils.KindConflict, "booking can no longer be cancelled")
	}

	// Plain timestamp delta, not business-hours aware.
	if time.Until(b.BookingDate) < CancelWindow {
		return nil, utils.NewError(utils.KindValidation,
			"bookings cannot be cancelled within 24 hours of the booking date")
	}

	if err := s.Repo.UpdateStatus(bookingID, models.BookingStatusCancelled); err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to cancel booking", err)
	}

	s.releaseCapacity(b)

	b.Status = models.BookingStatusCancelled
	s.Logger.Info("booking cancelled", zap.String("booking", b.ID))
	return b, nil
}

func (s *DefaultBookingService) releaseCapacity(b *models.Booking) {
	if !config.AppConfig.EnforceCapacity || b.BookingType != models.BookingTypeActivity {
		return
	}
	if err := s.Catalog.ReleaseActivityCapacity(b.ItemID, b.Quantity); err != nil {
		s.Logger.Error("failed to release activity capacity",
			zap.String("activity", b.ItemID), zap.Error(err))
	}
}
