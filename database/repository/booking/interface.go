package bookingRepo

import (
	"time"

	"tripmart/models"
)

// BookingRepository persists bookings and owns the rating and sales
// aggregation pipelines that read them.
type BookingRepository interface {
	Create(b *models.Booking) error
	GetByID(id string) (*models.Booking, error)
	ListByTourist(touristID string) ([]models.Booking, error)

	UpdateStatus(id string, status models.BookingStatus) error

	// SetRating writes the first rating; the filter requires status=attended
	// and rating still zero. Returns false when the guard refused the write.
	SetRating(id string, rating float64, review string) (bool, error)
	// UpdateRating changes an existing rating; the filter requires a
	// non-zero prior rating.
	UpdateRating(id string, rating float64, review string) (bool, error)

	// Rating aggregation.
	Summary(bookingType models.BookingType, itemID string) (*models.RatingSummary, error)
	GuideSummary(guideID string) (*models.RatingSummary, error)
	Page(bookingType models.BookingType, itemID string, page, perPage int) (*models.RatingPage, error)
	GuideDistribution(guideID string) (models.RatingDistribution, error)

	// Sales aggregation over monetarily realized bookings.
	SalesForItems(bookingType models.BookingType, itemIDs []string) ([]models.SalesLineItem, error)
	SalesByItemName(bookingType models.BookingType, itemIDs []string) ([]models.ItemSales, error)
	AllSales() ([]models.SalesLineItem, error)

	// Reminder sweep support.
	DueForReminder(until time.Time) ([]models.Booking, error)
	// ClaimReminder flips notification_sent; returns false when another
	// sweep already claimed it.
	ClaimReminder(id string) (bool, error)
}
