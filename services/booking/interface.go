package booking

import "tripmart/models"

// CreateRequest is the inbound booking request after auth.
type CreateRequest struct {
	TouristID   string             `json:"-"`
	ItemID      string             `json:"itemId"`
	BookingType models.BookingType `json:"bookingType"`
	Date        string             `json:"date"` // "2006-01-02"
	Quantity    int                `json:"quantity"`
}

// BookingService owns the booking lifecycle and the rating operations.
type BookingService interface {
	Create(req CreateRequest) (*models.Booking, error)
	GetByID(touristID, bookingID string) (*models.Booking, error)
	ListByTourist(touristID string) ([]models.Booking, error)

	// UpdateStatus applies a lifecycle transition, rejecting anything the
	// transition table does not allow.
	UpdateStatus(bookingID string, to models.BookingStatus) (*models.Booking, error)

	// Cancel refuses within 24 hours of the booking date.
	Cancel(touristID, bookingID string) (*models.Booking, error)

	// Rate writes a first rating on an attended booking and returns the
	// recomputed aggregate for the booked entity.
	Rate(touristID, bookingID string, rating float64, review string) (*models.RatingSummary, error)
	// UpdateRating changes an existing rating.
	UpdateRating(touristID, bookingID string, rating float64, review string) (*models.RatingSummary, error)

	EntitySummary(bookingType models.BookingType, itemID string) (*models.RatingSummary, error)
	EntityRatings(bookingType models.BookingType, itemID string, page, perPage int) (*models.RatingPage, error)
	GuideSummary(guideID string) (*models.RatingSummary, error)
	GuideDistribution(guideID string) (models.RatingDistribution, error)
}
