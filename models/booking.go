package models

import "time"

// BookingType tags which catalog collection a booking's ItemID resolves
// against. The tag is the single source of truth for the polymorphic
// reference; the catalog repository owns the tag-to-collection table.
type BookingType string

const (
	BookingTypeActivity        BookingType = "activity"
	BookingTypeItinerary       BookingType = "itinerary"
	BookingTypeHistoricalPlace BookingType = "historical_place"
)

// BookingStatus enumerates the booking lifecycle.
type BookingStatus string

const (
	BookingStatusPending        BookingStatus = "pending"
	BookingStatusConfirmed      BookingStatus = "confirmed"
	BookingStatusCompleted      BookingStatus = "completed"
	BookingStatusCancelled      BookingStatus = "cancelled"
	BookingStatusAttended       BookingStatus = "attended"
	BookingStatusAccountDeleted BookingStatus = "account_deleted"
)

// Booking represents one reservation of a tourist against a bookable item.
type Booking struct {
	ID          string        `bson:"id" json:"id"`
	TouristID   string        `bson:"tourist_id" json:"touristId"`
	ItemID      string        `bson:"item_id" json:"itemId"`
	ItemName    string        `bson:"item_name" json:"itemName"`
	BookingType BookingType   `bson:"booking_type" json:"bookingType"`
	Quantity    int           `bson:"quantity" json:"quantity"`
	Status      BookingStatus `bson:"status" json:"status"`
	BookingDate time.Time     `bson:"booking_date" json:"bookingDate"`
	TotalPrice  float64       `bson:"total_price" json:"totalPrice"`

	// Rating is 0 until the tourist rates an attended booking.
	Rating float64 `bson:"rating" json:"rating"`
	Review string  `bson:"review,omitempty" json:"review,omitempty"`

	// NotificationSent guards the reminder sweep against re-sending.
	NotificationSent bool `bson:"notification_sent" json:"notificationSent"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// RatingSummary is the aggregate shape every rating query returns. An empty
// input set yields {0, 0}.
type RatingSummary struct {
	AverageRating float64 `bson:"averageRating" json:"averageRating"`
	TotalRatings  int64   `bson:"totalRatings" json:"totalRatings"`
}

// RatingEntry is one rated booking joined with the reviewer's username.
type RatingEntry struct {
	BookingID string    `bson:"id" json:"bookingId"`
	Username  string    `bson:"username" json:"username"`
	Rating    float64   `bson:"rating" json:"rating"`
	Review    string    `bson:"review,omitempty" json:"review,omitempty"`
	RatedAt   time.Time `bson:"updated_at" json:"ratedAt"`
}

// RatingPage is the paginated ratings listing, newest first.
type RatingPage struct {
	Summary RatingSummary `json:"summary"`
	Entries []RatingEntry `json:"entries"`
	Page    int           `json:"page"`
	PerPage int           `json:"perPage"`
}

// RatingDistribution buckets rating counts into the fixed keys 1-5.
type RatingDistribution map[int]int64

// ReminderPayload is the asynq task body for booking reminders.
type ReminderPayload struct {
	BookingID   string `json:"bookingId"`
	TouristID   string `json:"touristId"`
	ItemName    string `json:"itemName"`
	BookingDate string `json:"bookingDate"`
}
