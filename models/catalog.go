package models

import "time"

// Activity is a single-occurrence event owned by an advertiser. Capacity is
// only enforced when the capacity policy toggle is on.
type Activity struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Date        time.Time `bson:"date" json:"date"`
	Price       float64   `bson:"price" json:"price"`
	Capacity    int       `bson:"capacity" json:"capacity"`
	BookedCount int       `bson:"booked_count" json:"bookedCount"`
	Flagged     bool      `bson:"flagged" json:"flagged"`
	CreatedBy   string    `bson:"created_by" json:"createdBy"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// Itinerary is a tour-guide-owned listing bookable on its available dates
// (date enforcement sits behind a policy toggle).
type Itinerary struct {
	ID             string      `bson:"id" json:"id"`
	Title          string      `bson:"title" json:"title"`
	AvailableDates []time.Time `bson:"available_dates" json:"availableDates"`
	Price          float64     `bson:"price" json:"price"`
	Flagged        bool        `bson:"flagged" json:"flagged"`
	CreatedBy      string      `bson:"created_by" json:"createdBy"`
	CreatedAt      time.Time   `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time   `bson:"updated_at" json:"updatedAt"`
}

// HistoricalPlace is a governor-owned site with no date restriction beyond
// "not in the past".
type HistoricalPlace struct {
	ID            string    `bson:"id" json:"id"`
	Name          string    `bson:"name" json:"name"`
	TicketPrice   float64   `bson:"ticket_price" json:"ticketPrice"`
	DailyCapacity int       `bson:"daily_capacity" json:"dailyCapacity"`
	Flagged       bool      `bson:"flagged" json:"flagged"`
	CreatedBy     string    `bson:"created_by" json:"createdBy"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updatedAt"`
}

// Product is a seller-owned stock item purchased through orders, not bookings.
type Product struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Price     float64   `bson:"price" json:"price"`
	Stock     int       `bson:"stock" json:"stock"`
	SellerID  string    `bson:"seller_id" json:"sellerId"`
	Archived  bool      `bson:"archived" json:"archived"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// BookableItem is the resolved view of a polymorphic booking target: just
// the fields the booking flow needs, regardless of source collection.
type BookableItem struct {
	ID        string
	Name      string
	Price     float64
	CreatedBy string
	Flagged   bool

	// Activity only.
	Date     time.Time
	Capacity int

	// Itinerary only.
	AvailableDates []time.Time
}
