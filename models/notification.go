package models

import "time"

// Notification kinds; each maps to one state-transition trigger.
const (
	NotificationTypeFlagged       = "content_flagged"
	NotificationTypeStockOut      = "stock_out"
	NotificationTypeBirthdayPromo = "birthday_promo"
	NotificationTypeReminder      = "booking_reminder"
)

// Notification priorities.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

// Notification is an in-app notification record; email is mirrored through
// the mailer for the same triggers.
type Notification struct {
	ID        string    `bson:"id" json:"id"`
	Recipient string    `bson:"recipient" json:"recipient"`
	UserType  string    `bson:"user_type" json:"userType"`
	Type      string    `bson:"type" json:"type"`
	Title     string    `bson:"title" json:"title"`
	Message   string    `bson:"message" json:"message"`
	Priority  string    `bson:"priority" json:"priority"`
	Read      bool      `bson:"read" json:"read"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
