package notification

import "tripmart/models"

// Mailer is the email side-channel; the SMTP dialer implements it in
// production and tests swap in a recorder.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// NotificationService persists in-app notifications and mirrors system
// triggers to email.
type NotificationService interface {
	ListForUser(userID string) ([]models.Notification, error)
	MarkRead(userID, notificationID string) error

	// Trigger entry points. Each writes the in-app record and, where the
	// recipient has an email address, sends the matching mail.
	NotifyContentFlagged(ownerID, itemName string) error
	NotifyStockOut(sellerID, productName string) error
	NotifyBirthdayPromo(touristID, code string, discountPercent float64) error
	NotifyBookingReminder(touristID, itemName string) error
}
