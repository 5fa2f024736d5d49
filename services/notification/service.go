// Package notification delivers in-app notifications with an email mirror
// for every system trigger.
package notification

import (
	"fmt"
	"time"

	notificationRepo "tripmart/database/repository/notification"
	userRepo "tripmart/database/repository/user"
	"tripmart/models"
	"tripmart/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultNotificationService is the production NotificationService.
type DefaultNotificationService struct {
	Repo   notificationRepo.NotificationRepository
	Users  userRepo.UserRepository
	Mailer Mailer
	Logger *zap.Logger
}

func (s *DefaultNotificationService) ListForUser(userID string) ([]models.Notification, error) {
	out, err := s.Repo.ListByRecipient(userID)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to list notifications", err)
	}
	return out, nil
}

func (s *DefaultNotificationService) MarkRead(userID, notificationID string) error {
	if err := s.Repo.MarkRead(notificationID, userID); err != nil {
		return utils.WrapError(utils.KindInternal, "failed to mark notification read", err)
	}
	return nil
}

// NotifyContentFlagged tells an advertiser or guide that an admin flagged
// their listing as inappropriate.
func (s *DefaultNotificationService) NotifyContentFlagged(ownerID, itemName string) error {
	return s.deliver(ownerID,
		models.NotificationTypeFlagged,
		models.PriorityHigh,
		"Listing flagged",
		fmt.Sprintf("Your listing %q was flagged as inappropriate and is no longer bookable.", itemName),
	)
}

// NotifyStockOut tells a seller a product just hit zero stock.
func (s *DefaultNotificationService) NotifyStockOut(sellerID, productName string) error {
	return s.deliver(sellerID,
		models.NotificationTypeStockOut,
		models.PriorityHigh,
		"Product out of stock",
		fmt.Sprintf("Your product %q is out of stock.", productName),
	)
}

// NotifyBirthdayPromo delivers a freshly minted birthday code.
func (s *DefaultNotificationService) NotifyBirthdayPromo(touristID, code string, discountPercent float64) error {
	return s.deliver(touristID,
		models.NotificationTypeBirthdayPromo,
		models.PriorityNormal,
		"Happy birthday!",
		fmt.Sprintf("Enjoy %.0f%% off your next purchase with code %s.", discountPercent, code),
	)
}

// NotifyBookingReminder fires the day-before reminder for an upcoming booking.
func (s *DefaultNotificationService) NotifyBookingReminder(touristID, itemName string) error {
	return s.deliver(touristID,
		models.NotificationTypeReminder,
		models.PriorityNormal,
		"Upcoming booking",
		fmt.Sprintf("Reminder: your booking for %q is coming up soon.", itemName),
	)
}

// deliver writes the in-app record, then mirrors it to email. A mail failure
// is logged but never fails the trigger; the in-app record already landed.
func (s *DefaultNotificationService) deliver(userID, notifType, priority, title, message string) error {
	u, err := s.Users.GetByID(userID)
	if err != nil {
		return utils.WrapError(utils.KindInternal, "failed to resolve notification recipient", err)
	}
	if u == nil {
		return utils.NewError(utils.KindNotFound, "recipient not found")
	}

	n := &models.Notification{
		ID:        uuid.New().String(),
		Recipient: u.ID,
		UserType:  u.Role,
		Type:      notifType,
		Title:     title,
		Message:   message,
		Priority:  priority,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.Insert(n); err != nil {
		return utils.WrapError(utils.KindInternal, "failed to store notification", err)
	}

	if u.Email != "" {
		if err := s.Mailer.Send(u.Email, title, renderEmail(title, message)); err != nil {
			s.Logger.Warn("notification email failed",
				zap.String("recipient", u.ID),
				zap.String("type", notifType),
				zap.Error(err))
		}
	}
	return nil
}

func renderEmail(title, message string) string {
	return fmt.Sprintf("<h2>%s</h2><p>%s</p>", title, message)
}
