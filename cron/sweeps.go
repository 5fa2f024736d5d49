package cron

import (
	"time"

	"tripmart/config"
	bookingRepo "tripmart/database/repository/booking"
	userRepo "tripmart/database/repository/user"
	"tripmart/models"
	"tripmart/services/notification"
	"tripmart/services/promo"
	"tripmart/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Sweeper owns the hourly background passes: birthday promo minting and
// reminder scheduling.
type Sweeper struct {
	Users         userRepo.UserRepository
	Bookings      bookingRepo.BookingRepository
	Promo         promo.PromoService
	Notifications notification.NotificationService
	Queue         *asynq.Client
	Logger        *zap.Logger
}

// NewQueueClient opens the asynq client used to enqueue reminder tasks.
func NewQueueClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
}

// Start runs one immediate pass, then repeats hourly until stop is closed.
func (s *Sweeper) Start(stop <-chan struct{}) {
	go func() {
		s.runOnce()
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.runOnce()
			case <-stop:
				return
			}
		}
	}()
}

func (s *Sweeper) runOnce() {
	s.sweepBirthdays()
	s.sweepReminders()
}

// sweepBirthdays mints a birthday code for every tourist born today. The
// promo service skips tourists who already hold an unexpired code, so the
// sweep is safe to repeat within the day.
func (s *Sweeper) sweepBirthdays() {
	now := time.Now().UTC()
	tourists, err := s.Users.TouristsBornOn(now.Month(), now.Day())
	if err != nil {
		s.Logger.Error("birthday sweep query failed", zap.Error(err))
		return
	}

	for _, t := range tourists {
		code, err := s.Promo.IssueBirthdayCode(t.ID)
		if err != nil {
			s.Logger.Error("birthday code issue failed",
				zap.String("tourist", t.ID), zap.Error(err))
			continue
		}
		if code == nil {
			continue // already holds an unexpired code
		}
		if err := s.Notifications.NotifyBirthdayPromo(t.ID, code.Code, code.DiscountPC); err != nil {
			s.Logger.Warn("birthday notification failed",
				zap.String("tourist", t.ID), zap.Error(err))
		}
	}
}

// sweepReminders claims each booking entering the reminder window and
// enqueues its task. Claiming flips notification_sent first, so a booking
// is never enqueued twice even across concurrent sweeps.
func (s *Sweeper) sweepReminders() {
	lead := time.Duration(config.AppConfig.ReminderLeadHours) * time.Hour
	until := time.Now().Add(lead)

	due, err := s.Bookings.DueForReminder(until)
	if err != nil {
		s.Logger.Error("reminder sweep query failed", zap.Error(err))
		return
	}

	for _, b := range due {
		claimed, err := s.Bookings.ClaimReminder(b.ID)
		if err != nil {
			s.Logger.Error("reminder claim failed",
				zap.String("booking", b.ID), zap.Error(err))
			continue
		}
		if !claimed {
			continue
		}

		fireAt := b.BookingDate.Add(-lead)
		if fireAt.Before(time.Now()) {
			fireAt = time.Now()
		}
		task, opts, err := tasks.NewReminderTask(models.ReminderPayload{
			BookingID:   b.ID,
			TouristID:   b.TouristID,
			ItemName:    b.ItemName,
			BookingDate: b.BookingDate.Format(time.RFC3339),
		}, fireAt)
		if err != nil {
			s.Logger.Error("reminder task build failed",
				zap.String("booking", b.ID), zap.Error(err))
			continue
		}
		if _, err := s.Queue.Enqueue(task, opts...); err != nil {
			s.Logger.Error("reminder enqueue failed",
				zap.String("booking", b.ID), zap.Error(err))
			continue
		}
		s.Logger.Info("reminder scheduled",
			zap.String("booking", b.ID), zap.Time("fire_at", fireAt))
	}
}
