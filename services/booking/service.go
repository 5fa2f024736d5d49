package booking

import (
	"time"

	"tripmart/config"
	bookingRepo "tripmart/database/repository/booking"
	catalogRepo "tripmart/database/repository/catalog"
	"tripmart/models"
	"tripmart/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookingService is the production BookingService.
type DefaultBookingService struct {
	Repo    bookingRepo.BookingRepository
	Catalog catalogRepo.CatalogRepository
	Cache   *redis.Client
	Logger  *zap.Logger
}

// Create validates the item and the requested date, then inserts a confirmed
// booking. The current flow skips the pending state on purpose.
func (s *DefaultBookingService) Create(req CreateRequest) (*models.Booking, error) {
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	requested, err := parseDay(req.Date)
	if err != nil {
		return nil, utils.WrapError(utils.KindValidation, "invalid booking date", err)
	}

	item, err := s.Catalog.ResolveBookable(req.BookingType, req.ItemID)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to resolve booking target", err)
	}
	if item == nil {
		return nil, utils.NewError(utils.KindNotFound, "booked item not found")
	}
	if item.Flagged {
		return nil, utils.NewError(utils.KindValidation, "this listing is under moderation and cannot be booked")
	}

	if err := validateDate(item, req.BookingType, requested, time.Now()); err != nil {
		return nil, err
	}

	if config.AppConfig.EnforceCapacity && req.BookingType == models.BookingTypeActivity {
		ok, err := s.Catalog.TakeActivityCapacity(req.ItemID, req.Quantity)
		if err != nil {
			return nil, utils.WrapError(utils.KindInternal, "failed to reserve capacity", err)
		}
		if !ok {
			return nil, utils.NewError(utils.KindConflict, "activity is fully booked")
		}
	}

	b := &models.Booking{
		ID:          uuid.New().String(),
		TouristID:   req.TouristID,
		ItemID:      item.ID,
		ItemName:    item.Name,
		BookingType: req.BookingType,
		Quantity:    req.Quantity,
		Status:      models.BookingStatusConfirmed,
		BookingDate: requested,
		TotalPrice:  item.Price * float64(req.Quantity),
	}

	if err := s.Repo.Create(b); err != nil {
		// Give the seat back rather than leaking it.
		if config.AppConfig.EnforceCapacity && req.BookingType == models.BookingTypeActivity {
			if relErr := s.Catalog.ReleaseActivityCapacity(req.ItemID, req.Quantity); relErr != nil {
				s.Logger.Error("failed to release capacity after insert failure",
					zap.String("activity", req.ItemID), zap.Error(relErr))
			}
		}
		return nil, utils.WrapError(utils.KindInternal, "failed to create booking", err)
	}

	s.Logger.Info("booking created",
		zap.String("booking", b.ID),
		zap.String("type", string(b.BookingType)),
		zap.String("item", b.ItemID))
	return b, nil
}

// GetByID returns one of the tourist's own bookings.
func (s *DefaultBookingService) GetByID(touristID, bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to fetch booking", err)
	}
	if b == nil || b.TouristID != touristID {
		return nil, utils.NewError(utils.KindNotFound, "booking not found")
	}
	return b, nil
}

// ListByTourist returns all of a tourist's bookings.
func (s *DefaultBookingService) ListByTourist(touristID string) ([]models.Booking, error) {
	bookings, err := s.Repo.ListByTourist(touristID)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to list bookings", err)
	}
	return bookings, nil
}
