// File: services/booking/rating.go
package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tripmart/models"
	"tripmart/utils"

	"go.uber.org/zap"
)

const summaryCacheTTL = 5 * time.Minute

func summaryCacheKey(bookingType models.BookingType, itemID string) string {
	return fmt.Sprintf("rating:%s:%s", bookingType, itemID)
}

// Rate writes a first rating on an attended booking, then recomputes and
// returns the booked entity's aggregate.
func (s *DefaultBookingService) Rate(touristID, bookingID string, rating float64, review string) (*models.RatingSummary, error) {
	if rating < 1 || rating > 5 {
		return nil, utils.NewError(utils.KindValidation, "rating must be between 1 and 5")
	}

	b, err := s.GetByID(touristID, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.BookingStatusAttended {
		return nil, utils.NewError(utils.KindValidation, "only attended bookings can be rated")
	}
	if b.Rating > 0 {
		return nil, utils.NewError(utils.KindValidation, "booking has already been rated")
	}

	ok, err := s.Repo.SetRating(bookingID, rating, review)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to save rating", err)
	}
	if !ok {
		// Lost the race with another rating attempt.
		return nil, utils.NewError(utils.KindValidation, "booking has already been rated")
	}

	s.invalidateSummary(b.BookingType, b.ItemID)
	return s.EntitySummary(b.BookingType, b.ItemID)
}

// UpdateRating changes an existing rating and returns the fresh aggregate.
func (s *DefaultBookingService) UpdateRating(touristID, bookingID string, rating float64, review string) (*models.RatingSummary, error) {
	if rating < 1 || rating > 5 {
		return nil, utils.NewError(utils.KindValidation, "rating must be between 1 and 5")
	}

	b, err := s.GetByID(touristID, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Rating == 0 {
		return nil, utils.NewError(utils.KindValidation, "booking has no rating to update")
	}

	ok, err := s.Repo.UpdateRating(bookingID, rating, review)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to update rating", err)
	}
	if !ok {
		return nil, utils.NewError(utils.KindValidation, "booking has no rating to update")
	}

	s.invalidateSummary(b.BookingType, b.ItemID)
	return s.EntitySummary(b.BookingType, b.ItemID)
}

// EntitySummary returns the cached aggregate, recomputing on a miss.
func (s *DefaultBookingService) EntitySummary(bookingType models.BookingType, itemID string) (*models.RatingSummary, error) {
	ctx := context.Background()
	key := summaryCacheKey(bookingType, itemID)

	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, key).Result(); err == nil {
			var summary models.RatingSummary
			if err := json.Unmarshal([]byte(cached), &summary); err == nil {
				return &summary, nil
			}
		}
	}

	summary, err := s.Repo.Summary(bookingType, itemID)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "rating aggregation failed", err)
	}

	if s.Cache != nil {
		if data, err := json.Marshal(summary); err == nil {
			if err := s.Cache.Set(ctx, key, data, summaryCacheTTL).Err(); err != nil {
				s.Logger.Warn("failed to cache rating summary", zap.Error(err))
			}
		}
	}
	return summary, nil
}

// EntityRatings returns one page of rating+review records, newest first.
func (s *DefaultBookingService) EntityRatings(bookingType models.BookingType, itemID string, page, perPage int) (*models.RatingPage, error) {
	result, err := s.Repo.Page(bookingType, itemID, page, perPage)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "rating listing failed", err)
	}
	return result, nil
}

// GuideSummary aggregates ratings across all of a guide's itineraries.
func (s *DefaultBookingService) GuideSummary(guideID string) (*models.RatingSummary, error) {
	summary, err := s.Repo.GuideSummary(guideID)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "guide rating aggregation failed", err)
	}
	return summary, nil
}

// GuideDistribution buckets a guide's rating counts into the keys 1-5.
func (s *DefaultBookingService) GuideDistribution(guideID string) (models.RatingDistribution, error) {
	dist, err := s.Repo.GuideDistribution(guideID)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "guide rating distribution failed", err)
	}
	return dist, nil
}

func (s *DefaultBookingService) invalidateSummary(bookingType models.BookingType, itemID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(context.Background(), summaryCacheKey(bookingType, itemID)).Err(); err != nil {
		s.Logger.Warn("failed to invalidate rating cache", zap.Error(err))
	}
}
