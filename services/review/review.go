// Package review implements the generalized review entity: one review per
// (tourist, type, entity), accepted only with proof of consumption.
package review

import (
	"strings"

	bookingRepo "tripmart/database/repository/booking"
	catalogRepo "tripmart/database/repository/catalog"
	orderRepo "tripmart/database/repository/order"
	reviewRepo "tripmart/database/repository/review"
	"tripmart/models"
	"tripmart/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReviewService manages generalized reviews.
type ReviewService interface {
	Create(touristID string, reviewType models.ReviewType, entityID string, rating float64, comment string) (*models.Review, error)
	Update(touristID, reviewID string, rating float64, comment string) (*models.Review, error)
	Delete(touristID, reviewID string) error
	ListByEntity(reviewType models.ReviewType, entityID string) ([]models.Review, *models.RatingSummary, error)
}

// DefaultReviewService is the production ReviewService.
type DefaultReviewService struct {
	Repo     reviewRepo.ReviewRepository
	Bookings bookingRepo.BookingRepository
	Orders   orderRepo.OrderRepository
	Catalog  catalogRepo.CatalogRepository
	Logger   *zap.Logger
}

// Create validates eligibility, then inserts inside a transaction. The
// unique index backs up the one-review-per-entity rule.
func (s *DefaultReviewService) Create(touristID string, reviewType models.ReviewType, entityID string, rating float64, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, utils.NewError(utils.KindValidation, "rating must be between 1 and 5")
	}
	switch reviewType {
	case models.ReviewTypeTourGuide, models.ReviewTypeEvent, models.ReviewTypeProduct:
	default:
		return nil, utils.NewError(utils.KindValidation, "unknown review type")
	}

	eligible, err := s.isEligible(touristID, reviewType, entityID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, utils.NewError(utils.KindForbidden, "reviews require a completed booking or order for this entity")
	}

	rev := &models.Review{
		ID:         uuid.New().String(),
		TouristID:  touristID,
		ReviewType: reviewType,
		EntityID:   entityID,
		Rating:     rating,
		Comment:    comment,
	}
	if err := s.Repo.Create(rev); err != nil {
		if strings.Contains(err.Error(), "duplicate") {
			return nil, utils.NewError(utils.KindConflict, "you have already reviewed this entity")
		}
		return nil, utils.WrapError(utils.KindInternal, "failed to create review", err)
	}

	s.Logger.Info("review created",
		zap.String("tourist", touristID),
		zap.String("type", string(reviewType)),
		zap.String("entity", entityID))
	return rev, nil
}

// Update rewrites the tourist's own review.
func (s *DefaultReviewService) Update(touristID, reviewID string, rating float64, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, utils.NewError(utils.KindValidation, "rating must be between 1 and 5")
	}

	rev, err := s.Repo.GetByID(reviewID)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to fetch review", err)
	}
	if rev == nil || rev.TouristID != touristID {
		return nil, utils.NewError(utils.KindNotFound, "review not found")
	}

	if err := s.Repo.Update(reviewID, touristID, rating, comment); err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to update review", err)
	}
	rev.Rating = rating
	rev.Comment = comment
	return rev, nil
}

// Delete removes the tourist's own review.
func (s *DefaultReviewService) Delete(touristID, reviewID string) error {
	rev, err := s.Repo.GetByID(reviewID)
	if err != nil {
		return utils.WrapError(utils.KindInternal, "failed to fetch review", err)
	}
	if rev == nil || rev.TouristID != touristID {
		return utils.NewError(utils.KindNotFound, "review not found")
	}
	if err := s.Repo.Delete(reviewID, touristID); err != nil {
		return utils.WrapError(utils.KindInternal, "failed to delete review", err)
	}
	return nil
}

// ListByEntity returns an entity's reviews with their aggregate.
func (s *DefaultReviewService) ListByEntity(reviewType models.ReviewType, entityID string) ([]models.Review, *models.RatingSummary, error) {
	reviews, err := s.Repo.ListByEntity(reviewType, entityID)
	if err != nil {
		return nil, nil, utils.WrapError(utils.KindInternal, "failed to list reviews", err)
	}
	summary, err := s.Repo.Summary(reviewType, entityID)
	if err != nil {
		return nil, nil, utils.WrapError(utils.KindInternal, "review aggregation failed", err)
	}
	return reviews, summary, nil
}

// isEligible checks proof of consumption: an attended booking for guide and
// event reviews, a delivered order for product reviews.
func (s *DefaultReviewService) isEligible(touristID string, reviewType models.ReviewType, entityID string) (bool, error) {
	switch reviewType {
	case models.ReviewTypeProduct:
		orders, err := s.Orders.ListByTourist(touristID)
		if err != nil {
			return false, utils.WrapError(utils.KindInternal, "eligibility check failed", err)
		}
		for _, o := range orders {
			if o.Status != models.OrderStatusDelivered {
				continue
			}
			for _, item := range o.Items {
				if item.ProductID == entityID {
					return true, nil
				}
			}
		}
		return false, nil

	case models.ReviewTypeTourGuide:
		// Any attended itinerary authored by the guide counts.
		itineraryIDs, err := s.Catalog.ItemIDsByOwner(models.BookingTypeItinerary, entityID)
		if err != nil {
			return false, utils.WrapError(utils.KindInternal, "eligibility check failed", err)
		}
		owned := make(map[string]struct{}, len(itineraryIDs))
		for _, id := range itineraryIDs {
			owned[id] = struct{}{}
		}
		bookings, err := s.Bookings.ListByTourist(touristID)
		if err != nil {
			return false, utils.WrapError(utils.KindInternal, "eligibility check failed", err)
		}
		for _, b := range bookings {
			if b.Status != models.BookingStatusAttended {
				continue
			}
			if _, ok := owned[b.ItemID]; ok {
				return true, nil
			}
		}
		return false, nil

	default:
		bookings, err := s.Bookings.ListByTourist(touristID)
		if err != nil {
			return false, utils.WrapError(utils.KindInternal, "eligibility check failed", err)
		}
		for _, b := range bookings {
			if b.Status == models.BookingStatusAttended && b.ItemID == entityID {
				return true, nil
			}
		}
		return false, nil
	}
}
