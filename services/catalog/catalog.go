// Package catalog manages the bookable listings and products that the
// booking and order flows consume.
package catalog

import (
	"time"

	catalogRepo "tripmart/database/repository/catalog"
	"tripmart/models"
	"tripmart/services/notification"
	"tripmart/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogService manages listing and product lifecycles plus admin
// moderation.
type CatalogService interface {
	CreateActivity(ownerID string, a *models.Activity) (*models.Activity, error)
	ListActivities(ownerID string) ([]models.Activity, error)

	CreateItinerary(ownerID string, it *models.Itinerary) (*models.Itinerary, error)
	ListItineraries(ownerID string) ([]models.Itinerary, error)

	CreateHistoricalPlace(ownerID string, hp *models.HistoricalPlace) (*models.HistoricalPlace, error)
	ListHistoricalPlaces(ownerID string) ([]models.HistoricalPlace, error)

	CreateProduct(sellerID string, p *models.Product) (*models.Product, error)
	ListProducts(sellerID string) ([]models.Product, error)

	// Flag marks a listing inappropriate, blocking new bookings, and
	// notifies its owner.
	Flag(bookingType models.BookingType, id string) error
	Unflag(bookingType models.BookingType, id string) error
}

// DefaultCatalogService is the production CatalogService.
type DefaultCatalogService struct {
	Repo          catalogRepo.CatalogRepository
	Notifications notification.NotificationService
	Logger        *zap.Logger
}

func (s *DefaultCatalogService) CreateActivity(ownerID string, a *models.Activity) (*models.Activity, error) {
	if a.Name == "" {
		return nil, utils.NewError(utils.KindValidation, "name is required")
	}
	if a.Price < 0 {
		return nil, utils.NewError(utils.KindValidation, "price cannot be negative")
	}
	if a.Date.Before(time.Now()) {
		return nil, utils.NewError(utils.KindValidation, "activity date must be in the future")
	}
	if a.Capacity < 0 {
		return nil, utils.NewError(utils.KindValidation, "capacity cannot be negative")
	}

	a.ID = uuid.New().String()
	a.CreatedBy = ownerID
	a.BookedCount = 0
	a.Flagged = false
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	if err := s.Repo.CreateActivity(a); err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to create activity", err)
	}
	return a, nil
}

func (s *DefaultCatalogService) ListActivities(ownerID string) ([]models.Activity, error) {
	out, err := s.Repo.ListActivitiesByOwner(ownerID)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to list activities", err)
	}
	return out, nil
}

func (s *DefaultCatalogService) CreateItinerary(ownerID string, it *models.Itinerary) (*models.Itinerary, error) {
	if it.Title == "" {
		return nil, utils.NewError(utils.KindValidation, "title is required")
	}
	if it.Price < 0 {
		return nil, utils.NewError(utils.KindValidation, "price cannot be negative")
	}

	it.ID = uuid.New().String()
	it.CreatedBy = ownerID
	it.Flagged = false
	it.CreatedAt = time.Now()
	it.UpdatedAt = it.CreatedAt
	if err := s.Repo.CreateItinerary(it); err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to create itinerary", err)
	}
	return it, nil
}

func (s *DefaultCatalogService) ListItineraries(ownerID string) ([]models.Itinerary, error) {
	out, err := s.Repo.ListItinerariesByOwner(ownerID)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to list itineraries", err)
	}
	return out, nil
}

func (s *DefaultCatalogService) CreateHistoricalPlace(ownerID string, hp *models.HistoricalPlace) (*models.HistoricalPlace, error) {
	if hp.Name == "" {
		return nil, utils.NewError(utils.KindValidation, "name is required")
	}
	if hp.TicketPrice < 0 {
		return nil, utils.NewError(utils.KindValidation, "ticket price cannot be negative")
	}

	hp.ID = uuid.New().String()
	hp.CreatedBy = ownerID
	hp.Flagged = false
	hp.CreatedAt = time.Now()
	hp.UpdatedAt = hp.CreatedAt
	if err := s.Repo.CreateHistoricalPlace(hp); err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to create historical place", err)
	}
	return hp, nil
}

func (s *DefaultCatalogService) ListHistoricalPlaces(ownerID string) ([]models.HistoricalPlace, error) {
	out, err := s.Repo.ListHistoricalPlacesByOwner(ownerID)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to list historical places", err)
	}
	return out, nil
}

func (s *DefaultCatalogService) CreateProduct(sellerID string, p *models.Product) (*models.Product, error) {
	if p.Name == "" {
		return nil, utils.NewError(utils.KindValidation, "name is required")
	}
	if p.Price < 0 {
		return nil, utils.NewError(utils.KindValidation, "price cannot be negative")
	}
	if p.Stock < 0 {
		return nil, utils.NewError(utils.KindValidation, "stock cannot be negative")
	}

	p.ID = uuid.New().String()
	p.SellerID = sellerID
	p.Archived = false
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	if err := s.Repo.CreateProduct(p); err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to create product", err)
	}
	return p, nil
}

func (s *DefaultCatalogService) ListProducts(sellerID string) ([]models.Product, error) {
	out, err := s.Repo.ListProductsBySeller(sellerID)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to list products", err)
	}
	return out, nil
}

// Flag marks a listing inappropriate and notifies the owner. New bookings
// are refused while the flag is set.
func (s *DefaultCatalogService) Flag(bookingType models.BookingType, id string) error {
	item, err := s.Repo.ResolveBookable(bookingType, id)
	if err != nil {
		return utils.WrapError(utils.KindInternal, "listing lookup failed", err)
	}
	if item == nil {
		return utils.NewError(utils.KindNotFound, "listing not found")
	}

	ownerID, err := s.Repo.SetFlagged(bookingType, id, true)
	if err != nil {
		return utils.WrapError(utils.KindInternal, "failed to flag listing", err)
	}

	if err := s.Notifications.NotifyContentFlagged(ownerID, item.Name); err != nil {
		s.Logger.Warn("flag notification failed",
			zap.String("item", id), zap.Error(err))
	}
	return nil
}

func (s *DefaultCatalogService) Unflag(bookingType models.BookingType, id string) error {
	item, err := s.Repo.ResolveBookable(bookingType, id)
	if err != nil {
		return utils.WrapError(utils.KindInternal, "listing lookup failed", err)
	}
	if item == nil {
		return utils.NewError(utils.KindNotFound, "listing not found")
	}
	if _, err := s.Repo.SetFlagged(bookingType, id, false); err != nil {
		return utils.WrapError(utils.KindInternal, "failed to unflag listing", err)
	}
	return nil
}
