package catalogRepo

import "tripmart/models"

// CatalogRepository persists the bookable entities and products, and owns
// the booking-type tag to collection resolution.
type CatalogRepository interface {
	CreateActivity(a *models.Activity) error
	GetActivity(id string) (*models.Activity, error)
	ListActivitiesByOwner(ownerID string) ([]models.Activity, error)

	CreateItinerary(it *models.Itinerary) error
	GetItinerary(id string) (*models.Itinerary, error)
	ListItinerariesByOwner(ownerID string) ([]models.Itinerary, error)
	ItineraryIDsByOwner(ownerID string) ([]string, error)

	CreateHistoricalPlace(hp *models.HistoricalPlace) error
	GetHistoricalPlace(id string) (*models.HistoricalPlace, error)
	ListHistoricalPlacesByOwner(ownerID string) ([]models.HistoricalPlace, error)

	// ItemIDsByOwner returns the IDs of all items of the given booking type
	// created by ownerID.
	ItemIDsByOwner(bookingType models.BookingType, ownerID string) ([]string, error)

	// ResolveBookable looks up the booking target by its type tag and ID and
	// returns the unified view the booking flow needs, or nil when the item
	// does not exist.
	ResolveBookable(bookingType models.BookingType, id string) (*models.BookableItem, error)

	// SetFlagged toggles moderation state and returns the owner's user ID so
	// the caller can notify them.
	SetFlagged(bookingType models.BookingType, id string, flagged bool) (ownerID string, err error)

	// TakeActivityCapacity reserves qty seats; it only matches while
	// bookedCount+qty stays within capacity. Returns false when full.
	TakeActivityCapacity(id string, qty int) (bool, error)
	// ReleaseActivityCapacity returns qty seats on cancellation.
	ReleaseActivityCapacity(id string, qty int) error

	CreateProduct(p *models.Product) error
	GetProduct(id string) (*models.Product, error)
	ListProductsBySeller(sellerID string) ([]models.Product, error)

	// DecrementStock takes qty units off the shelf; it only matches while
	// stock covers qty. Returns the remaining stock, or -1 when refused.
	DecrementStock(id string, qty int) (remaining int, err error)
	IncrementStock(id string, qty int) error
}
