package review

import (
	"errors"
	"testing"
	"time"

	"tripmart/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeReviewRepo struct {
	reviews map[string]*models.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[string]*models.Review)}
}

func (f *fakeReviewRepo) Create(rev *models.Review) error {
	for _, existing := range f.reviews {
		if existing.TouristID == rev.TouristID &&
			existing.ReviewType == rev.ReviewType &&
			existing.EntityID == rev.EntityID {
			return errors.New("duplicate key error")
		}
	}
	cp := *rev
	f.reviews[rev.ID] = &cp
	return nil
}

func (f *fakeReviewRepo) Update(id, touristID string, rating float64, comment string) error {
	if rev, ok := f.reviews[id]; ok && rev.TouristID == touristID {
		rev.Rating = rating
		rev.Comment = comment
	}
	return nil
}

func (f *fakeReviewRepo) Delete(id, touristID string) error {
	if rev, ok := f.reviews[id]; ok && rev.TouristID == touristID {
		delete(f.reviews, id)
	}
	return nil
}

func (f *fakeReviewRepo) GetByID(id string) (*models.Review, error) {
	rev, ok := f.reviews[id]
	if !ok {
		return nil, nil
	}
	cp := *rev
	return &cp, nil
}

func (f *fakeReviewRepo) ListByEntity(reviewType models.ReviewType, entityID string) ([]models.Review, error) {
	var out []models.Review
	for _, rev := range f.reviews {
		if rev.ReviewType == reviewType && rev.EntityID == entityID {
			out = append(out, *rev)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) Summary(reviewType models.ReviewType, entityID string) (*models.RatingSummary, error) {
	var sum float64
	var count int64
	for _, rev := range f.reviews {
		if rev.ReviewType == reviewType && rev.EntityID == entityID {
			sum += rev.Rating
			count++
		}
	}
	if count == 0 {
		return &models.RatingSummary{}, nil
	}
	return &models.RatingSummary{AverageRating: sum / float64(count), TotalRatings: count}, nil
}

// fakeBookings serves ListByTourist only; the rest of the interface is inert.
type fakeBookings struct {
	bookings []models.Booking
}

func (f *fakeBookings) Create(*models.Booking) error            { return nil }
func (f *fakeBookings) GetByID(string) (*models.Booking, error) { return nil, nil }
func (f *fakeBookings) ListByTourist(touristID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.TouristID == touristID {
			out = append(out, b)
		}
	}
	return out, nil
}
func (f *fakeBookings) UpdateStatus(string, models.BookingStatus) error     { return nil }
func (f *fakeBookings) SetRating(string, float64, string) (bool, error)     { return false, nil }
func (f *fakeBookings) UpdateRating(string, float64, string) (bool, error)  { return false, nil }
func (f *fakeBookings) Summary(models.BookingType, string) (*models.RatingSummary, error) {
	return &models.RatingSummary{}, nil
}
func (f *fakeBookings) GuideSummary(string) (*models.RatingSummary, error) {
	return &models.RatingSummary{}, nil
}
func (f *fakeBookings) Page(models.BookingType, string, int, int) (*models.RatingPage, error) {
	return &models.RatingPage{}, nil
}
func (f *fakeBookings) GuideDistribution(string) (models.RatingDistribution, error) {
	return nil, nil
}
func (f *fakeBookings) SalesForItems(models.BookingType, []string) ([]models.SalesLineItem, error) {
	return nil, nil
}
func (f *fakeBookings) SalesByItemName(models.BookingType, []string) ([]models.ItemSales, error) {
	return nil, nil
}
func (f *fakeBookings) AllSales() ([]models.SalesLineItem, error)      { return nil, nil }
func (f *fakeBookings) DueForReminder(time.Time) ([]models.Booking, error) {
	return nil, nil
}
func (f *fakeBookings) ClaimReminder(string) (bool, error) { return false, nil }

type fakeOrders struct {
	orders []models.Order
}

func (f *fakeOrders) Create(*models.Order) error            { return nil }
func (f *fakeOrders) GetByID(string) (*models.Order, error) { return nil, nil }
func (f *fakeOrders) ListByTourist(touristID string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.TouristID == touristID {
			out = append(out, o)
		}
	}
	return out, nil
}
func (f *fakeOrders) UpdateStatus(string, models.OrderStatus) error { return nil }
func (f *fakeOrders) CancelWithRefund(string) (float64, error)      { return 0, nil }
func (f *fakeOrders) SellerSales(string) ([]models.SalesLineItem, error) {
	return nil, nil
}
func (f *fakeOrders) SellerSalesByItemName(string) ([]models.ItemSales, error) {
	return nil, nil
}
func (f *fakeOrders) AllSales() ([]models.SalesLineItem, error) { return nil, nil }

type fakeGuideCatalog struct {
	guideItineraries map[string][]string
}

func (f *fakeGuideCatalog) CreateActivity(*models.Activity) error        { return nil }
func (f *fakeGuideCatalog) GetActivity(string) (*models.Activity, error) { return nil, nil }
func (f *fakeGuideCatalog) ListActivitiesByOwner(string) ([]models.Activity, error) {
	return nil, nil
}
func (f *fakeGuideCatalog) CreateItinerary(*models.Itinerary) error        { return nil }
func (f *fakeGuideCatalog) GetItinerary(string) (*models.Itinerary, error) { return nil, nil }
func (f *fakeGuideCatalog) ListItinerariesByOwner(string) ([]models.Itinerary, error) {
	return nil, nil
}
func (f *fakeGuideCatalog) ItineraryIDsByOwner(owner string) ([]string, error) {
	return f.guideItineraries[owner], nil
}
func (f *fakeGuideCatalog) CreateHistoricalPlace(*models.HistoricalPlace) error { return nil }
func (f *fakeGuideCatalog) GetHistoricalPlace(string) (*models.HistoricalPlace, error) {
	return nil, nil
}
func (f *fakeGuideCatalog) ListHistoricalPlacesByOwner(string) ([]models.HistoricalPlace, error) {
	return nil, nil
}
func (f *fakeGuideCatalog) ItemIDsByOwner(_ models.BookingType, owner string) ([]string, error) {
	return f.guideItineraries[owner], nil
}
func (f *fakeGuideCatalog) ResolveBookable(models.BookingType, string) (*models.BookableItem, error) {
	return nil, nil
}
func (f *fakeGuideCatalog) SetFlagged(models.BookingType, string, bool) (string, error) {
	return "", nil
}
func (f *fakeGuideCatalog) TakeActivityCapacity(string, int) (bool, error) { return true, nil }
func (f *fakeGuideCatalog) ReleaseActivityCapacity(string, int) error      { return nil }
func (f *fakeGuideCatalog) CreateProduct(*models.Product) error            { return nil }
func (f *fakeGuideCatalog) GetProduct(string) (*models.Product, error)     { return nil, nil }
func (f *fakeGuideCatalog) ListProductsBySeller(string) ([]models.Product, error) {
	return nil, nil
}
func (f *fakeGuideCatalog) DecrementStock(string, int) (int, error) { return 0, nil }
func (f *fakeGuideCatalog) IncrementStock(string, int) error        { return nil }

type reviewFixture struct {
	svc      *DefaultReviewService
	repo     *fakeReviewRepo
	bookings *fakeBookings
	orders   *fakeOrders
	catalog  *fakeGuideCatalog
}

func newReviewFixture() *reviewFixture {
	repo := newFakeReviewRepo()
	bookings := &fakeBookings{}
	orders := &fakeOrders{}
	cat := &fakeGuideCatalog{guideItineraries: map[string][]string{}}
	return &reviewFixture{
		svc: &DefaultReviewService{
			Repo:     repo,
			Bookings: bookings,
			Orders:   orders,
			Catalog:  cat,
			Logger:   zap.NewNop(),
		},
		repo:     repo,
		bookings: bookings,
		orders:   orders,
		catalog:  cat,
	}
}

func TestCreateEventReviewRequiresAttendedBooking(t *testing.T) {
	fx := newReviewFixture()
	fx.bookings.bookings = []models.Booking{
		{TouristID: "t-1", ItemID: "act-1", Status: models.BookingStatusConfirmed},
	}

	_, err := fx.svc.Create("t-1", models.ReviewTypeEvent, "act-1", 4, "fun")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "completed booking or order")
}

func TestCreateEventReviewWithAttendedBooking(t *testing.T) {
	fx := newReviewFixture()
	fx.bookings.bookings = []models.Booking{
		{TouristID: "t-1", ItemID: "act-1", Status: models.BookingStatusAttended},
	}

	rev, err := fx.svc.Create("t-1", models.ReviewTypeEvent, "act-1", 4, "fun")
	require.NoError(t, err)
	assert.Equal(t, models.ReviewTypeEvent, rev.ReviewType)
	assert.Equal(t, "act-1", rev.EntityID)
}

func TestCreateGuideReviewFollowsAuthorship(t *testing.T) {
	fx := newReviewFixture()
	fx.catalog.guideItineraries["guide-1"] = []string{"it-1", "it-2"}
	fx.bookings.bookings = []models.Booking{
		{TouristID: "t-1", ItemID: "it-2", BookingType: models.BookingTypeItinerary,
			Status: models.BookingStatusAttended},
	}

	_, err := fx.svc.Create("t-1", models.ReviewTypeTourGuide, "guide-1", 5, "great")
	require.NoError(t, err)

	// A different guide with no attended itineraries is refused.
	_, err = fx.svc.Create("t-1", models.ReviewTypeTourGuide, "guide-2", 5, "")
	require.Error(t, err)
}

func TestCreateProductReviewRequiresDeliveredOrder(t *testing.T) {
	fx := newReviewFixture()
	fx.orders.orders = []models.Order{
		{TouristID: "t-1", Status: models.OrderStatusPaid,
			Items: []models.OrderItem{{ProductID: "p-1"}}},
	}

	_, err := fx.svc.Create("t-1", models.ReviewTypeProduct, "p-1", 3, "")
	require.Error(t, err)

	fx.orders.orders[0].Status = models.OrderStatusDelivered
	rev, err := fx.svc.Create("t-1", models.ReviewTypeProduct, "p-1", 3, "decent")
	require.NoError(t, err)
	assert.Equal(t, 3.0, rev.Rating)
}

func TestCreateDuplicateReviewConflicts(t *testing.T) {
	fx := newReviewFixture()
	fx.bookings.bookings = []models.Booking{
		{TouristID: "t-1", ItemID: "act-1", Status: models.BookingStatusAttended},
	}

	_, err := fx.svc.Create("t-1", models.ReviewTypeEvent, "act-1", 4, "")
	require.NoError(t, err)

	_, err = fx.svc.Create("t-1", models.ReviewTypeEvent, "act-1", 5, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already reviewed")
}

func TestCreateReviewRatingRange(t *testing.T) {
	fx := newReviewFixture()
	_, err := fx.svc.Create("t-1", models.ReviewTypeEvent, "act-1", 6, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "between 1 and 5")
}

func TestUpdateAndDeleteScopedToOwner(t *testing.T) {
	fx := newReviewFixture()
	fx.repo.reviews["r-1"] = &models.Review{
		ID: "r-1", TouristID: "t-1", ReviewType: models.ReviewTypeEvent,
		EntityID: "act-1", Rating: 2,
	}

	_, err := fx.svc.Update("t-2", "r-1", 4, "")
	require.Error(t, err)

	rev, err := fx.svc.Update("t-1", "r-1", 4, "better")
	require.NoError(t, err)
	assert.Equal(t, 4.0, rev.Rating)

	require.Error(t, fx.svc.Delete("t-2", "r-1"))
	require.NoError(t, fx.svc.Delete("t-1", "r-1"))
	assert.Empty(t, fx.repo.reviews)
}

func TestListByEntityReturnsSummary(t *testing.T) {
	fx := newReviewFixture()
	fx.repo.reviews["r-1"] = &models.Review{
		ID: "r-1", TouristID: "t-1", ReviewType: models.ReviewTypeProduct,
		EntityID: "p-1", Rating: 4,
	}
	fx.repo.reviews["r-2"] = &models.Review{
		ID: "r-2", TouristID: "t-2", ReviewType: models.ReviewTypeProduct,
		EntityID: "p-1", Rating: 2,
	}

	reviews, summary, err := fx.svc.ListByEntity(models.ReviewTypeProduct, "p-1")
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
	assert.Equal(t, 3.0, summary.AverageRating)
	assert.Equal(t, int64(2), summary.TotalRatings)
}
