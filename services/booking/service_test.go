package booking

import (
	"testing"
	"time"

	"tripmart/config"
	"tripmart/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeBookingRepo is an in-memory BookingRepository.
type fakeBookingRepo struct {
	bookings map[string]*models.Booking
	summary  models.RatingSummary
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (f *fakeBookingRepo) Create(b *models.Booking) error {
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) ListByTourist(touristID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.TouristID == touristID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(id string, status models.BookingStatus) error {
	if b, ok := f.bookings[id]; ok {
		b.Status = status
	}
	return nil
}

func (f *fakeBookingRepo) SetRating(id string, rating float64, review string) (bool, error) {
	b, ok := f.bookings[id]
	if !ok || b.Status != models.BookingStatusAttended || b.Rating != 0 {
		return false, nil
	}
	b.Rating = rating
	b.Review = review
	return true, nil
}

func (f *fakeBookingRepo) UpdateRating(id string, rating float64, review string) (bool, error) {
	b, ok := f.bookings[id]
	if !ok || b.Rating == 0 {
		return false, nil
	}
	b.Rating = rating
	b.Review = review
	return true, nil
}

func (f *fakeBookingRepo) Summary(models.BookingType, string) (*models.RatingSummary, error) {
	cp := f.summary
	return &cp, nil
}

func (f *fakeBookingRepo) GuideSummary(string) (*models.RatingSummary, error) {
	cp := f.summary
	return &cp, nil
}

func (f *fakeBookingRepo) Page(models.BookingType, string, int, int) (*models.RatingPage, error) {
	return &models.RatingPage{Summary: f.summary}, nil
}

func (f *fakeBookingRepo) GuideDistribution(string) (models.RatingDistribution, error) {
	return models.RatingDistribution{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}, nil
}

func (f *fakeBookingRepo) SalesForItems(models.BookingType, []string) ([]models.SalesLineItem, error) {
	return nil, nil
}

func (f *fakeBookingRepo) SalesByItemName(models.BookingType, []string) ([]models.ItemSales, error) {
	return nil, nil
}

func (f *fakeBookingRepo) AllSales() ([]models.SalesLineItem, error) { return nil, nil }

func (f *fakeBookingRepo) DueForReminder(until time.Time) ([]models.Booking, error) {
	var out []models.Booking
	now := time.Now()
	for _, b := range f.bookings {
		if b.Status == models.BookingStatusConfirmed && !b.NotificationSent &&
			b.BookingDate.After(now) && b.BookingDate.Before(until) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ClaimReminder(id string) (bool, error) {
	b, ok := f.bookings[id]
	if !ok || b.NotificationSent {
		return false, nil
	}
	b.NotificationSent = true
	return true, nil
}

// fakeCatalogRepo is an in-memory CatalogRepository backing the booking flow.
type fakeCatalogRepo struct {
	items    map[string]*models.BookableItem
	capacity map[string]int
	taken    map[string]int
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		items:    make(map[string]*models.BookableItem),
		capacity: make(map[string]int),
		taken:    make(map[string]int),
	}
}

func (f *fakeCatalogRepo) CreateActivity(*models.Activity) error              { return nil }
func (f *fakeCatalogRepo) GetActivity(string) (*models.Activity, error)       { return nil, nil }
func (f *fakeCatalogRepo) ListActivitiesByOwner(string) ([]models.Activity, error) {
	return nil, nil
}
func (f *fakeCatalogRepo) CreateItinerary(*models.Itinerary) error            { return nil }
func (f *fakeCatalogRepo) GetItinerary(string) (*models.Itinerary, error)     { return nil, nil }
func (f *fakeCatalogRepo) ListItinerariesByOwner(string) ([]models.Itinerary, error) {
	return nil, nil
}
func (f *fakeCatalogRepo) ItineraryIDsByOwner(string) ([]string, error) { return nil, nil }
func (f *fakeCatalogRepo) CreateHistoricalPlace(*models.HistoricalPlace) error { return nil }
func (f *fakeCatalogRepo) GetHistoricalPlace(string) (*models.HistoricalPlace, error) {
	return nil, nil
}
func (f *fakeCatalogRepo) ListHistoricalPlacesByOwner(string) ([]models.HistoricalPlace, error) {
	return nil, nil
}
func (f *fakeCatalogRepo) ItemIDsByOwner(models.BookingType, string) ([]string, error) {
	return nil, nil
}

func (f *fakeCatalogRepo) ResolveBookable(_ models.BookingType, id string) (*models.BookableItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (f *fakeCatalogRepo) SetFlagged(_ models.BookingType, id string, flagged bool) (string, error) {
	if item, ok := f.items[id]; ok {
		item.Flagged = flagged
		return item.CreatedBy, nil
	}
	return "", nil
}

func (f *fakeCatalogRepo) TakeActivityCapacity(id string, qty int) (bool, error) {
	if f.taken[id]+qty > f.capacity[id] {
		return false, nil
	}
	f.taken[id] += qty
	return true, nil
}

func (f *fakeCatalogRepo) ReleaseActivityCapacity(id string, qty int) error {
	f.taken[id] -= qty
	return nil
}

func (f *fakeCatalogRepo) CreateProduct(*models.Product) error          { return nil }
func (f *fakeCatalogRepo) GetProduct(string) (*models.Product, error)   { return nil, nil }
func (f *fakeCatalogRepo) ListProductsBySeller(string) ([]models.Product, error) {
	return nil, nil
}
func (f *fakeCatalogRepo) DecrementStock(string, int) (int, error) { return 0, nil }
func (f *fakeCatalogRepo) IncrementStock(string, int) error        { return nil }

func newTestService() (*DefaultBookingService, *fakeBookingRepo, *fakeCatalogRepo) {
	repo := newFakeBookingRepo()
	cat := newFakeCatalogRepo()
	svc := &DefaultBookingService{
		Repo:    repo,
		Catalog: cat,
		Logger:  zap.NewNop(),
	}
	return svc, repo, cat
}

func futureDay(days int) time.Time {
	t := time.Now().UTC().AddDate(0, 0, days)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func TestCreateBookingConfirmedDirectly(t *testing.T) {
	svc, _, cat := newTestService()
	date := futureDay(5)
	cat.items["act-1"] = &models.BookableItem{
		ID: "act-1", Name: "Desert Safari", Price: 120, Date: date,
	}

	b, err := svc.Create(CreateRequest{
		TouristID:   "t-1",
		ItemID:      "act-1",
		BookingType: models.BookingTypeActivity,
		Date:        date.Format(DateLayout),
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, b.Status)
	assert.Equal(t, 1, b.Quantity)
	assert.Equal(t, 120.0, b.TotalPrice)
	assert.Equal(t, "Desert Safari", b.ItemName)
}

func TestCreateBookingUnknownItem(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(CreateRequest{
		TouristID:   "t-1",
		ItemID:      "missing",
		BookingType: models.BookingTypeActivity,
		Date:        futureDay(2).Format(DateLayout),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCreateBookingFlaggedItemRefused(t *testing.T) {
	svc, _, cat := newTestService()
	date := futureDay(3)
	cat.items["act-1"] = &models.BookableItem{
		ID: "act-1", Name: "Flagged Tour", Price: 50, Date: date, Flagged: true,
	}

	_, err := svc.Create(CreateRequest{
		TouristID:   "t-1",
		ItemID:      "act-1",
		BookingType: models.BookingTypeActivity,
		Date:        date.Format(DateLayout),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "moderation")
}

func TestCreateBookingActivityWrongDate(t *testing.T) {
	svc, _, cat := newTestService()
	cat.items["act-1"] = &models.BookableItem{
		ID: "act-1", Name: "One Night Only", Price: 80, Date: futureDay(7),
	}

	_, err := svc.Create(CreateRequest{
		TouristID:   "t-1",
		ItemID:      "act-1",
		BookingType: models.BookingTypeActivity,
		Date:        futureDay(8).Format(DateLayout),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only available on")
}

func TestCreateBookingTotalPriceScalesWithQuantity(t *testing.T) {
	svc, _, cat := newTestService()
	cat.items["place-1"] = &models.BookableItem{
		ID: "place-1", Name: "Old Citadel", Price: 30,
	}

	b, err := svc.Create(CreateRequest{
		TouristID:   "t-1",
		ItemID:      "place-1",
		BookingType: models.BookingTypeHistoricalPlace,
		Date:        futureDay(1).Format(DateLayout),
		Quantity:    4,
	})
	require.NoError(t, err)
	assert.Equal(t, 120.0, b.TotalPrice)
}

func TestCreateBookingCapacityEnforced(t *testing.T) {
	config.AppConfig.EnforceCapacity = true
	defer func() { config.AppConfig.EnforceCapacity = false }()

	svc, _, cat := newTestService()
	date := futureDay(4)
	cat.items["act-1"] = &models.BookableItem{
		ID: "act-1", Name: "Boat Trip", Price: 60, Date: date, Capacity: 2,
	}
	cat.capacity["act-1"] = 2

	req := CreateRequest{
		TouristID:   "t-1",
		ItemID:      "act-1",
		BookingType: models.BookingTypeActivity,
		Date:        date.Format(DateLayout),
		Quantity:    2,
	}
	_, err := svc.Create(req)
	require.NoError(t, err)

	req.TouristID = "t-2"
	req.Quantity = 1
	_, err = svc.Create(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fully booked")
}

func TestGetByIDEnforcesOwnership(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.bookings["b-1"] = &models.Booking{ID: "b-1", TouristID: "t-1"}

	_, err := svc.GetByID("t-2", "b-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	b, err := svc.GetByID("t-1", "b-1")
	require.NoError(t, err)
	assert.Equal(t, "b-1", b.ID)
}
