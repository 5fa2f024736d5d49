package catalog

import (
	"testing"
	"time"

	"tripmart/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCatalogRepo struct {
	activities map[string]*models.Activity
	products   map[string]*models.Product
	flagged    map[string]bool
	owners     map[string]string
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		activities: make(map[string]*models.Activity),
		products:   make(map[string]*models.Product),
		flagged:    make(map[string]bool),
		owners:     make(map[string]string),
	}
}

func (f *fakeCatalogRepo) CreateActivity(a *models.Activity) error {
	cp := *a
	f.activities[a.ID] = &cp
	f.owners[a.ID] = a.CreatedBy
	return nil
}

func (f *fakeCatalogRepo) GetActivity(id string) (*models.Activity, error) {
	return f.activities[id], nil
}

func (f *fakeCatalogRepo) ListActivitiesByOwner(ownerID string) ([]models.Activity, error) {
	var out []models.Activity
	for _, a := range f.activities {
		if a.CreatedBy == ownerID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepo) CreateItinerary(*models.Itinerary) error          { return nil }
func (f *fakeCatalogRepo) GetItinerary(string) (*models.Itinerary, error)   { return nil, nil }
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
	a, ok := f.activities[id]
	if !ok {
		return nil, nil
	}
	return &models.BookableItem{
		ID:        a.ID,
		Name:      a.Name,
		CreatedBy: a.CreatedBy,
		Price:     a.Price,
		Flagged:   f.flagged[id],
	}, nil
}

func (f *fakeCatalogRepo) SetFlagged(_ models.BookingType, id string, flagged bool) (string, error) {
	f.flagged[id] = flagged
	return f.owners[id], nil
}

func (f *fakeCatalogRepo) TakeActivityCapacity(string, int) (bool, error) { return true, nil }
func (f *fakeCatalogRepo) ReleaseActivityCapacity(string, int) error      { return nil }

func (f *fakeCatalogRepo) CreateProduct(p *models.Product) error {
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeCatalogRepo) GetProduct(id string) (*models.Product, error) {
	return f.products[id], nil
}

func (f *fakeCatalogRepo) ListProductsBySeller(sellerID string) ([]models.Product, error) {
	var out []models.Product
	for _, p := range f.products {
		if p.SellerID == sellerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepo) DecrementStock(string, int) (int, error) { return 0, nil }
func (f *fakeCatalogRepo) IncrementStock(string, int) error        { return nil }

type fakeFlagNotifier struct {
	flagged []string
}

func (f *fakeFlagNotifier) ListForUser(string) ([]models.Notification, error) { return nil, nil }
func (f *fakeFlagNotifier) MarkRead(string, string) error                     { return nil }
func (f *fakeFlagNotifier) NotifyContentFlagged(ownerID, itemName string) error {
	f.flagged = append(f.flagged, ownerID+":"+itemName)
	return nil
}
func (f *fakeFlagNotifier) NotifyStockOut(string, string) error              { return nil }
func (f *fakeFlagNotifier) NotifyBirthdayPromo(string, string, float64) error { return nil }
func (f *fakeFlagNotifier) NotifyBookingReminder(string, string) error       { return nil }

func newTestCatalog() (*DefaultCatalogService, *fakeCatalogRepo, *fakeFlagNotifier) {
	repo := newFakeCatalogRepo()
	notifier := &fakeFlagNotifier{}
	svc := &DefaultCatalogService{Repo: repo, Notifications: notifier, Logger: zap.NewNop()}
	return svc, repo, notifier
}

func TestCreateActivity(t *testing.T) {
	svc, repo, _ := newTestCatalog()

	a, err := svc.CreateActivity("adv-1", &models.Activity{
		Name:     "Sunset Kayak",
		Price:    45,
		Date:     time.Now().Add(72 * time.Hour),
		Capacity: 12,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "adv-1", a.CreatedBy)
	assert.Zero(t, a.BookedCount)
	assert.False(t, a.Flagged)
	assert.NotNil(t, repo.activities[a.ID])
}

func TestCreateActivityValidation(t *testing.T) {
	svc, _, _ := newTestCatalog()
	future := time.Now().Add(24 * time.Hour)

	_, err := svc.CreateActivity("adv-1", &models.Activity{Price: 10, Date: future})
	assert.Error(t, err, "missing name")

	_, err = svc.CreateActivity("adv-1", &models.Activity{Name: "x", Price: -1, Date: future})
	assert.Error(t, err, "negative price")

	_, err = svc.CreateActivity("adv-1", &models.Activity{
		Name: "x", Price: 10, Date: time.Now().Add(-time.Hour)})
	assert.Error(t, err, "past date")
}

func TestCreateProductStampsSeller(t *testing.T) {
	svc, _, _ := newTestCatalog()

	p, err := svc.CreateProduct("seller-9", &models.Product{
		Name: "Postcards", Price: 5, Stock: 40})
	require.NoError(t, err)
	assert.Equal(t, "seller-9", p.SellerID)
	assert.False(t, p.Archived)

	_, err = svc.CreateProduct("seller-9", &models.Product{Name: "x", Price: 5, Stock: -1})
	assert.Error(t, err)
}

func TestListProductsScopedToSeller(t *testing.T) {
	svc, _, _ := newTestCatalog()
	_, err := svc.CreateProduct("seller-1", &models.Product{Name: "Magnets", Price: 3, Stock: 10})
	require.NoError(t, err)
	_, err = svc.CreateProduct("seller-2", &models.Product{Name: "Mugs", Price: 8, Stock: 5})
	require.NoError(t, err)

	mine, err := svc.ListProducts("seller-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Magnets", mine[0].Name)
}

func TestFlagNotifiesOwner(t *testing.T) {
	svc, repo, notifier := newTestCatalog()

	a, err := svc.CreateActivity("adv-1", &models.Activity{
		Name: "City Walk", Price: 20, Date: time.Now().Add(48 * time.Hour)})
	require.NoError(t, err)

	require.NoError(t, svc.Flag(models.BookingTypeActivity, a.ID))
	assert.True(t, repo.flagged[a.ID])
	require.Len(t, notifier.flagged, 1)
	assert.Equal(t, "adv-1:City Walk", notifier.flagged[0])

	require.NoError(t, svc.Unflag(models.BookingTypeActivity, a.ID))
	assert.False(t, repo.flagged[a.ID])
}

func TestFlagUnknownListing(t *testing.T) {
	svc, _, _ := newTestCatalog()
	err := svc.Flag(models.BookingTypeActivity, "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
