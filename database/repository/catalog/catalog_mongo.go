package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"tripmart/database"
	"tripmart/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection names per booking-type tag.
const (
	collActivities = "activities"
	collItinerary  = "itineraries"
	collPlaces     = "historical_places"
	collProducts   = "products"
)

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	db *mongo.Database
}

// NewMongoCatalogRepo creates a new instance of CatalogRepository using MongoDB.
func NewMongoCatalogRepo() CatalogRepository {
	repo := &MongoCatalogRepo{db: database.DB()}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// collectionFor resolves a booking-type tag to its backing collection.
func (r *MongoCatalogRepo) collectionFor(t models.BookingType) (*mongo.Collection, error) {
	switch t {
	case models.BookingTypeActivity:
		return r.db.Collection(collActivities), nil
	case models.BookingTypeItinerary:
		return r.db.Collection(collItinerary), nil
	case models.BookingTypeHistoricalPlace:
		return r.db.Collection(collPlaces), nil
	default:
		return nil, fmt.Errorf("unknown booking type %q", t)
	}
}

func insertOne(coll *mongo.Collection, doc interface{}) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", coll.Name(), err)
	}
	return nil
}

func findByID(coll *mongo.Collection, id string, out interface{}) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	if err := coll.FindOne(ctx, bson.M{"id": id}).Decode(out); err != nil {
		if err == mongo.ErrNoDocuments {
			return false, nil
		}
		return false, fmt.Errorf("failed to fetch %s %s: %w", coll.Name(), id, err)
	}
	return true, nil
}

func listByField(coll *mongo.Collection, field, value string, out interface{}) error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()
	cursor, err := coll.Find(ctx, bson.M{field: value})
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", coll.Name(), err)
	}
	return nil
}

// CreateActivity inserts a new activity document.
func (r *MongoCatalogRepo) CreateActivity(a *models.Activity) error {
	now := time.Now()
	a.CreatedAt, a.UpdatedAt = now, now
	return insertOne(r.db.Collection(collActivities), a)
}

// GetActivity retrieves an activity by ID, nil when absent.
func (r *MongoCatalogRepo) GetActivity(id string) (*models.Activity, error) {
	var a models.Activity
	found, err := findByID(r.db.Collection(collActivities), id, &a)
	if err != nil || !found {
		return nil, err
	}
	return &a, nil
}

// ListActivitiesByOwner lists an advertiser's activities.
func (r *MongoCatalogRepo) ListActivitiesByOwner(ownerID string) ([]models.Activity, error) {
	var out []models.Activity
	err := listByField(r.db.Collection(collActivities), "created_by", ownerID, &out)
	return out, err
}

// CreateItinerary inserts a new itinerary document.
func (r *MongoCatalogRepo) CreateItinerary(it *models.Itinerary) error {
	now := time.Now()
	it.CreatedAt, it.UpdatedAt = now, now
	return insertOne(r.db.Collection(collItinerary), it)
}

// GetItinerary retrieves an itinerary by ID, nil when absent.
func (r *MongoCatalogRepo) GetItinerary(id string) (*models.Itinerary, error) {
	var it models.Itinerary
	found, err := findByID(r.db.Collection(collItinerary), id, &it)
	if err != nil || !found {
		return nil, err
	}
	return &it, nil
}

// ListItinerariesByOwner lists a tour guide's itineraries.
func (r *MongoCatalogRepo) ListItinerariesByOwner(ownerID string) ([]models.Itinerary, error) {
	var out []models.Itinerary
	err := listByField(r.db.Collection(collItinerary), "created_by", ownerID, &out)
	return out, err
}

// ItineraryIDsByOwner returns the IDs of a guide's itineraries.
func (r *MongoCatalogRepo) ItineraryIDsByOwner(ownerID string) ([]string, error) {
	return r.ItemIDsByOwner(models.BookingTypeItinerary, ownerID)
}

// CreateHistoricalPlace inserts a new historical place document.
func (r *MongoCatalogRepo) CreateHistoricalPlace(hp *models.HistoricalPlace) error {
	now := time.Now()
	hp.CreatedAt, hp.UpdatedAt = now, now
	return insertOne(r.db.Collection(collPlaces), hp)
}

// GetHistoricalPlace retrieves a historical place by ID, nil when absent.
func (r *MongoCatalogRepo) GetHistoricalPlace(id string) (*models.HistoricalPlace, error) {
	var hp models.HistoricalPlace
	found, err := findByID(r.db.Collection(collPlaces), id, &hp)
	if err != nil || !found {
		return nil, err
	}
	return &hp, nil
}

// ListHistoricalPlacesByOwner lists a governor's historical places.
func (r *MongoCatalogRepo) ListHistoricalPlacesByOwner(ownerID string) ([]models.HistoricalPlace, error) {
	var out []models.HistoricalPlace
	err := listByField(r.db.Collection(collPlaces), "created_by", ownerID, &out)
	return out, err
}

// ItemIDsByOwner returns the IDs of all items of the given type created by ownerID.
func (r *MongoCatalogRepo) ItemIDsByOwner(bookingType models.BookingType, ownerID string) ([]string, error) {
	coll, err := r.collectionFor(bookingType)
	if err != nil {
		return nil, err
	}

	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := coll.Find(ctx, bson.M{"created_by": ownerID})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s by owner: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s id: %w", coll.Name(), err)
		}
		ids = append(ids, doc.ID)
	}
	return ids, nil
}
