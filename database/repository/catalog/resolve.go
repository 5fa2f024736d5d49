// File: database/repository/catalog/resolve.go
//
// Polymorphic resolution: a booking carries (ItemID, BookingType) and the
// type tag alone decides which collection the reference lives in.
package catalogRepo

import (
	"fmt"
	"time"

	"tripmart/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ResolveBookable looks up the booking target and flattens it into the view
// the booking flow needs. Returns nil when the item does not exist.
func (r *MongoCatalogRepo) ResolveBookable(bookingType models.BookingType, id string) (*models.BookableItem, error) {
	switch bookingType {
	case models.BookingTypeActivity:
		a, err := r.GetActivity(id)
		if err != nil || a == nil {
			return nil, err
		}
		return &models.BookableItem{
			ID: a.ID, Name: a.Name, Price: a.Price, CreatedBy: a.CreatedBy,
			Flagged: a.Flagged, Date: a.Date, Capacity: a.Capacity,
		}, nil
	case models.BookingTypeItinerary:
		it, err := r.GetItinerary(id)
		if err != nil || it == nil {
			return nil, err
		}
		return &models.BookableItem{
			ID: it.ID, Name: it.Title, Price: it.Price, CreatedBy: it.CreatedBy,
			Flagged: it.Flagged, AvailableDates: it.AvailableDates,
		}, nil
	case models.BookingTypeHistoricalPlace:
		hp, err := r.GetHistoricalPlace(id)
		if err != nil || hp == nil {
			return nil, err
		}
		return &models.BookableItem{
			ID: hp.ID, Name: hp.Name, Price: hp.TicketPrice, CreatedBy: hp.CreatedBy,
			Flagged: hp.Flagged, Capacity: hp.DailyCapacity,
		}, nil
	default:
		return nil, fmt.Errorf("unknown booking type %q", bookingType)
	}
}

// SetFlagged toggles moderation state and returns the owner ID for
// notification. Errors when the item does not exist.
func (r *MongoCatalogRepo) SetFlagged(bookingType models.BookingType, id string, flagged bool) (string, error) {
	coll, err := r.collectionFor(bookingType)
	if err != nil {
		return "", err
	}

	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"flagged": flagged, "updated_at": time.Now()}}
	result, err := coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return "", fmt.Errorf("failed to flag %s %s: %w", coll.Name(), id, err)
	}
	if result.MatchedCount == 0 {
		return "", fmt.Errorf("%s with id %s not found", coll.Name(), id)
	}

	var doc struct {
		CreatedBy string `bson:"created_by"`
	}
	if err := coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		return "", fmt.Errorf("failed to fetch owner of %s %s: %w", coll.Name(), id, err)
	}
	return doc.CreatedBy, nil
}
