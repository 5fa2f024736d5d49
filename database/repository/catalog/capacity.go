package catalogRepo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// TakeActivityCapacity reserves qty seats on an activity. The filter only
// matches while bookedCount+qty stays within capacity, so two concurrent
// takers can never oversell.
func (r *MongoCatalogRepo) TakeActivityCapacity(id string, qty int) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"id": id,
		"$expr": bson.M{"$lte": bson.A{
			bson.M{"$add": bson.A{"$booked_count", qty}},
			"$capacity",
		}},
	}
	update := bson.M{
		"$inc": bson.M{"booked_count": qty},
		"$set": bson.M{"updated_at": time.Now()},
	}

	result, err := r.db.Collection(collActivities).UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to take capacity on activity %s: %w", id, err)
	}
	return result.MatchedCount > 0, nil
}

// ReleaseActivityCapacity returns seats taken by a cancelled booking.
func (r *MongoCatalogRepo) ReleaseActivityCapacity(id string, qty int) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "booked_count": bson.M{"$gte": qty}}
	update := bson.M{
		"$inc": bson.M{"booked_count": -qty},
		"$set": bson.M{"updated_at": time.Now()},
	}

	if _, err := r.db.Collection(collActivities).UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to release capacity on activity %s: %w", id, err)
	}
	return nil
}
