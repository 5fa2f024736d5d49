// File: database/repository/user/account_delete.go
package userRepo

import (
	"fmt"
	"time"

	"tripmart/database"
	"tripmart/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DeleteTouristCascade removes a tourist account and soft-marks their
// bookings in one transaction, so a crash can never leave live bookings
// pointing at a deleted account.
func (r *MongoUserRepo) DeleteTouristCascade(id string) error {
	ctx, cancel := newContext(15 * time.Second)
	defer cancel()

	session, err := database.MongoClient.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	bookings := database.DB().Collection("bookings")

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		result, err := r.coll.DeleteOne(sc, bson.M{"id": id, "role": models.RoleTourist})
		if err != nil {
			return nil, fmt.Errorf("failed to delete tourist %s: %w", id, err)
		}
		if result.DeletedCount == 0 {
			return nil, fmt.Errorf("tourist with id %s not found", id)
		}

		update := bson.M{"$set": bson.M{
			"status":     models.BookingStatusAccountDeleted,
			"updated_at": time.Now(),
		}}
		if _, err := bookings.UpdateMany(sc, bson.M{"tourist_id": id}, update); err != nil {
			return nil, fmt.Errorf("failed to mark bookings of tourist %s: %w", id, err)
		}
		return nil, nil
	})
	return err
}
