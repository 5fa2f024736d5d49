package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"tripmart/database"
	"tripmart/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	coll := database.DB().Collection("bookings")
	repo := &MongoBookingRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(b *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its unique ID, nil when absent.
func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var b models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &b, nil
}

// ListByTourist retrieves all bookings owned by a tourist, newest first.
func (r *MongoBookingRepo) ListByTourist(touristID string) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := optionsFindNewestFirst()
	cursor, err := r.coll.Find(ctx, bson.M{"tourist_id": touristID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for tourist %s: %w", touristID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// UpdateStatus writes a new lifecycle status. Transition legality is the
// service's job; the repository only persists.
func (r *MongoBookingRepo) UpdateStatus(id string, status models.BookingStatus) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update status of booking %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s not found", id)
	}
	return nil
}

// SetRating writes the first rating. The filter keeps the invariant "rated
// once, only when attended" even under concurrent rating attempts.
func (r *MongoBookingRepo) SetRating(id string, rating float64, review string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": models.BookingStatusAttended, "rating": 0}
	update := bson.M{"$set": bson.M{"rating": rating, "review": review, "updated_at": time.Now()}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to rate booking %s: %w", id, err)
	}
	return result.MatchedCount > 0, nil
}

// UpdateRating changes an existing rating; requires a non-zero prior rating.
func (r *MongoBookingRepo) UpdateRating(id string, rating float64, review string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "rating": bson.M{"$ne": 0}}
	update := bson.M{"$set": bson.M{"rating": rating, "review": review, "updated_at": time.Now()}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to update rating of booking %s: %w", id, err)
	}
	return result.MatchedCount > 0, nil
}

// DueForReminder returns confirmed bookings inside the reminder window that
// have not been claimed yet.
func (r *MongoBookingRepo) DueForReminder(until time.Time) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"status":            models.BookingStatusConfirmed,
		"notification_sent": false,
		"booking_date":      bson.M{"$gte": time.Now(), "$lte": until},
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminder-due bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode reminder-due bookings: %w", err)
	}
	return bookings, nil
}

// ClaimReminder flips the notification flag; the filter makes the claim
// atomic so a restarted sweep cannot double-send.
func (r *MongoBookingRepo) ClaimReminder(id string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "notification_sent": false}
	update := bson.M{"$set": bson.M{"notification_sent": true, "updated_at": time.Now()}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to claim reminder for booking %s: %w", id, err)
	}
	return result.MatchedCount > 0, nil
}
