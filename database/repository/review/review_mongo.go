package reviewRepo

import (
	"context"
	"fmt"
	"time"

	"tripmart/database"
	"tripmart/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReviewRepository persists the generalized review entity. Create, update
// and delete run inside session transactions; the unique index enforces one
// review per (tourist, reviewType, entity).
type ReviewRepository interface {
	Create(rev *models.Review) error
	Update(id, touristID string, rating float64, comment string) error
	Delete(id, touristID string) error
	GetByID(id string) (*models.Review, error)
	ListByEntity(reviewType models.ReviewType, entityID string) ([]models.Review, error)
	Summary(reviewType models.ReviewType, entityID string) (*models.RatingSummary, error)
}

// MongoReviewRepo implements ReviewRepository using MongoDB.
type MongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo creates a new instance of ReviewRepository using MongoDB.
func NewMongoReviewRepo() ReviewRepository {
	coll := database.DB().Collection("reviews")
	repo := &MongoReviewRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoReviewRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys: bson.D{
				{Key: "tourist_id", Value: 1},
				{Key: "review_type", Value: 1},
				{Key: "entity_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "review_type", Value: 1}, {Key: "entity_id", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoReviewRepo) inTransaction(fn func(sc mongo.SessionContext) error) error {
	ctx, cancel := newContext(15 * time.Second)
	defer cancel()

	session, err := database.MongoClient.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// Create inserts a review. The unique index aborts the transaction on a
// duplicate (tourist, reviewType, entity).
func (r *MongoReviewRepo) Create(rev *models.Review) error {
	now := time.Now()
	rev.CreatedAt = now
	rev.UpdatedAt = now

	return r.inTransaction(func(sc mongo.SessionContext) error {
		if _, err := r.coll.InsertOne(sc, rev); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return fmt.Errorf("duplicate review: %w", err)
			}
			return fmt.Errorf("failed to create review: %w", err)
		}
		return nil
	})
}

// Update rewrites the rating and comment of the tourist's own review.
func (r *MongoReviewRepo) Update(id, touristID string, rating float64, comment string) error {
	return r.inTransaction(func(sc mongo.SessionContext) error {
		filter := bson.M{"id": id, "tourist_id": touristID}
		update := bson.M{"$set": bson.M{
			"rating":     rating,
			"comment":    comment,
			"updated_at": time.Now(),
		}}
		result, err := r.coll.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("failed to update review %s: %w", id, err)
		}
		if result.MatchedCount == 0 {
			return fmt.Errorf("review with id %s not found", id)
		}
		return nil
	})
}

// Delete removes the tourist's own review.
func (r *MongoReviewRepo) Delete(id, touristID string) error {
	return r.inTransaction(func(sc mongo.SessionContext) error {
		result, err := r.coll.DeleteOne(sc, bson.M{"id": id, "tourist_id": touristID})
		if err != nil {
			return fmt.Errorf("failed to delete review %s: %w", id, err)
		}
		if result.DeletedCount == 0 {
			return fmt.Errorf("review with id %s not found", id)
		}
		return nil
	})
}

// GetByID retrieves a review, nil when absent.
func (r *MongoReviewRepo) GetByID(id string) (*models.Review, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var rev models.Review
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&rev); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch review %s: %w", id, err)
	}
	return &rev, nil
}

// ListByEntity lists reviews for one entity, newest first.
func (r *MongoReviewRepo) ListByEntity(reviewType models.ReviewType, entityID string) ([]models.Review, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"review_type": reviewType, "entity_id": entityID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

// Summary computes the average rating and count over an entity's reviews.
func (r *MongoReviewRepo) Summary(reviewType models.ReviewType, entityID string) (*models.RatingSummary, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"review_type": reviewType, "entity_id": entityID}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"avg":   bson.M{"$avg": "$rating"},
			"count": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"averageRating": bson.M{"$round": bson.A{"$avg", 1}},
			"totalRatings":  "$count",
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("review aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.RatingSummary
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode review summary: %w", err)
	}
	if len(results) == 0 {
		return &models.RatingSummary{}, nil
	}
	return &results[0], nil
}
