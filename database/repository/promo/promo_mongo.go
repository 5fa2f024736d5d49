package promoRepo

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

// PromoRepository persists promo codes. Validation reads; consumption is the
// single mutating step and is guarded atomically.
type PromoRepository interface {
	Create(p *models.PromoCode) error
	GetByCode(code string) (*models.PromoCode, error)

	// Consume increments the usage counter; the filter refuses once the
	// code is inactive, expired or at its limit. Returns false when refused.
	Consume(code string) (bool, error)

	// HasActiveBirthdayCode reports whether the owner already holds an
	// unexpired birthday code; the sweep's duplicate guard.
	HasActiveBirthdayCode(ownerID string) (bool, error)
}

// MongoPromoRepo implements PromoRepository using MongoDB.
type MongoPromoRepo struct {
	coll *mongo.Collection
}

// NewMongoPromoRepo creates a new instance of PromoRepository using MongoDB.
func NewMongoPromoRepo() PromoRepository {
	coll := database.DB().Collection("promo_codes")
	repo := &MongoPromoRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoPromoRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "type", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new promo code document.
func (r *MongoPromoRepo) Create(p *models.PromoCode) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to create promo code: %w", err)
	}
	return nil
}

// GetByCode retrieves a promo code, nil when absent.
func (r *MongoPromoRepo) GetByCode(code string) (*models.PromoCode, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var p models.PromoCode
	if err := r.coll.FindOne(ctx, bson.M{"code": code}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch promo code %s: %w", code, err)
	}
	return &p, nil
}

// Consume increments the usage counter while the code is still usable. The
// $expr guard makes consumption at the limit impossible even under
// concurrent checkouts.
func (r *MongoPromoRepo) Consume(code string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"code":       code,
		"active":     true,
		"expires_at": bson.M{"$gt": time.Now()},
		"$expr":      bson.M{"$lt": bson.A{"$used_count", "$usage_limit"}},
	}
	update := bson.M{
		"$inc": bson.M{"used_count": 1},
		"$set": bson.M{"updated_at": time.Now()},
	}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to consume promo code %s: %w", code, err)
	}
	return result.MatchedCount > 0, nil
}

// HasActiveBirthdayCode reports whether the owner already holds an unexpired
// birthday code.
func (r *MongoPromoRepo) HasActiveBirthdayCode(ownerID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"owner_id":   ownerID,
		"type":       models.PromoTypeBirthday,
		"active":     true,
		"expires_at": bson.M{"$gt": time.Now()},
	}

	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check birthday codes for %s: %w", ownerID, err)
	}
	return count > 0, nil
}
