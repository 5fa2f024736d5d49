// File: database/repository/user/wallet.go
//
// Wallet, loyalty-points and tier writes. Each mutation is a single
// aggregation-pipeline update so the three fields can never diverge under
// concurrent requests for the same tourist.
package userRepo

import (
	"fmt"
	"time"

	"tripmart/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// tierExpr maps a points expression to the tier it implies.
func tierExpr(pointsExpr interface{}) bson.M {
	return bson.M{"$switch": bson.M{
		"branches": bson.A{
			bson.M{"case": bson.M{"$gte": bson.A{pointsExpr, models.TierThreeThreshold}}, "then": 3},
			bson.M{"case": bson.M{"$gte": bson.A{pointsExpr, models.TierTwoThreshold}}, "then": 2},
		},
		"default": 1,
	}}
}

// earnMultiplierExpr maps the stored loyalty level to its earn multiplier.
func earnMultiplierExpr() bson.M {
	return bson.M{"$switch": bson.M{
		"branches": bson.A{
			bson.M{"case": bson.M{"$eq": bson.A{"$loyalty_level", 3}}, "then": 1.5},
			bson.M{"case": bson.M{"$eq": bson.A{"$loyalty_level", 2}}, "then": 1.0},
		},
		"default": 0.5,
	}}
}

func (r *MongoUserRepo) findOneAndUpdatePipeline(filter bson.M, pipeline mongo.Pipeline) (*models.User, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err := r.coll.FindOneAndUpdate(ctx, filter, pipeline, opts).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("wallet update failed: %w", err)
	}
	return &user, nil
}

// DeductWithEarn subtracts amount from the wallet, credits
// floor(amount * multiplier(tier)) points and recomputes the tier from the
// new balance. The filter refuses the write when the balance is short.
func (r *MongoUserRepo) DeductWithEarn(id string, amount float64) (*models.User, error) {
	filter := bson.M{
		"id":             id,
		"role":           models.RoleTourist,
		"wallet_balance": bson.M{"$gte": amount},
	}

	newPoints := bson.M{"$add": bson.A{
		"$loyalty_points",
		bson.M{"$toLong": bson.M{"$floor": bson.M{"$multiply": bson.A{amount, earnMultiplierExpr()}}}},
	}}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.M{
			"wallet_balance": bson.M{"$subtract": bson.A{"$wallet_balance", amount}},
			"loyalty_points": newPoints,
			"loyalty_level":  tierExpr(newPoints),
			"updated_at":     time.Now(),
		}}},
	}

	return r.findOneAndUpdatePipeline(filter, pipeline)
}

// Credit adds amount to the wallet unconditionally (refunds, top-ups).
func (r *MongoUserRepo) Credit(id string, amount float64) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$inc": bson.M{"wallet_balance": amount},
		"$set": bson.M{"updated_at": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to credit wallet for user %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user with id %s not found", id)
	}
	return nil
}

// RedeemPoints converts points into wallet value and recomputes the tier
// from the reduced balance. The filter refuses the write when the points
// balance is short; block sizing is the caller's responsibility.
func (r *MongoUserRepo) RedeemPoints(id string, points int64, value float64) (*models.User, error) {
	filter := bson.M{
		"id":             id,
		"role":           models.RoleTourist,
		"loyalty_points": bson.M{"$gte": points},
	}

	newPoints := bson.M{"$subtract": bson.A{"$loyalty_points", points}}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.M{
			"wallet_balance": bson.M{"$add": bson.A{"$wallet_balance", value}},
			"loyalty_points": newPoints,
			"loyalty_level":  tierExpr(newPoints),
			"updated_at":     time.Now(),
		}}},
	}

	return r.findOneAndUpdatePipeline(filter, pipeline)
}
